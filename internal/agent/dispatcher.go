package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/lucheng0127/lightremote/internal/command"
	"github.com/lucheng0127/lightremote/internal/remote"
)

// CommandMessage 命令消息结构
type CommandMessage struct {
	Command string `json:"command"`
}

// Dispatcher 命令分发器
// 按名称查找命令，交给唯一的遥控器设置并执行
type Dispatcher struct {
	mu       sync.Mutex
	commands map[string]command.Command
	remote   *remote.RemoteControl
	executed func(name string)
	logger   *zap.Logger
}

// NewDispatcher 创建命令分发器
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		commands: make(map[string]command.Command),
		remote:   remote.NewRemoteControl(logger),
		logger:   logger,
	}
}

// Register 注册命令，同名命令会被覆盖
func (d *Dispatcher) Register(cmd command.Command) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.commands[cmd.Name()] = cmd
	d.logger.Info("command registered", zap.String("command", cmd.Name()))
}

// OnExecuted 设置命令执行成功后的回调
func (d *Dispatcher) OnExecuted(fn func(name string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.executed = fn
}

// Commands 返回已注册的命令名称（已排序）
func (d *Dispatcher) Commands() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Press 设置并执行指定命令
// 同一时刻只有一个调用能操作遥控器，回调在释放锁之后执行
func (d *Dispatcher) Press(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	executed, err := d.press(name)
	if err != nil {
		return err
	}

	if executed != nil {
		executed(name)
	}
	return nil
}

// press 在锁内设置并执行命令，返回需要调用的回调
func (d *Dispatcher) press(name string) (func(string), error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cmd, exists := d.commands[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	d.logger.Info("executing command", zap.String("command", name))

	d.remote.SetCommand(cmd)
	if err := d.remote.PressButton(); err != nil {
		d.logger.Error("command execution failed",
			zap.String("command", name),
			zap.Error(err),
		)
		return nil, fmt.Errorf("command %s failed: %w", name, err)
	}

	d.logger.Info("command executed successfully", zap.String("command", name))
	return d.executed, nil
}

// Dispatch 解析命令消息并执行
func (d *Dispatcher) Dispatch(ctx context.Context, payload []byte) (string, error) {
	var msg CommandMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	if msg.Command == "" {
		return "", fmt.Errorf("%w: missing command", ErrInvalidMessage)
	}

	return msg.Command, d.Press(ctx, msg.Command)
}
