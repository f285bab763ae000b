package remote

import (
	"go.uber.org/zap"

	"github.com/lucheng0127/lightremote/internal/command"
)

// RemoteControl 调用者，持有当前设置的命令并在按下按钮时执行
// 初始为未设置状态，SetCommand 之后一直处于已设置状态
type RemoteControl struct {
	command command.Command
	logger  *zap.Logger
}

// NewRemoteControl 创建遥控器
func NewRemoteControl(logger *zap.Logger) *RemoteControl {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RemoteControl{
		logger: logger,
	}
}

// SetCommand 设置命令，替换已有命令
func (r *RemoteControl) SetCommand(cmd command.Command) {
	r.command = cmd
	r.logger.Debug("command assigned", zap.String("command", r.Current()))
}

// PressButton 执行当前命令
// 未设置命令时返回 ErrNoCommandAssigned
func (r *RemoteControl) PressButton() error {
	if r.command == nil {
		r.logger.Warn("button pressed with no command assigned")
		return ErrNoCommandAssigned
	}

	r.command.Execute()
	return nil
}

// Assigned 是否已设置命令
func (r *RemoteControl) Assigned() bool {
	return r.command != nil
}

// Current 返回当前命令名称，未设置时返回空字符串
func (r *RemoteControl) Current() string {
	if r.command == nil {
		return ""
	}
	return r.command.Name()
}
