package demo

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/lucheng0127/lightremote/internal/command"
	"github.com/lucheng0127/lightremote/internal/light"
	"github.com/lucheng0127/lightremote/internal/remote"
)

const banner = `---------------------------------
Command Design Pattern in Go.
---------------------------------

`

// Run 运行命令模式演示：开灯、关灯，然后输出 Done.
func Run(out io.Writer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	if _, err := io.WriteString(out, banner); err != nil {
		return fmt.Errorf("failed to write banner: %w", err)
	}

	l := light.NewLight(light.DefaultLabel, out)

	turnOn := command.NewTurnOnCommand(l)
	turnOff := command.NewTurnOffCommand(l)

	remoteControl := remote.NewRemoteControl(logger)

	for _, cmd := range []command.Command{turnOn, turnOff} {
		remoteControl.SetCommand(cmd)
		if err := remoteControl.PressButton(); err != nil {
			return fmt.Errorf("command %s failed: %w", cmd.Name(), err)
		}
	}

	if _, err := io.WriteString(out, "\nDone.\n"); err != nil {
		return fmt.Errorf("failed to write completion notice: %w", err)
	}

	logger.Debug("demo finished")
	return nil
}
