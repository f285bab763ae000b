package command

// TurnOffName 关灯命令名称
const TurnOffName = "turn_off"

// turnOffCommand 关灯命令
type turnOffCommand struct {
	sw Switch
}

// NewTurnOffCommand 创建关灯命令
func NewTurnOffCommand(sw Switch) Command {
	return &turnOffCommand{sw: mustSwitch(sw, TurnOffName)}
}

// Name 返回命令名称
func (c *turnOffCommand) Name() string {
	return TurnOffName
}

// Execute 执行关灯命令
func (c *turnOffCommand) Execute() {
	c.sw.TurnOff()
}
