package command

// TurnOnName 开灯命令名称
const TurnOnName = "turn_on"

// turnOnCommand 开灯命令
type turnOnCommand struct {
	sw Switch
}

// NewTurnOnCommand 创建开灯命令
// 具体类型不导出，只能通过构造函数获得，保证接收者已绑定
func NewTurnOnCommand(sw Switch) Command {
	return &turnOnCommand{sw: mustSwitch(sw, TurnOnName)}
}

// Name 返回命令名称
func (c *turnOnCommand) Name() string {
	return TurnOnName
}

// Execute 执行开灯命令
func (c *turnOnCommand) Execute() {
	c.sw.TurnOn()
}
