package command

// Command 命令接口
// 构造时绑定接收者和具体操作，执行时不接收参数也不返回错误
type Command interface {
	// Name 返回命令名称
	Name() string

	// Execute 执行命令
	Execute()
}

// Switch 命令的接收者需要提供的开关能力
type Switch interface {
	TurnOn()
	TurnOff()
}

func mustSwitch(sw Switch, name string) Switch {
	if sw == nil {
		panic("command: " + name + " requires a non-nil switch")
	}
	return sw
}
