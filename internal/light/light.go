package light

import (
	"fmt"
	"io"
)

// DefaultLabel 默认灯的名称
const DefaultLabel = "Light"

// Light 命令接收者，执行真正的开关动作
// 不记录当前状态，每次操作都无条件输出状态行
type Light struct {
	label string
	out   io.Writer
}

// NewLight 创建灯
// label 为空时使用 DefaultLabel，out 为 nil 时丢弃输出
func NewLight(label string, out io.Writer) *Light {
	if label == "" {
		label = DefaultLabel
	}
	if out == nil {
		out = io.Discard
	}

	return &Light{
		label: label,
		out:   out,
	}
}

// Label 返回灯的名称
func (l *Light) Label() string {
	return l.label
}

// TurnOn 开灯
func (l *Light) TurnOn() {
	fmt.Fprintf(l.out, "%s is ON.\n", l.label)
}

// TurnOff 关灯
func (l *Light) TurnOff() {
	fmt.Fprintf(l.out, "%s is OFF.\n", l.label)
}
