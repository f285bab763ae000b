package remote

import "errors"

var (
	// ErrNoCommandAssigned 遥控器尚未设置命令
	ErrNoCommandAssigned = errors.New("no command assigned")
)
