package agent

import "errors"

var (
	// ErrUnknownCommand 未注册的命令
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidMessage 无法解析的命令消息
	ErrInvalidMessage = errors.New("invalid command message")
)
