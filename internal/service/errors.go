package service

import "errors"

// 命令解释器的错误。除 ErrSaveFailed 包装了底层 I/O 错误外，均表示该行被丢弃、画布未改变。
var (
	ErrInvalidCommand     = errors.New("invalid command")
	ErrNotInitialized     = errors.New("grid not initialized")
	ErrAlreadyInitialized = errors.New("grid already initialized")
	ErrOutOfBounds        = errors.New("coordinate out of bounds")
	ErrSaveFailed         = errors.New("save failed")
)
