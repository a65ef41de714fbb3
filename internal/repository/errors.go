package repository

import "errors"

// 通用的存储库错误
var (
	// ErrInvalidSnapshot 表示快照缺少名称，或数据与声明的尺寸不一致
	ErrInvalidSnapshot = errors.New("repository: invalid snapshot")
	// ErrWriteFailed 表示底层存储写入失败
	ErrWriteFailed = errors.New("repository: write failed")
)
