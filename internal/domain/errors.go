package domain

import "errors"

// 画布层的错误
var (
	// ErrInvalidDimensions 表示画布的宽或高小于 1，或像素总数超过 MaxCells
	ErrInvalidDimensions = errors.New("domain: invalid grid dimensions")
	// ErrOutOfBounds 表示坐标超出画布范围
	ErrOutOfBounds = errors.New("domain: coordinate out of bounds")
	// ErrInvalidColor 表示颜色不是单个大写字母
	ErrInvalidColor = errors.New("domain: invalid color")
)
