package domain

import "fmt"

// Color 表示一个像素的颜色，取值为单个大写字母 'A'-'Z'。
type Color byte

// Blank 是画布创建和清空时使用的空白颜色。
const Blank Color = 'O'

// Valid 判断颜色是否属于合法的颜色字母表。
func (c Color) Valid() bool {
	return c >= 'A' && c <= 'Z'
}

// String 返回颜色对应的单字符字符串。
func (c Color) String() string {
	return string(rune(c))
}

// ParseColor 将单个大写字母的 token 解析为 Color。
func ParseColor(token string) (Color, error) {
	if len(token) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, token)
	}
	c := Color(token[0])
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, token)
	}
	return c, nil
}
