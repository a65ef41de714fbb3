package domain

// Tag 是命令行开头的单字母命令标识。
type Tag byte

// 支持的命令标识
const (
	TagInit       Tag = 'I' // 初始化画布: I <width> <height>
	TagClear      Tag = 'C' // 清空画布: C
	TagPixel      Tag = 'L' // 单个像素: L <col> <row> <color>
	TagVertical   Tag = 'V' // 竖线: V <col> <row1> <row2> <color>
	TagHorizontal Tag = 'H' // 横线: H <col1> <col2> <row> <color>
	TagRect       Tag = 'K' // 矩形: K <col1> <row1> <col2> <row2> <color>
	TagFill       Tag = 'F' // 填充: F <col> <row> <color>
	TagSave       Tag = 'S' // 保存: S <filename>
	TagExit       Tag = 'X' // 退出: X
)

// String 返回标识字母。
func (t Tag) String() string {
	return string(rune(t))
}

// Mutates 判断该命令是否会修改画布内容。
func (t Tag) Mutates() bool {
	switch t {
	case TagClear, TagPixel, TagVertical, TagHorizontal, TagRect, TagFill:
		return true
	}
	return false
}

// Command 是一行输入解析后的结果，只在分发期间存在。
type Command struct {
	Tag      Tag    // 命令标识
	Args     []int  // 整数参数，顺序与命令语法一致
	Color    Color  // 颜色参数 (仅 L V H K F)
	Filename string // 文件名参数 (仅 S)
}
