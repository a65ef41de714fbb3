package domain

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Grid 是一个固定尺寸的像素画布。
// 对外的坐标全部从 1 开始，(1,1) 为左上角；内部按行优先存放在一维切片中。
type Grid struct {
	width  int     // 列数
	height int     // 行数
	cells  []Color // 长度为 width*height，行优先
}

// point 是 0 起始的内部坐标
type point struct {
	col, row int
}

// 8 个方向的相邻偏移量（含对角线），供填充使用
var neighbours = [8]point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// MaxCells 是单个画布允许的最大像素数 (64 MiB)。
const MaxCells = 1 << 26

// NewGrid 创建一个 width 列、height 行的画布，所有像素为空白色。
// 宽高必须至少为 1，且 width*height 不能超过 MaxCells。
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	// 用除法比较，避免 width*height 溢出
	if width > MaxCells/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidDimensions, width, height, MaxCells)
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Color, width*height),
	}
	g.Clear()
	return g, nil
}

// Width 返回画布列数。
func (g *Grid) Width() int { return g.width }

// Height 返回画布行数。
func (g *Grid) Height() int { return g.height }

// Contains 判断 1 起始的坐标 (col, row) 是否在画布内。
func (g *Grid) Contains(col, row int) bool {
	return col >= 1 && col <= g.width && row >= 1 && row <= g.height
}

// Clear 将所有像素重置为空白色。
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Blank
	}
}

// Color 返回 (col, row) 处的颜色。
func (g *Grid) Color(col, row int) (Color, error) {
	if err := g.checkPoint(col, row); err != nil {
		return 0, err
	}
	return g.at(col-1, row-1), nil
}

// SetColor 设置单个像素的颜色。
func (g *Grid) SetColor(col, row int, c Color) error {
	if err := g.checkColor(c); err != nil {
		return err
	}
	if err := g.checkPoint(col, row); err != nil {
		return err
	}
	g.set(col-1, row-1, c)
	return nil
}

// DrawVertical 在第 col 列绘制从 row1 到 row2 (含) 的竖线，两个行号的顺序无关。
func (g *Grid) DrawVertical(col, row1, row2 int, c Color) error {
	if err := g.checkColor(c); err != nil {
		return err
	}
	if err := g.checkPoints(col, row1, col, row2); err != nil {
		return err
	}
	top, bottom := order(row1, row2)
	for row := top; row <= bottom; row++ {
		g.set(col-1, row-1, c)
	}
	return nil
}

// DrawHorizontal 在第 row 行绘制从 col1 到 col2 (含) 的横线，两个列号的顺序无关。
func (g *Grid) DrawHorizontal(row, col1, col2 int, c Color) error {
	if err := g.checkColor(c); err != nil {
		return err
	}
	if err := g.checkPoints(col1, row, col2, row); err != nil {
		return err
	}
	left, right := order(col1, col2)
	for col := left; col <= right; col++ {
		g.set(col-1, row-1, c)
	}
	return nil
}

// DrawRect 填充左上角 (col1,row1) 到右下角 (col2,row2) 的矩形。
// 与横线/竖线不同，这里不会交换角点：col1 > col2 或 row1 > row2 时什么也不画。
func (g *Grid) DrawRect(col1, row1, col2, row2 int, c Color) error {
	if err := g.checkColor(c); err != nil {
		return err
	}
	if err := g.checkPoints(col1, row1, col2, row2); err != nil {
		return err
	}
	for row := row1; row <= row2; row++ {
		for col := col1; col <= col2; col++ {
			g.set(col-1, row-1, c)
		}
	}
	return nil
}

// Fill 从 (col, row) 开始，把与起点颜色相同且 8 方向连通的区域全部涂成 c。
// 参考颜色只在入口读取一次；c 与参考颜色相同时直接返回。
func (g *Grid) Fill(col, row int, c Color) error {
	if err := g.checkColor(c); err != nil {
		return err
	}
	if err := g.checkPoint(col, row); err != nil {
		return err
	}
	start := point{col - 1, row - 1}
	ref := g.at(start.col, start.row)
	if ref == c {
		return nil
	}

	// 入栈时立即着色，每个像素最多入栈一次
	g.set(start.col, start.row, c)
	stack := []point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range neighbours {
			n := point{p.col + d.col, p.row + d.row}
			if n.col < 0 || n.col >= g.width || n.row < 0 || n.row >= g.height {
				continue
			}
			if g.at(n.col, n.row) != ref {
				continue
			}
			g.set(n.col, n.row, c)
			stack = append(stack, n)
		}
	}
	return nil
}

// Serialize 按行输出画布：共 height 行，每行 width 个颜色字符并以 '\n' 结尾。
func (g *Grid) Serialize() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			b.WriteByte(byte(g.at(col, row)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo 实现 io.WriterTo，写出 Serialize 的结果。
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.Serialize())
	return int64(n), err
}

// Snapshot 生成当前画布的快照，用于持久化。
func (g *Grid) Snapshot(name string, version uint) *Snapshot {
	return &Snapshot{
		Name:      name,
		Width:     g.width,
		Height:    g.height,
		Version:   version,
		Data:      g.Serialize(),
		CreatedAt: time.Now().UTC(),
	}
}

// --- 内部辅助函数 ---

func (g *Grid) at(col, row int) Color {
	return g.cells[row*g.width+col]
}

func (g *Grid) set(col, row int, c Color) {
	g.cells[row*g.width+col] = c
}

func (g *Grid) checkPoint(col, row int) error {
	if !g.Contains(col, row) {
		return fmt.Errorf("%w: (%d,%d) not in %dx%d grid", ErrOutOfBounds, col, row, g.width, g.height)
	}
	return nil
}

// checkPoints 校验线段或矩形的两个端点，保证出错时画布不被部分修改
func (g *Grid) checkPoints(col1, row1, col2, row2 int) error {
	if err := g.checkPoint(col1, row1); err != nil {
		return err
	}
	return g.checkPoint(col2, row2)
}

func (g *Grid) checkColor(c Color) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidColor, byte(c))
	}
	return nil
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
