package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raster-editor/internal/domain"
	"raster-editor/internal/service"
)

func TestParseCommand_Valid(t *testing.T) {
	tests := []struct {
		line string
		want domain.Command
	}{
		{"I 5 6", domain.Command{Tag: domain.TagInit, Args: []int{5, 6}}},
		{"  I 10 9  ", domain.Command{Tag: domain.TagInit, Args: []int{10, 9}}},
		{"C", domain.Command{Tag: domain.TagClear}},
		{"L 2 3 A", domain.Command{Tag: domain.TagPixel, Args: []int{2, 3}, Color: 'A'}},
		{"V 2 3 4 W", domain.Command{Tag: domain.TagVertical, Args: []int{2, 3, 4}, Color: 'W'}},
		{"H 3 4 2 Z", domain.Command{Tag: domain.TagHorizontal, Args: []int{3, 4, 2}, Color: 'Z'}},
		{"K 2 7 8 8 E", domain.Command{Tag: domain.TagRect, Args: []int{2, 7, 8, 8}, Color: 'E'}},
		{"F 3 3 J", domain.Command{Tag: domain.TagFill, Args: []int{3, 3}, Color: 'J'}},
		{"S one.bmp", domain.Command{Tag: domain.TagSave, Filename: "one.bmp"}},
		{"S my picture.txt", domain.Command{Tag: domain.TagSave, Filename: "my picture.txt"}},
		{"X", domain.Command{Tag: domain.TagExit}},
		{"L 1\t1 B", domain.Command{Tag: domain.TagPixel, Args: []int{1, 1}, Color: 'B'}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := service.ParseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Invalid(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"G 2 3 J",     // 未知标识
		"i 5 6",       // 小写标识
		"I 5",         // 参数不足
		"I 5 6 7",     // 参数过多
		"I -5 6",      // 负数
		"I 5 x",       // 非整数
		"I5 6",        // 标识后缺少空白
		"C 1",         // 无参数命令带参数
		"CLEAR",       // 只匹配前缀
		"L 2 3 a",     // 小写颜色
		"L 2 3 AB",    // 多字母颜色
		"L 2 3",       // 缺少颜色
		"V 2 3 W",     // 竖线参数不足
		"K 1 1 2 2",   // 矩形缺少颜色
		"F 3 3 J K",   // 多余 token
		"S",           // 缺少文件名
		"X now",       // 退出命令带参数
		// 整数溢出
		"L 99999999999999999999 1 A",
	}
	for _, line := range lines {
		_, err := service.ParseCommand(line)
		assert.True(t, errors.Is(err, service.ErrInvalidCommand), "行 %q 应被拒绝", line)
	}
}
