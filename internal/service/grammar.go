package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"raster-editor/internal/domain"
)

// rule 描述一种命令的整行语法。
// 捕获组依次为 ints 个整数，之后按需跟一个颜色或文件名。
type rule struct {
	pattern  *regexp.Regexp
	ints     int
	color    bool
	filename bool
}

const (
	intToken   = `(\d+)`
	colorToken = `([A-Z])`
)

// grammar 是标识到语法规则的分发表，每个 pattern 都锚定整行
var grammar = map[domain.Tag]rule{
	domain.TagInit:       newRule(domain.TagInit, 2, false),
	domain.TagClear:      newRule(domain.TagClear, 0, false),
	domain.TagPixel:      newRule(domain.TagPixel, 2, true),
	domain.TagVertical:   newRule(domain.TagVertical, 3, true),
	domain.TagHorizontal: newRule(domain.TagHorizontal, 3, true),
	domain.TagRect:       newRule(domain.TagRect, 4, true),
	domain.TagFill:       newRule(domain.TagFill, 2, true),
	domain.TagSave: {
		pattern:  regexp.MustCompile(`^S\s+(.+)$`),
		filename: true,
	},
	domain.TagExit: newRule(domain.TagExit, 0, false),
}

func newRule(tag domain.Tag, ints int, color bool) rule {
	tokens := []string{regexp.QuoteMeta(tag.String())}
	for i := 0; i < ints; i++ {
		tokens = append(tokens, intToken)
	}
	if color {
		tokens = append(tokens, colorToken)
	}
	return rule{
		pattern: regexp.MustCompile(`^` + strings.Join(tokens, `\s+`) + `$`),
		ints:    ints,
		color:   color,
	}
}

// ParseCommand 将一行输入解析为 domain.Command。
// 行首尾空白会被去掉；标识未知或参数不符合该标识的语法时返回 ErrInvalidCommand。
func ParseCommand(line string) (domain.Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.Command{}, fmt.Errorf("%w: empty line", ErrInvalidCommand)
	}

	tag := domain.Tag(line[0])
	r, ok := grammar[tag]
	if !ok {
		return domain.Command{}, fmt.Errorf("%w: unknown tag %q", ErrInvalidCommand, line[0])
	}
	m := r.pattern.FindStringSubmatch(line)
	if m == nil {
		return domain.Command{}, fmt.Errorf("%w: %q does not match %s grammar", ErrInvalidCommand, line, tag)
	}

	cmd := domain.Command{Tag: tag}
	groups := m[1:]
	if r.ints > 0 {
		cmd.Args = make([]int, r.ints)
		for i := 0; i < r.ints; i++ {
			n, err := strconv.Atoi(groups[i])
			if err != nil {
				return domain.Command{}, fmt.Errorf("%w: argument %d: %v", ErrInvalidCommand, i+1, err)
			}
			cmd.Args[i] = n
		}
	}
	if r.color {
		c, err := domain.ParseColor(groups[r.ints])
		if err != nil {
			return domain.Command{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
		}
		cmd.Color = c
	}
	if r.filename {
		cmd.Filename = groups[r.ints]
	}
	return cmd, nil
}
