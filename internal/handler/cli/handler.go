package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"raster-editor/internal/service"
)

// 单行命令的最大长度
const maxLineSize = 1 << 20

// Session 从行输入流中读取命令并交给 Interpreter 执行
type Session struct {
	interp    *service.Interpreter
	prompt    string    // 交互终端下每次读取前输出的提示符
	promptOut io.Writer // 提示符的输出位置
}

// NewSession 创建 Session 实例
func NewSession(interp *service.Interpreter, prompt string, promptOut io.Writer) *Session {
	if interp == nil {
		panic("Interpreter cannot be nil for Session")
	}
	if promptOut == nil {
		promptOut = io.Discard
	}
	return &Session{
		interp:    interp,
		prompt:    prompt,
		promptOut: promptOut,
	}
}

// Run 逐行读取 in 并执行，直到收到退出命令或输入结束。
// 画布初始化之前只有初始化和退出命令会被接受，其余行被丢弃并继续等待。
// 被丢弃的行和保存失败都只记录日志；只有读取错误和 ctx 取消会作为错误返回。
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	interactive := isTerminal(in)

	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if interactive && s.prompt != "" {
			fmt.Fprint(s.promptOut, s.prompt)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				logrus.WithError(err).Error("Failed to read input")
				return fmt.Errorf("read input: %w", err)
			}
			if !s.interp.Ready() {
				logrus.Warn("Input ended before the grid was initialized")
			}
			logrus.WithField("lines", lineNo).Debug("Input ended")
			return nil
		}
		lineNo++

		outcome, err := s.interp.Exec(ctx, scanner.Text())
		switch outcome {
		case service.OutcomeExit:
			logrus.WithField("lines", lineNo).Debug("Session terminated by exit command")
			return nil
		case service.OutcomeRejected:
			s.report(lineNo, err)
		}
	}
}

// report 记录被丢弃的行；保存失败属于 I/O 错误，使用 Error 级别
func (s *Session) report(lineNo int, err error) {
	logCtx := logrus.WithField("line_no", lineNo).WithError(err)
	switch {
	case errors.Is(err, service.ErrSaveFailed):
		logCtx.Error("Save failed, session continues")
	case errors.Is(err, service.ErrNotInitialized):
		logCtx.Info("Waiting for initialization command")
	default:
		logCtx.Info("Line ignored")
	}
}

// isTerminal 判断输入是否来自交互终端
func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
