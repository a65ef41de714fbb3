package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"raster-editor/internal/domain"
	"raster-editor/internal/repository"
)

// Outcome 表示一行命令的处理结果。
type Outcome int

const (
	// OutcomeRejected 表示该行被丢弃，画布未改变
	OutcomeRejected Outcome = iota
	// OutcomeApplied 表示命令已应用
	OutcomeApplied
	// OutcomeExit 表示收到退出命令，调用者应结束会话
	OutcomeExit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeExit:
		return "exit"
	default:
		return "rejected"
	}
}

// Limits 限制初始化命令允许的画布尺寸，0 表示不限制。
type Limits struct {
	MaxWidth  int
	MaxHeight int
}

// handler 描述一个画布命令：先校验 points 返回的坐标，再调用 apply
type handler struct {
	points func(args []int) [][2]int
	apply  func(ctx context.Context, cmd domain.Command) error
}

// Interpreter 负责解析命令行并把命令应用到画布上。
// 状态只有两种：未初始化 (grid == nil) 和就绪；画布一旦创建就不会被替换。
type Interpreter struct {
	snapshots *SnapshotService
	limits    Limits
	grid      *domain.Grid
	version   uint // 已应用的修改命令数
	handlers  map[domain.Tag]handler
}

// NewInterpreter 创建处于未初始化状态的 Interpreter。
func NewInterpreter(snapshots repository.SnapshotRepository, limits Limits) *Interpreter {
	i := &Interpreter{
		snapshots: NewSnapshotService(snapshots),
		limits:    limits,
	}
	i.handlers = map[domain.Tag]handler{
		domain.TagClear: {
			apply: func(_ context.Context, _ domain.Command) error {
				i.grid.Clear()
				return nil
			},
		},
		domain.TagPixel: {
			points: func(a []int) [][2]int { return [][2]int{{a[0], a[1]}} },
			apply: func(_ context.Context, cmd domain.Command) error {
				return i.grid.SetColor(cmd.Args[0], cmd.Args[1], cmd.Color)
			},
		},
		domain.TagVertical: {
			points: func(a []int) [][2]int { return [][2]int{{a[0], a[1]}, {a[0], a[2]}} },
			apply: func(_ context.Context, cmd domain.Command) error {
				return i.grid.DrawVertical(cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Color)
			},
		},
		domain.TagHorizontal: {
			points: func(a []int) [][2]int { return [][2]int{{a[0], a[2]}, {a[1], a[2]}} },
			apply: func(_ context.Context, cmd domain.Command) error {
				return i.grid.DrawHorizontal(cmd.Args[2], cmd.Args[0], cmd.Args[1], cmd.Color)
			},
		},
		domain.TagRect: {
			points: func(a []int) [][2]int { return [][2]int{{a[0], a[1]}, {a[2], a[3]}} },
			apply: func(_ context.Context, cmd domain.Command) error {
				return i.grid.DrawRect(cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Args[3], cmd.Color)
			},
		},
		domain.TagFill: {
			points: func(a []int) [][2]int { return [][2]int{{a[0], a[1]}} },
			apply: func(_ context.Context, cmd domain.Command) error {
				return i.grid.Fill(cmd.Args[0], cmd.Args[1], cmd.Color)
			},
		},
		domain.TagSave: {
			apply: i.save,
		},
	}
	return i
}

// Ready 判断画布是否已经初始化。
func (i *Interpreter) Ready() bool { return i.grid != nil }

// Grid 返回当前画布，未初始化时为 nil。
func (i *Interpreter) Grid() *domain.Grid { return i.grid }

// Version 返回已应用的修改命令数。
func (i *Interpreter) Version() uint { return i.version }

// Exec 解析并执行一行命令。
// 被丢弃的行返回 OutcomeRejected 和说明原因的错误，这些错误都可以恢复，调用者继续读取下一行即可。
func (i *Interpreter) Exec(ctx context.Context, line string) (Outcome, error) {
	logCtx := logrus.WithField("line", line)

	cmd, err := ParseCommand(line)
	if err != nil {
		logCtx.WithError(err).Info("Command rejected")
		return OutcomeRejected, err
	}
	logCtx = logCtx.WithField("tag", cmd.Tag.String())

	switch {
	case cmd.Tag == domain.TagExit:
		logCtx.Debug("Exit requested")
		return OutcomeExit, nil
	case cmd.Tag == domain.TagInit:
		if err := i.init(cmd.Args[0], cmd.Args[1]); err != nil {
			logCtx.WithError(err).Info("Initialization rejected")
			return OutcomeRejected, err
		}
		logCtx.WithFields(logrus.Fields{"width": i.grid.Width(), "height": i.grid.Height()}).Debug("Grid initialized")
		return OutcomeApplied, nil
	case i.grid == nil:
		logCtx.Info("Command rejected before initialization")
		return OutcomeRejected, fmt.Errorf("%w: %s command needs a grid", ErrNotInitialized, cmd.Tag)
	}

	h := i.handlers[cmd.Tag]
	if h.points != nil {
		for _, p := range h.points(cmd.Args) {
			if !i.grid.Contains(p[0], p[1]) {
				err := fmt.Errorf("%w: (%d,%d) not in %dx%d grid", ErrOutOfBounds, p[0], p[1], i.grid.Width(), i.grid.Height())
				logCtx.WithError(err).Info("Command rejected")
				return OutcomeRejected, err
			}
		}
	}

	if err := h.apply(ctx, cmd); err != nil {
		logCtx.WithError(err).Warn("Command failed")
		return OutcomeRejected, err
	}
	if cmd.Tag.Mutates() {
		i.version++
	}
	logCtx.WithField("version", i.version).Debug("Command applied")
	return OutcomeApplied, nil
}

// init 创建画布，只允许调用一次
func (i *Interpreter) init(width, height int) error {
	if i.grid != nil {
		return fmt.Errorf("%w: %dx%d grid exists", ErrAlreadyInitialized, i.grid.Width(), i.grid.Height())
	}
	if (i.limits.MaxWidth > 0 && width > i.limits.MaxWidth) || (i.limits.MaxHeight > 0 && height > i.limits.MaxHeight) {
		return fmt.Errorf("%w: %dx%d exceeds limit %dx%d", ErrInvalidCommand, width, height, i.limits.MaxWidth, i.limits.MaxHeight)
	}
	grid, err := domain.NewGrid(width, height)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	i.grid = grid
	return nil
}

func (i *Interpreter) save(ctx context.Context, cmd domain.Command) error {
	return i.snapshots.Save(ctx, i.grid, cmd.Filename, i.version)
}
