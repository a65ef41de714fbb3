package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"raster-editor/internal/domain"
	"raster-editor/internal/repository/mocks"
	"raster-editor/internal/service"
)

func grid(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// exec 执行一行并要求得到指定结果
func exec(t *testing.T, interp *service.Interpreter, line string, want service.Outcome) error {
	t.Helper()
	outcome, err := interp.Exec(context.Background(), line)
	require.Equal(t, want, outcome, "line %q: %v", line, err)
	return err
}

func TestInterpreter_RejectsCommandsBeforeInit(t *testing.T) {
	// Arrange
	repo := mocks.NewSnapshotRepository(t)
	interp := service.NewInterpreter(repo, service.Limits{})

	// Act & Assert
	for _, line := range []string{"C", "L 1 1 A", "V 1 1 2 A", "H 1 2 1 A", "K 1 1 2 2 A", "F 1 1 A", "S out.txt"} {
		err := exec(t, interp, line, service.OutcomeRejected)
		assert.True(t, errors.Is(err, service.ErrNotInitialized), "line %q", line)
	}
	err := exec(t, interp, "G 2 3 J", service.OutcomeRejected)
	assert.True(t, errors.Is(err, service.ErrInvalidCommand))

	assert.False(t, interp.Ready())
	assert.Nil(t, interp.Grid())
	repo.AssertNotCalled(t, "SaveSnapshot", mock.Anything, mock.Anything)
}

func TestInterpreter_InitOnce(t *testing.T) {
	interp := service.NewInterpreter(mocks.NewSnapshotRepository(t), service.Limits{})

	exec(t, interp, "I 5 6", service.OutcomeApplied)
	require.True(t, interp.Ready())
	first := interp.Grid()
	exec(t, interp, "L 1 1 A", service.OutcomeApplied)

	// 再次初始化被拒绝，画布保持不变
	err := exec(t, interp, "I 2 2", service.OutcomeRejected)
	assert.True(t, errors.Is(err, service.ErrAlreadyInitialized))
	assert.Same(t, first, interp.Grid(), "画布不应被替换")
	assert.Equal(t, 5, interp.Grid().Width())
	c, err := interp.Grid().Color(1, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Color('A'), c)
}

func TestInterpreter_InitInvalidDimensions(t *testing.T) {
	interp := service.NewInterpreter(mocks.NewSnapshotRepository(t), service.Limits{})

	err := exec(t, interp, "I 0 5", service.OutcomeRejected)
	assert.True(t, errors.Is(err, service.ErrInvalidCommand))
	assert.True(t, errors.Is(err, domain.ErrInvalidDimensions))
	assert.False(t, interp.Ready())

	exec(t, interp, "I 1 1", service.OutcomeApplied)
}

func TestInterpreter_InitRejectsOversizedGrid(t *testing.T) {
	interp := service.NewInterpreter(mocks.NewSnapshotRepository(t), service.Limits{})

	for _, line := range []string{"I 3037000500 3037000500", "I 4294967296 4294967296", "I 100000 100000"} {
		err := exec(t, interp, line, service.OutcomeRejected)
		assert.True(t, errors.Is(err, service.ErrInvalidCommand), line)
		assert.True(t, errors.Is(err, domain.ErrInvalidDimensions), line)
		assert.False(t, interp.Ready(), line)
	}

	exec(t, interp, "L 1 1 A", service.OutcomeRejected)
	exec(t, interp, "I 2 2", service.OutcomeApplied)
	exec(t, interp, "L 1 1 A", service.OutcomeApplied)
}

func TestInterpreter_InitRespectsLimits(t *testing.T) {
	interp := service.NewInterpreter(mocks.NewSnapshotRepository(t), service.Limits{MaxWidth: 250, MaxHeight: 250})

	err := exec(t, interp, "I 251 10", service.OutcomeRejected)
	assert.True(t, errors.Is(err, service.ErrInvalidCommand))
	err = exec(t, interp, "I 10 251", service.OutcomeRejected)
	assert.True(t, errors.Is(err, service.ErrInvalidCommand))

	exec(t, interp, "I 250 250", service.OutcomeApplied)
}

func TestInterpreter_ExitInAnyState(t *testing.T) {
	interp := service.NewInterpreter(mocks.NewSnapshotRepository(t), service.Limits{})
	exec(t, interp, "X", service.OutcomeExit)

	exec(t, interp, "I 2 2", service.OutcomeApplied)
	exec(t, interp, "  X ", service.OutcomeExit)
	assert.Equal(t, "exit", service.OutcomeExit.String())
}

func TestInterpreter_MalformedLinesLeaveGridUnchanged(t *testing.T) {
	interp := service.NewInterpreter(mocks.NewSnapshotRepository(t), service.Limits{})
	exec(t, interp, "I 4 4", service.OutcomeApplied)
	exec(t, interp, "L 2 2 B", service.OutcomeApplied)
	before := interp.Grid().Serialize()
	version := interp.Version()

	for _, line := range []string{"G 2 3 J", "L 2 2 b", "V 1 1 W", "K 1 1 2 2 EE", "F", "", "C C"} {
		err := exec(t, interp, line, service.OutcomeRejected)
		assert.True(t, errors.Is(err, service.ErrInvalidCommand), "line %q", line)
	}

	assert.Equal(t, before, interp.Grid().Serialize())
	assert.Equal(t, version, interp.Version())
}

func TestInterpreter_OutOfBoundsRejected(t *testing.T) {
	interp := service.NewInterpreter(mocks.NewSnapshotRepository(t), service.Limits{})
	exec(t, interp, "I 3 3", service.OutcomeApplied)
	before := interp.Grid().Serialize()

	for _, line := range []string{"L 0 1 A", "L 4 1 A", "V 1 1 4 A", "H 1 4 2 A", "H 1 2 4 A", "K 1 1 4 3 A", "F 3 0 A"} {
		err := exec(t, interp, line, service.OutcomeRejected)
		assert.True(t, errors.Is(err, service.ErrOutOfBounds), "line %q", line)
	}
	assert.Equal(t, before, interp.Grid().Serialize())
	assert.Equal(t, uint(0), interp.Version())
}

func TestInterpreter_DrawCommands(t *testing.T) {
	interp := service.NewInterpreter(mocks.NewSnapshotRepository(t), service.Limits{})
	exec(t, interp, "I 5 4", service.OutcomeApplied)

	exec(t, interp, "V 1 4 2 W", service.OutcomeApplied)
	exec(t, interp, "H 5 3 1 Z", service.OutcomeApplied)
	exec(t, interp, "K 4 3 5 4 E", service.OutcomeApplied)
	// 倒置的矩形角点：命令被接受但不绘制
	exec(t, interp, "K 5 4 4 3 Q", service.OutcomeApplied)

	assert.Equal(t, grid(
		"OOZZZ",
		"WOOOO",
		"WOOEE",
		"WOOEE",
	), interp.Grid().Serialize())
	assert.Equal(t, uint(4), interp.Version())

	exec(t, interp, "C", service.OutcomeApplied)
	assert.Equal(t, grid("OOOOO", "OOOOO", "OOOOO", "OOOOO"), interp.Grid().Serialize())
	assert.Equal(t, uint(5), interp.Version())
}

func TestInterpreter_HorizontalUsesColumnsThenRow(t *testing.T) {
	interp := service.NewInterpreter(mocks.NewSnapshotRepository(t), service.Limits{})
	exec(t, interp, "I 5 3", service.OutcomeApplied)

	// H <col1> <col2> <row>：列顺序自动调整
	exec(t, interp, "H 4 2 3 Z", service.OutcomeApplied)

	assert.Equal(t, grid("OOOOO", "OOOOO", "OZZZO"), interp.Grid().Serialize())
}

func TestInterpreter_SaveHandsSnapshotToRepository(t *testing.T) {
	// Arrange
	repo := mocks.NewSnapshotRepository(t)
	interp := service.NewInterpreter(repo, service.Limits{})
	exec(t, interp, "I 3 2", service.OutcomeApplied)
	exec(t, interp, "L 3 2 A", service.OutcomeApplied)

	repo.On("SaveSnapshot", mock.Anything, mock.MatchedBy(func(s *domain.Snapshot) bool {
		return s.Name == "my file.txt" &&
			s.Data == grid("OOO", "OOA") &&
			s.Width == 3 && s.Height == 2 &&
			s.Version == 1
	})).Return(nil).Once()

	// Act
	exec(t, interp, "S my file.txt", service.OutcomeApplied)

	// Assert
	assert.Equal(t, uint(1), interp.Version(), "保存不计入版本号")
}

func TestInterpreter_SaveFailureIsRecoverable(t *testing.T) {
	repo := mocks.NewSnapshotRepository(t)
	interp := service.NewInterpreter(repo, service.Limits{})
	exec(t, interp, "I 2 2", service.OutcomeApplied)

	ioErr := errors.New("disk full")
	repo.On("SaveSnapshot", mock.Anything, mock.AnythingOfType("*domain.Snapshot")).Return(ioErr).Once()

	err := exec(t, interp, "S out.txt", service.OutcomeRejected)
	assert.True(t, errors.Is(err, service.ErrSaveFailed))
	assert.True(t, errors.Is(err, ioErr), "应保留底层 I/O 错误")

	// 会话继续可用
	exec(t, interp, "L 1 1 A", service.OutcomeApplied)
}

func TestNewInterpreter_PanicsOnNilRepository(t *testing.T) {
	assert.Panics(t, func() { service.NewInterpreter(nil, service.Limits{}) })
}
