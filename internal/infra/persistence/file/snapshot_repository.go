package filepersistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"raster-editor/internal/domain"
	"raster-editor/internal/repository"
)

// 保存文件的权限
const snapshotFileMode = 0o644

// SnapshotRepository 是 repository.SnapshotRepository 的本地文件实现，
// 每个快照写成一个纯文本文件。
type SnapshotRepository struct {
	baseDir string // 相对文件名的根目录，为空时使用当前工作目录
}

// NewSnapshotRepository 创建 SnapshotRepository 实例。
func NewSnapshotRepository(baseDir string) *SnapshotRepository {
	return &SnapshotRepository{baseDir: baseDir}
}

// SaveSnapshot 将快照数据写入文件，覆盖已有内容。
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(snapshot); err != nil {
		return err
	}

	path := r.resolve(snapshot.Name)
	logCtx := logrus.WithFields(logrus.Fields{"path": path, "version": snapshot.Version})

	if err := os.WriteFile(path, []byte(snapshot.Data), snapshotFileMode); err != nil {
		logCtx.WithError(err).Error("Failed to write snapshot file")
		return fmt.Errorf("%w: %s: %w", repository.ErrWriteFailed, path, err)
	}
	logCtx.WithField("bytes", len(snapshot.Data)).Debug("Snapshot written")
	return nil
}

// resolve 将相对文件名拼接到 baseDir 下，绝对路径保持不变
func (r *SnapshotRepository) resolve(name string) string {
	if r.baseDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.baseDir, name)
}

// validate 检查快照名称以及数据与尺寸是否一致
func validate(snapshot *domain.Snapshot) error {
	if snapshot == nil || snapshot.Name == "" {
		return fmt.Errorf("%w: empty name", repository.ErrInvalidSnapshot)
	}
	if !strings.HasSuffix(snapshot.Data, "\n") {
		return fmt.Errorf("%w: missing final newline", repository.ErrInvalidSnapshot)
	}
	rows := snapshot.Rows()
	if len(rows) != snapshot.Height {
		return fmt.Errorf("%w: %d rows, want %d", repository.ErrInvalidSnapshot, len(rows), snapshot.Height)
	}
	for i, row := range rows {
		if len(row) != snapshot.Width {
			return fmt.Errorf("%w: row %d has %d columns, want %d", repository.ErrInvalidSnapshot, i+1, len(row), snapshot.Width)
		}
	}
	return nil
}
