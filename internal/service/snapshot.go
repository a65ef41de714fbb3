package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"raster-editor/internal/domain"
	"raster-editor/internal/repository"
)

// SnapshotService 负责生成画布快照并交给 SnapshotRepository 持久化。
type SnapshotService struct {
	snapshotRepo repository.SnapshotRepository
}

// NewSnapshotService 创建 SnapshotService 实例。
func NewSnapshotService(snapshotRepo repository.SnapshotRepository) *SnapshotService {
	if snapshotRepo == nil {
		panic("SnapshotRepository cannot be nil for SnapshotService")
	}
	return &SnapshotService{snapshotRepo: snapshotRepo}
}

// Save 将 grid 的当前内容保存到 name。
// 写入失败返回包装了底层错误的 ErrSaveFailed，调用者可以继续使用画布。
func (s *SnapshotService) Save(ctx context.Context, grid *domain.Grid, name string, version uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"name": name, "version": version})

	// 1. 生成快照
	snapshot := grid.Snapshot(name, version)

	// 2. 持久化 (调用 Repository)
	if err := s.snapshotRepo.SaveSnapshot(ctx, snapshot); err != nil {
		logCtx.WithError(err).Warn("Failed to save snapshot")
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	logCtx.WithFields(logrus.Fields{"width": snapshot.Width, "height": snapshot.Height}).Info("Snapshot saved")
	return nil
}
