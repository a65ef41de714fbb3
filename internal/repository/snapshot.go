package repository

import (
	"context"

	"raster-editor/internal/domain"
)

// SnapshotRepository 定义了画布快照的持久化操作。
type SnapshotRepository interface {
	// SaveSnapshot 将快照写入 snapshot.Name 指定的位置，已存在的内容会被覆盖。
	// 写入失败时返回包装后的底层错误。
	SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error
}
