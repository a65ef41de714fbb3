package domain

import (
	"strings"
	"time"
)

// Snapshot 存储某一时刻画布的完整内容，由保存命令生成并交给 SnapshotRepository 持久化。
type Snapshot struct {
	Name      string    // 保存目标（文件名）
	Width     int       // 画布列数
	Height    int       // 画布行数
	Version   uint      // 生成快照时已应用的修改命令数
	Data      string    // Grid.Serialize 的输出
	CreatedAt time.Time // 快照生成时间
}

// Rows 将快照数据按行拆分，不包含行尾换行符。
func (s *Snapshot) Rows() []string {
	if s.Data == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s.Data, "\n"), "\n")
}
