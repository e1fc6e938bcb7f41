package queue

import (
	"encoding/json"

	"github.com/gogreen-admin/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskHomepageCacheRebuild 首页内容缓存重建任务
	TaskHomepageCacheRebuild = constants.TaskHomepageCacheRebuild
	// TaskContentExpirySweep 过期内容清扫任务
	TaskContentExpirySweep = constants.TaskContentExpirySweep
)

// HomepageCacheRebuildPayload 首页内容缓存重建任务载荷
type HomepageCacheRebuildPayload struct {
	Kind      string `json:"kind"`
	ContentID uint   `json:"content_id"`
}

// ContentExpirySweepPayload 过期内容清扫任务载荷
type ContentExpirySweepPayload struct {
	TriggeredAtUnix int64 `json:"triggered_at_unix"`
}

// NewHomepageCacheRebuildTask 创建首页内容缓存重建任务
func NewHomepageCacheRebuildTask(payload HomepageCacheRebuildPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskHomepageCacheRebuild, body), nil
}

// NewContentExpirySweepTask 创建过期内容清扫任务
func NewContentExpirySweepTask(payload ContentExpirySweepPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContentExpirySweep, body), nil
}
