package kafka

import (
	"Patchouli/internal/model"
	"time"
)

// 帖子生命周期事件类型
const (
	EventPostCreated  = "post_created"
	EventPostUpdated  = "post_updated"
	EventPostApproved = "post_approved"
	EventPostRejected = "post_rejected"
	EventPostDeleted  = "post_deleted"
)

// PostEvent 生命周期引擎写库成功后发出的事件。
// 消费端据此维护搜索索引并投递审核通知。
type PostEvent struct {
	EventID   string           `json:"event_id"`
	Type      string           `json:"type"`
	PostID    uint64           `json:"post_id"`
	AuthorID  uint64           `json:"author_id"`
	Status    model.PostStatus `json:"status"`
	Title     string           `json:"title"`
	TS        int64            `json:"ts"` // 毫秒时间戳，作为ES外部版本号
	EmittedAt time.Time        `json:"emitted_at"`
}
