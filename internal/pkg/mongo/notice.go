package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoticeModel 审核结果通知模型
type NoticeModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID uint64             `bson:"receiver_id" json:"receiverId"` // 作者ID
	Type       int8               `bson:"type" json:"type"`              // 通知类型: 1-通过, 2-拒绝
	PostID     uint64             `bson:"post_id" json:"postId"`         // 关联帖子ID
	PostTitle  string             `bson:"post_title" json:"postTitle"`   // 帖子标题快照
	IsRead     bool               `bson:"is_read" json:"isRead"`         // 是否已读
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`   // 创建时间
}
