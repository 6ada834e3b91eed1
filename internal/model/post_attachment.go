package model

const (
	AttachmentKindLink = "link"
	AttachmentKindFile = "file"
)

// PostAttachment 帖子附件，URL 对引擎不透明
type PostAttachment struct {
	ID       uint64 `gorm:"primaryKey"`
	PostID   uint64 `gorm:"not null;index:idx_attachment_post_id"`
	Name     string `gorm:"type:varchar(255);not null"`
	Kind     string `gorm:"type:varchar(10);not null"` // link / file
	URL      string `gorm:"type:varchar(512);not null"`
	Position int    `gorm:"not null;default:0"` // 附件在帖子内的顺序
}

func (PostAttachment) TableName() string {
	return "post_attachments"
}
