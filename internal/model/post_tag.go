package model

// PostTag 帖子标签，取值受配置的标签词表约束
type PostTag struct {
	ID     uint64 `gorm:"primaryKey"`
	PostID uint64 `gorm:"not null;index:idx_tag_post_id"`
	Name   string `gorm:"type:varchar(50);not null"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
