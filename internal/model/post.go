package model

import (
	"time"
)

type Post struct {
	ID          uint64     `gorm:"primaryKey"`
	AuthorID    uint64     `gorm:"not null;index:idx_author_id" json:"author_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	SearchClues *string    `gorm:"type:varchar(255)" json:"search_clues"` // AI生成的检索线索，仅作辅助
	Status      PostStatus `gorm:"not null;default:0;index:idx_status" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// 关联关系
	Author      User             `gorm:"foreignKey:AuthorID;references:ID"`
	Tags        []PostTag        `gorm:"foreignKey:PostID;references:ID"`
	Attachments []PostAttachment `gorm:"foreignKey:PostID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
