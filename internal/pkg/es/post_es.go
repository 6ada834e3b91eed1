package es

import "time"

// PostES 写入 ES 的完整文档
type PostES struct {
	ID             uint64    `json:"id"`
	AuthorID       uint64    `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	Status         int8      `json:"status"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Tags           []string  `json:"tags"`
	SearchClues    string    `json:"search_clues"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
