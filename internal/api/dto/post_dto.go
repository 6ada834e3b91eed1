package dto

// AttachmentDTO 附件，URL 对引擎不透明
type AttachmentDTO struct {
	Name string `json:"name" binding:"required" validate:"min=1,max=255"`
	Kind string `json:"kind" binding:"required" validate:"oneof=link file"`
	URL  string `json:"url" binding:"required" validate:"min=1,max=512"`
}

// PostBaseDTO 投稿/编辑入参
type PostBaseDTO struct {
	Title       string          `json:"title" binding:"required" validate:"min=1,max=255"`
	Body        string          `json:"body" binding:"required" validate:"min=1,max=20000"`
	Tags        []string        `json:"tags" validate:"max=5"`
	Attachments []AttachmentDTO `json:"attachments" validate:"max=9"`
}

type PostDTO struct {
	// Post
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Tags        []string `json:"tags"`
	SearchClues string   `json:"search_clues,omitempty"`
	Status      *int8    `json:"status,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`

	// PostAttachment
	Attachments []*AttachmentDTO `json:"attachments"`

	// User
	AuthorID  uint64 `json:"author_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// PostFeedDTO 列表页，lastId 为游标（审核队列用）
type PostFeedDTO struct {
	List    []*PostDTO `json:"list"`
	HasMore bool       `json:"hasMore"`
	LastID  uint64     `json:"lastId,omitempty"`
}
