package dto

type NoticeDTO struct {
	ID        string `json:"id"`
	Type      int8   `json:"type"` // 1-通过 2-拒绝
	PostID    uint64 `json:"postId"`
	PostTitle string `json:"postTitle"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

type NoticeListDTO struct {
	List        []*NoticeDTO `json:"list"`
	UnreadCount int64        `json:"unreadCount"`
}
