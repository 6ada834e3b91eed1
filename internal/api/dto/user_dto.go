package dto

import "time"

type RegisterDTO struct {
	Username  string  `json:"username" binding:"required" validate:"min=6,max=20"`
	Password  string  `json:"password" binding:"required" validate:"min=6,max=20"`
	Nickname  string  `json:"nickname" validate:"omitempty,min=1,max=15"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserDTO struct {
	UserID    uint64     `json:"user_id"`
	Username  string     `json:"username,omitempty"`
	Nickname  string     `json:"nickname"`
	AvatarURL string     `json:"avatar_url"`
	Role      string     `json:"role"`
	IsBan     bool       `json:"is_ban"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// BanDTO 封禁/解封入参，重复设置同一状态视为成功
type BanDTO struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Ban    *bool  `json:"ban" binding:"required"`
}
