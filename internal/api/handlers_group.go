package api

import "Patchouli/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler       *handler.UserHandler
	PostHandler       *handler.PostHandler
	ModerationHandler *handler.ModerationHandler
	SearchHandler     *handler.SearchHandler
	NoticeHandler     *handler.NoticeHandler
	AttachmentHandler *handler.AttachmentHandler
}
