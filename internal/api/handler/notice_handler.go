package handler

import (
	"Patchouli/internal/pkg/response"
	"Patchouli/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NoticeHandler struct {
	noticeSvc service.NotificationService
}

func NewNoticeHandler(noticeSvc service.NotificationService) *NoticeHandler {
	return &NoticeHandler{
		noticeSvc: noticeSvc,
	}
}

// GetNoticeList 审核通知列表，附带未读计数
func (s *NoticeHandler) GetNoticeList(c *gin.Context) {
	userID := c.GetUint64("user_id")

	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.ParseInt(c.DefaultQuery("pageSize", "20"), 10, 64)
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	list, err := s.noticeSvc.GetNoticeList(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NoticeHandler) MarkAsRead(c *gin.Context) {
	userID := c.GetUint64("user_id")
	noticeID := c.Param("notice_id")

	if err := s.noticeSvc.MarkAsRead(c.Request.Context(), userID, noticeID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NoticeHandler) MarkAllAsRead(c *gin.Context) {
	userID := c.GetUint64("user_id")

	if err := s.noticeSvc.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
