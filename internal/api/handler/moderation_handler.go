package handler

import (
	"Patchouli/internal/pkg/response"
	"Patchouli/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ModerationHandler 审核入口，路由层已限定 ADMIN 角色
type ModerationHandler struct {
	postSvc service.PostService
}

func NewModerationHandler(postSvc service.PostService) *ModerationHandler {
	return &ModerationHandler{
		postSvc: postSvc,
	}
}

// ReviewPosts 待审核队列，lastId 游标分页
func (s *ModerationHandler) ReviewPosts(c *gin.Context) {
	userID := c.GetUint64("user_id")

	lastID, _ := strconv.ParseUint(c.DefaultQuery("lastId", "0"), 10, 64)
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	feed, err := s.postSvc.GetReviewPosts(c.Request.Context(), userID, lastID, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

func (s *ModerationHandler) ApprovePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.postSvc.ApprovePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ModerationHandler) RejectPost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.postSvc.RejectPost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
