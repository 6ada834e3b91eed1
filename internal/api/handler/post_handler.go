package handler

import (
	"Patchouli/internal/api/dto"
	"Patchouli/internal/pkg/response"
	"Patchouli/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

// SubmitPost 投稿，新帖进入待审核队列
func (s *PostHandler) SubmitPost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.PostBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	item, degraded, err := s.postSvc.SubmitPost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if degraded {
		response.SuccessWithNotice(c, item, "检索线索生成暂不可用，已正常投稿")
		return
	}
	response.Success(c, item)
}

func (s *PostHandler) EditPost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.PostBaseDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	degraded, err := s.postSvc.EditPost(c.Request.Context(), userID, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if degraded {
		response.SuccessWithNotice(c, nil, "检索线索生成暂不可用，内容已保存")
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.postSvc.DeletePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	item, err := s.postSvc.GetPost(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// GetPostSelf 自己的帖子列表，含各状态
func (s *PostHandler) GetPostSelf(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, pageSize := pagination(c)

	feed, err := s.postSvc.GetPostSelf(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

// LastestPost 公开最新流
func (s *PostHandler) LastestPost(c *gin.Context) {
	page, pageSize := pagination(c)

	feed, err := s.postSvc.LastestPost(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}
	return page, pageSize
}
