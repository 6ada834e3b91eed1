package handler

import (
	"Patchouli/internal/api/dto"
	"Patchouli/internal/pkg/response"
	"Patchouli/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchSvc service.SearchService
}

func NewSearchHandler(searchSvc service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchSvc: searchSvc,
	}
}

// SearchPost 公开检索，mode=keyword|ai
func (s *SearchHandler) SearchPost(c *gin.Context) {
	var searchDTO dto.SearchDTO
	if err := c.ShouldBindQuery(&searchDTO); err != nil {
		response.Error(c, err)
		return
	}

	feed, degraded, err := s.searchSvc.SearchPost(c.Request.Context(), &searchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	if degraded {
		response.SuccessWithNotice(c, feed, "智能检索暂不可用，已按关键词检索")
		return
	}
	response.Success(c, feed)
}

// SearchPostMe 检索自己的帖子
func (s *SearchHandler) SearchPostMe(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var searchDTO dto.SearchDTO
	if err := c.ShouldBindQuery(&searchDTO); err != nil {
		response.Error(c, err)
		return
	}

	feed, degraded, err := s.searchSvc.SearchPostMe(c.Request.Context(), userID, &searchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	if degraded {
		response.SuccessWithNotice(c, feed, "智能检索暂不可用，已按关键词检索")
		return
	}
	response.Success(c, feed)
}
