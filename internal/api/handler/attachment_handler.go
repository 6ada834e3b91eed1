package handler

import (
	"Patchouli/internal/pkg/response"
	"Patchouli/internal/service"
	"io"

	"github.com/gin-gonic/gin"
)

type AttachmentHandler struct {
	attachmentSvc service.AttachmentService
}

func NewAttachmentHandler(attachmentSvc service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentSvc: attachmentSvc,
	}
}

// Upload 附件上传代理，返回托管后的 CDN 地址
func (s *AttachmentHandler) Upload(c *gin.Context) {
	userID := c.GetUint64("user_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if fileHeader.Size > service.MaxUploadSize {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.attachmentSvc.Upload(c.Request.Context(), userID, fileHeader.Filename, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// PreviewLink 链接附件预览
func (s *AttachmentHandler) PreviewLink(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.attachmentSvc.PreviewLink(c.Request.Context(), rawURL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
