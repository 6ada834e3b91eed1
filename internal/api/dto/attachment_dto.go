package dto

// UploadResultDTO 附件上传结果
type UploadResultDTO struct {
	URL string `json:"url"`
}

// LinkPreviewDTO 链接附件预览
type LinkPreviewDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
