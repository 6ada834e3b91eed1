package service

import (
	"Patchouli/internal/api/dto"
	"Patchouli/internal/pkg/github"
	"Patchouli/internal/pkg/preview"
	"context"
	"errors"
	log "log/slog"
)

// MaxUploadSize 附件大小上限（contents API 的单文件限制以内）
const MaxUploadSize = 20 << 20

type AttachmentService interface {
	Upload(ctx context.Context, userID uint64, fileName string, data []byte) (*dto.UploadResultDTO, error)
	PreviewLink(ctx context.Context, rawURL string) (*dto.LinkPreviewDTO, error)
}

type attachmentServiceImpl struct {
	ghClient *github.Client
	fetcher  *preview.Fetcher
}

func NewAttachmentService(ghClient *github.Client, fetcher *preview.Fetcher) AttachmentService {
	return &attachmentServiceImpl{
		ghClient: ghClient,
		fetcher:  fetcher,
	}
}

// Upload 上传附件，返回 CDN 地址。URL 对生命周期引擎不透明
func (s *attachmentServiceImpl) Upload(ctx context.Context, userID uint64, fileName string, data []byte) (*dto.UploadResultDTO, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	if len(data) == 0 || len(data) > MaxUploadSize {
		return nil, ErrParamInvalid
	}

	url, err := s.ghClient.UploadFile(ctx, fileName, data)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		log.ErrorContext(ctx, "附件托管上传失败", "err", err)
		return nil, ErrExternalUnavailable
	}

	return &dto.UploadResultDTO{URL: url}, nil
}

// PreviewLink 抓取链接附件的标题与描述
func (s *attachmentServiceImpl) PreviewLink(ctx context.Context, rawURL string) (*dto.LinkPreviewDTO, error) {
	result, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, ErrExternalUnavailable
	}
	return &dto.LinkPreviewDTO{
		Title:       result.Title,
		Description: result.Description,
	}, nil
}
