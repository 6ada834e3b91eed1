package github

import (
	"Patchouli/internal/api/config"
	"context"
	"encoding/base64"
	"fmt"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Client 基于 contents API 的附件托管客户端
type Client struct {
	httpClient *resty.Client
	cfg        config.GitHubConfig
}

func NewClient(cfg config.GitHubConfig) *Client {
	client := resty.New().
		SetBaseURL("https://api.github.com").
		SetTimeout(30*time.Second).
		SetAuthToken(cfg.Token).
		SetHeader("Accept", "application/vnd.github+json")

	return &Client{
		httpClient: client,
		cfg:        cfg,
	}
}

type uploadBody struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
}

// UploadFile 上传附件并返回 CDN 访问地址，文件名用 UUID 重命名防冲突
func (s *Client) UploadFile(ctx context.Context, fileName string, data []byte) (string, error) {
	ext := path.Ext(fileName)
	objectPath := fmt.Sprintf("attachments/%s/%s%s",
		time.Now().Format("2006/01"), uuid.NewString(), ext)

	body := uploadBody{
		Message: fmt.Sprintf("upload %s", objectPath),
		Content: base64.StdEncoding.EncodeToString(data),
		Branch:  s.cfg.Branch,
	}

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		Put(fmt.Sprintf("/repos/%s/%s/contents/%s", s.cfg.Owner, s.cfg.Repo, objectPath))
	if err != nil {
		log.ErrorContext(ctx, "附件上传失败", "path", objectPath, "error", err)
		return "", errors.Wrap(err, "github upload")
	}
	if resp.IsError() {
		log.ErrorContext(ctx, "附件上传被拒绝", "path", objectPath, "status", resp.StatusCode())
		return "", errors.Errorf("github upload status %d", resp.StatusCode())
	}

	cdnURL := strings.TrimSuffix(s.cfg.CDNBase, "/") + "/" + objectPath
	log.InfoContext(ctx, "附件上传成功", "url", cdnURL)
	return cdnURL, nil
}
