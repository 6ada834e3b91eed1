package preview

import (
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// LinkPreview 链接附件的站点摘要
type LinkPreview struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Fetcher struct {
	httpClient *resty.Client
}

func NewFetcher() *Fetcher {
	ua := "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	client := resty.New().
		SetTimeout(10*time.Second).
		SetHeader("User-Agent", ua)

	return &Fetcher{httpClient: client}
}

// Fetch 抓取链接标题与描述，供链接附件展示
func (s *Fetcher) Fetch(ctx context.Context, rawURL string) (*LinkPreview, error) {
	resp, err := s.httpClient.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		log.WarnContext(ctx, "链接预览抓取失败", "url", rawURL, "error", err)
		return nil, errors.Wrap(err, "fetch link")
	}
	if resp.IsError() {
		return nil, errors.Errorf("fetch link status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, errors.Wrap(err, "parse link html")
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if ogTitle, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && ogTitle != "" {
		title = strings.TrimSpace(ogTitle)
	}

	description, _ := doc.Find(`meta[name="description"]`).Attr("content")
	if ogDesc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && ogDesc != "" {
		description = ogDesc
	}

	return &LinkPreview{
		Title:       title,
		Description: strings.TrimSpace(description),
	}, nil
}
