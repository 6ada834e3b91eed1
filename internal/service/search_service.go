package service

import (
	"Patchouli/internal/api/dto"
	"Patchouli/internal/pkg/consts"
	"Patchouli/internal/pkg/es"
	"context"
	log "log/slog"
	"time"
)

// MaxOffsetLimit Elastic 深分页限制
const MaxOffsetLimit = 10000

// TranslateTimeout 检索意图翻译的预算，超时回退关键词模式
const TranslateTimeout = 2 * time.Second

// QueryTranslator 自然语言短语 → 全文检索语法串
type QueryTranslator interface {
	Translate(ctx context.Context, phrase string) (string, error)
}

type SearchService interface {
	SearchPost(ctx context.Context, searchDTO *dto.SearchDTO) (*dto.PostFeedDTO, bool, error)
	SearchPostMe(ctx context.Context, userID uint64, searchDTO *dto.SearchDTO) (*dto.PostFeedDTO, bool, error)
}

type searchServiceImpl struct {
	postESRepo es.PostRepo
	translator QueryTranslator
}

func NewSearchService(postESRepo es.PostRepo, translator QueryTranslator) SearchService {
	return &searchServiceImpl{
		postESRepo: postESRepo,
		translator: translator,
	}
}

// resolveQuery 按模式决定送入索引的语法串。
// AI 模式下翻译失败或超时时回退原始短语，检索本身不受影响
func (s *searchServiceImpl) resolveQuery(ctx context.Context, searchDTO *dto.SearchDTO) (string, bool) {
	if searchDTO.Mode != consts.SearchModeAI {
		return searchDTO.Keyword, false
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, TranslateTimeout)
	defer cancel()

	query, err := s.translator.Translate(timeoutCtx, searchDTO.Keyword)
	if err != nil || query == "" {
		log.WarnContext(ctx, "检索意图翻译失败，回退关键词模式", "keyword", searchDTO.Keyword, "err", err)
		return searchDTO.Keyword, true
	}
	return query, false
}

// SearchPost 公开检索，只命中已发布帖子。返回值第二位表示AI模式是否降级
func (s *searchServiceImpl) SearchPost(ctx context.Context, searchDTO *dto.SearchDTO) (*dto.PostFeedDTO, bool, error) {
	if (searchDTO.Page-1)*searchDTO.PageSize >= MaxOffsetLimit {
		return &dto.PostFeedDTO{List: []*dto.PostDTO{}, HasMore: false}, false, nil
	}

	query, degraded := s.resolveQuery(ctx, searchDTO)
	from := (searchDTO.Page - 1) * searchDTO.PageSize

	posts, err := s.postESRepo.SearchPublished(ctx, query, from, searchDTO.PageSize+1)
	if err != nil {
		return nil, degraded, err
	}
	return toFeedDTOFromES(posts, searchDTO.PageSize), degraded, nil
}

// SearchPostMe 检索自己的帖子，不限状态
func (s *searchServiceImpl) SearchPostMe(ctx context.Context, userID uint64, searchDTO *dto.SearchDTO) (*dto.PostFeedDTO, bool, error) {
	if userID == 0 {
		return nil, false, ErrUnauthenticated
	}
	if (searchDTO.Page-1)*searchDTO.PageSize >= MaxOffsetLimit {
		return &dto.PostFeedDTO{List: []*dto.PostDTO{}, HasMore: false}, false, nil
	}

	query, degraded := s.resolveQuery(ctx, searchDTO)
	from := (searchDTO.Page - 1) * searchDTO.PageSize

	posts, err := s.postESRepo.SearchMine(ctx, userID, query, from, searchDTO.PageSize+1)
	if err != nil {
		return nil, degraded, err
	}
	return toFeedDTOFromES(posts, searchDTO.PageSize), degraded, nil
}
