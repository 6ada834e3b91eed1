package es

import (
	"Patchouli/internal/model"
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 10000

var searchFields = []string{"title^2", "body", "tags", "search_clues"}

type PostRepo interface {
	SearchPublished(ctx context.Context, query string, from, size int) ([]*PostES, error)
	SearchMine(ctx context.Context, authorID uint64, query string, from, size int) ([]*PostES, error)
	GetLatestPublished(ctx context.Context, from, size int) ([]*PostES, error)
	GetPostById(ctx context.Context, id uint64) (*PostES, error)
	IndexPost(ctx context.Context, post *PostES, version int64) error
	DeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client}
}

// SearchPublished 公开检索：只命中已发布帖子
func (s *PostRepoImpl) SearchPublished(ctx context.Context, query string, from, size int) ([]*PostES, error) {
	if from >= MaxSearchDepth {
		return []*PostES{}, nil
	}

	statusFilter := []types.Query{{
		Term: map[string]types.TermQuery{
			"status": {Value: int8(model.PostStatusPublished)},
		},
	}}

	return s.grammarSearch(ctx, query, statusFilter, from, size)
}

// SearchMine 作者检索自己的帖子，不过滤状态
func (s *PostRepoImpl) SearchMine(ctx context.Context, authorID uint64, query string, from, size int) ([]*PostES, error) {
	if from >= MaxSearchDepth {
		return []*PostES{}, nil
	}

	authorFilter := []types.Query{{
		Term: map[string]types.TermQuery{
			"author_id": {Value: authorID},
		},
	}}

	return s.grammarSearch(ctx, query, authorFilter, from, size)
}

// grammarSearch 把语法串解析成 bool 查询：AND 组之间是 Must，组内 OR 是 Should
func (s *PostRepoImpl) grammarSearch(ctx context.Context, query string, filters []types.Query, from, size int) ([]*PostES, error) {
	groups := ParseQuery(query)
	if len(groups) == 0 {
		return []*PostES{}, nil
	}

	boolQuery := &types.BoolQuery{
		Filter: filters,
		Must:   make([]types.Query, 0, len(groups)),
	}

	for _, group := range groups {
		if len(group) == 1 {
			boolQuery.Must = append(boolQuery.Must, termQuery(group[0]))
			continue
		}

		minimum := "1"
		should := make([]types.Query, 0, len(group))
		for _, term := range group {
			should = append(should, termQuery(term))
		}
		boolQuery.Must = append(boolQuery.Must, types.Query{
			Bool: &types.BoolQuery{
				Should:             should,
				MinimumShouldMatch: minimum,
			},
		})
	}

	req := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{Bool: boolQuery}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, req)
}

func termQuery(term string) types.Query {
	return types.Query{
		MultiMatch: &types.MultiMatchQuery{
			Query:  term,
			Fields: searchFields,
		},
	}
}

func (s *PostRepoImpl) GetLatestPublished(ctx context.Context, from, size int) ([]*PostES, error) {
	searchReq := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"status": {Value: int8(model.PostStatusPublished)},
			},
		}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_at": {Order: &sortorder.Desc},
		}}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, searchReq)
}

func (s *PostRepoImpl) GetPostById(ctx context.Context, id uint64) (*PostES, error) {
	docID := strconv.FormatUint(id, 10)

	resp, err := s.client.Get(PostIndex, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil, nil
			}
		}
		return nil, err
	}

	if !resp.Found || resp.Source_ == nil {
		return nil, nil
	}

	var post PostES
	if err = json.Unmarshal(resp.Source_, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES, version int64) error {
	docID := strconv.FormatUint(post.ID, 10)

	_, err := s.client.Index(PostIndex).
		Id(docID).
		Document(post).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(PostIndex, docID).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *PostRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*PostES, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*PostES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var post PostES
		if hit.Source_ == nil {
			continue
		}
		if err = json.Unmarshal(hit.Source_, &post); err != nil {
			continue
		}
		results = append(results, &post)
	}
	return results, nil
}
