package service

import (
	"Patchouli/internal/api/dto"
	"Patchouli/internal/pkg/consts"
	"Patchouli/internal/pkg/es"
	"context"
	"errors"
	"testing"
)

type mockTranslator struct {
	translateFn func(ctx context.Context, phrase string) (string, error)
}

func (m *mockTranslator) Translate(ctx context.Context, phrase string) (string, error) {
	if m.translateFn != nil {
		return m.translateFn(ctx, phrase)
	}
	return phrase, nil
}

// 关键词模式：短语原样进索引，不触碰翻译器
func TestSearchPost_KeywordMode(t *testing.T) {
	var gotQuery string
	esRepo := &mockESRepo{
		searchPublishedFn: func(_ context.Context, query string, from, size int) ([]*es.PostES, error) {
			gotQuery = query
			return []*es.PostES{{ID: 1, Title: "红石中继器"}}, nil
		},
	}
	translator := &mockTranslator{
		translateFn: func(context.Context, string) (string, error) {
			t.Error("关键词模式不应调用翻译器")
			return "", nil
		},
	}
	svc := NewSearchService(esRepo, translator)

	result, degraded, err := svc.SearchPost(context.Background(), &dto.SearchDTO{
		Keyword: "红石 中继器", Mode: consts.SearchModeKeyword, Page: 1, PageSize: 10,
	})
	if err != nil {
		t.Fatalf("SearchPost 失败: %v", err)
	}
	if degraded {
		t.Error("关键词模式不存在降级")
	}
	if gotQuery != "红石 中继器" {
		t.Errorf("送入索引的语法串 = %q, 期望原短语", gotQuery)
	}
	if len(result.List) != 1 {
		t.Errorf("结果条数 = %d, 期望 1", len(result.List))
	}
}

// AI 模式：翻译产物作为语法串
func TestSearchPost_AIMode(t *testing.T) {
	var gotQuery string
	esRepo := &mockESRepo{
		searchPublishedFn: func(_ context.Context, query string, from, size int) ([]*es.PostES, error) {
			gotQuery = query
			return nil, nil
		},
	}
	translator := &mockTranslator{
		translateFn: func(_ context.Context, phrase string) (string, error) {
			return "脚本 报错 OR 异常", nil
		},
	}
	svc := NewSearchService(esRepo, translator)

	_, degraded, err := svc.SearchPost(context.Background(), &dto.SearchDTO{
		Keyword: "我的脚本为什么报错", Mode: consts.SearchModeAI, Page: 1, PageSize: 10,
	})
	if err != nil {
		t.Fatalf("SearchPost 失败: %v", err)
	}
	if degraded {
		t.Error("翻译成功不应降级")
	}
	if gotQuery != "脚本 报错 OR 异常" {
		t.Errorf("语法串 = %q, 期望翻译产物", gotQuery)
	}
}

// AI 模式翻译故障时必须回退原短语，检索结果与关键词模式一致
func TestSearchPost_AIFallbackEqualsKeyword(t *testing.T) {
	queries := make([]string, 0, 2)
	esRepo := &mockESRepo{
		searchPublishedFn: func(_ context.Context, query string, from, size int) ([]*es.PostES, error) {
			queries = append(queries, query)
			return []*es.PostES{{ID: 7}}, nil
		},
	}
	translator := &mockTranslator{
		translateFn: func(context.Context, string) (string, error) {
			return "", errors.New("模型服务不可用")
		},
	}
	svc := NewSearchService(esRepo, translator)

	aiResult, degraded, err := svc.SearchPost(context.Background(), &dto.SearchDTO{
		Keyword: "实体 生成", Mode: consts.SearchModeAI, Page: 1, PageSize: 10,
	})
	if err != nil {
		t.Fatalf("翻译故障不应使检索失败: %v", err)
	}
	if !degraded {
		t.Error("期望降级标记为 true")
	}

	kwResult, _, err := svc.SearchPost(context.Background(), &dto.SearchDTO{
		Keyword: "实体 生成", Mode: consts.SearchModeKeyword, Page: 1, PageSize: 10,
	})
	if err != nil {
		t.Fatalf("SearchPost 失败: %v", err)
	}

	if queries[0] != queries[1] {
		t.Errorf("回退语法串 %q 与关键词模式 %q 不一致", queries[0], queries[1])
	}
	if len(aiResult.List) != len(kwResult.List) {
		t.Error("回退后的结果应与关键词模式一致")
	}
}

func TestSearchPostMe_RequiresLogin(t *testing.T) {
	svc := NewSearchService(&mockESRepo{}, &mockTranslator{})

	_, _, err := svc.SearchPostMe(context.Background(), 0, &dto.SearchDTO{
		Keyword: "任意", Page: 1, PageSize: 10,
	})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, 期望 ErrUnauthenticated", err)
	}
}

func TestSearchPost_DeepPagingCapped(t *testing.T) {
	called := false
	esRepo := &mockESRepo{
		searchPublishedFn: func(context.Context, string, int, int) ([]*es.PostES, error) {
			called = true
			return nil, nil
		},
	}
	svc := NewSearchService(esRepo, &mockTranslator{})

	result, _, err := svc.SearchPost(context.Background(), &dto.SearchDTO{
		Keyword: "任意", Mode: consts.SearchModeKeyword, Page: 2000, PageSize: 10,
	})
	if err != nil {
		t.Fatalf("SearchPost 失败: %v", err)
	}
	if called {
		t.Error("超出深分页限制时不应触达索引")
	}
	if len(result.List) != 0 || result.HasMore {
		t.Error("超限时应返回空页")
	}
}
