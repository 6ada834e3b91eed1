package llm

import (
	"Patchouli/internal/pkg/consts"
	"Patchouli/internal/pkg/redis"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	log "log/slog"
	"time"
)

// ClueCacheTTL 线索缓存时长，限制同一正文的重复编辑触发的模型调用
const ClueCacheTTL = 10 * time.Minute

// ClueGenerator 帖子正文 → 简短的关键词/同义词/用例线索。
// 产出只作检索辅助，不构成权威内容。
type ClueGenerator struct{}

func NewClueGenerator() *ClueGenerator {
	return &ClueGenerator{}
}

func (s *ClueGenerator) Generate(ctx context.Context, body string) (string, error) {
	runes := []rune(body)
	if len(runes) > consts.ClueBodyLimit {
		runes = runes[:consts.ClueBodyLimit]
	}
	input := string(runes)

	sum := sha1.Sum([]byte(input))
	cacheKey := consts.ClueCacheKey + hex.EncodeToString(sum[:])
	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		return cached, nil
	}

	resp, err := fetchModel(ctx, searchCluePrompt, input, 0.3)
	if err != nil {
		log.ErrorContext(ctx, "检索线索生成-AI大模型请求失败", "err", err)
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("检索线索生成-AI大模型返回数据为空")
	}

	clue := sanitizeLine(resp.Choices[0].Content)
	if clue == "" {
		return "", errors.New("检索线索生成-AI大模型返回空串")
	}

	clueRunes := []rune(clue)
	if len(clueRunes) > consts.ClueOutputLimit {
		clue = string(clueRunes[:consts.ClueOutputLimit])
	}

	if err = redis.SetWithExpiration(ctx, cacheKey, clue, ClueCacheTTL); err != nil {
		log.WarnContext(ctx, "检索线索缓存写入失败", "err", err)
	}
	return clue, nil
}
