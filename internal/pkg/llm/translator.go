package llm

import (
	"context"
	"errors"
	log "log/slog"
	"strings"
)

// Translator 自然语言检索短语 → 全文检索语法串。
// 语法：空格分隔的词隐式 AND，字面量 OR 表示或，无其他算符。
type Translator struct{}

func NewTranslator() *Translator {
	return &Translator{}
}

func (s *Translator) Translate(ctx context.Context, phrase string) (string, error) {
	resp, err := fetchModel(ctx, queryTranslatePrompt, phrase, 0.1)
	if err != nil {
		log.ErrorContext(ctx, "检索意图翻译-AI大模型请求失败", "err", err)
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("检索意图翻译-AI大模型返回数据为空")
	}

	query := sanitizeLine(resp.Choices[0].Content)
	if query == "" {
		return "", errors.New("检索意图翻译-AI大模型返回空串")
	}

	log.InfoContext(ctx, "检索意图翻译成功", "phrase", phrase, "query", query)
	return query, nil
}

// sanitizeLine 去掉模型可能带出的围栏和换行，压成单行
func sanitizeLine(s string) string {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	return strings.Join(strings.Fields(cleaned), " ")
}
