package consts

const (
	// TokenBlacklistKey 已注销 token 签名前缀
	TokenBlacklistKey = "auth:blacklist:"
	// ClueCacheKey 检索线索缓存前缀（按正文哈希）
	ClueCacheKey = "post:clue:"
	// IndexSyncLockKey 索引对账任务的分布式锁
	IndexSyncLockKey = "job:index_sync:lock"
)
