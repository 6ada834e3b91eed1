package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// retryTimes 为 0 表示不重试，但锁仍然必须真正尝试一次 SetNX
func TestTryLockAttemptsAtLeastOnce(t *testing.T) {
	old := Rdb
	// 指向必然拒绝连接的地址，只要真的发请求就会立刻报错
	Rdb = redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer func() {
		_ = Rdb.Close()
		Rdb = old
	}()

	ok, err := TryLock(context.Background(), "test:lock", "v", time.Minute, 0)
	if err == nil {
		t.Fatal("期望拿到连接错误，说明确实发起过一次 SetNX")
	}
	if ok {
		t.Error("连接失败时不应报告加锁成功")
	}
}
