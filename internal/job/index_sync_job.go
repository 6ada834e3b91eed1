package job

import (
	"Patchouli/internal/model"
	"Patchouli/internal/pkg/consts"
	"Patchouli/internal/pkg/es"
	"Patchouli/internal/pkg/redis"
	"Patchouli/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// IndexSyncJob 索引对账：以数据库为准重刷已发布帖子的索引文档，
// 兜底消费链路丢失或乱序造成的偏差
type IndexSyncJob struct {
	postDBRepo repository.PostRepo
	postESRepo es.PostRepo
}

func NewIndexSyncJob(postDBRepo repository.PostRepo, postESRepo es.PostRepo) *IndexSyncJob {
	return &IndexSyncJob{
		postDBRepo: postDBRepo,
		postESRepo: postESRepo,
	}
}

func (s *IndexSyncJob) Run() {
	ctx := context.Background()
	log.Info("start index sync job")

	// 多实例部署时只让一个实例跑对账
	lockUUID := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.IndexSyncLockKey, lockUUID, 10*time.Minute, 0)
	if err != nil || !ok {
		log.Info("index sync job skipped, lock not acquired")
		return
	}
	defer redis.UnLock(ctx, consts.IndexSyncLockKey, lockUUID)

	version := time.Now().UnixMilli()
	var lastID uint64
	count := 0

	for {
		posts, err := s.postDBRepo.GetPostsByStatusCursor(ctx, model.PostStatusPublished, lastID, 200)
		if err != nil {
			log.Error("index sync job query failed", "err", err)
			return
		}
		if len(posts) == 0 {
			break
		}

		for _, post := range posts {
			tags := make([]string, 0, len(post.Tags))
			for _, tag := range post.Tags {
				tags = append(tags, tag.Name)
			}
			clues := ""
			if post.SearchClues != nil {
				clues = *post.SearchClues
			}

			doc := &es.PostES{
				ID:             post.ID,
				AuthorID:       post.AuthorID,
				AuthorNickname: post.Author.Nickname,
				Status:         int8(post.Status),
				Title:          post.Title,
				Body:           post.Body,
				Tags:           tags,
				SearchClues:    clues,
				CreatedAt:      post.CreatedAt,
				UpdatedAt:      post.UpdatedAt,
			}
			if err = s.postESRepo.IndexPost(ctx, doc, version); err != nil {
				log.Error("index sync job index failed", "post_id", post.ID, "err", err)
				continue
			}
			count++
		}
		lastID = posts[len(posts)-1].ID
	}

	log.Info("index sync job finished", "indexed_count", count)
}
