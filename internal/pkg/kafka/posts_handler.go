package kafka

import (
	"Patchouli/internal/model"
	"Patchouli/internal/pkg/consts"
	"Patchouli/internal/pkg/es"
	"Patchouli/internal/pkg/mongo"
	"Patchouli/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// PostsHandler 消费帖子生命周期事件：维护搜索索引并投递审核通知
type PostsHandler struct {
	postDBRepo repository.PostRepo
	postESRepo es.PostRepo
	noticeRepo mongo.NoticeRepo
}

func NewPostsHandler(postDBRepo repository.PostRepo, postESRepo es.PostRepo, noticeRepo mongo.NoticeRepo) *PostsHandler {
	return &PostsHandler{
		postDBRepo: postDBRepo,
		postESRepo: postESRepo,
		noticeRepo: noticeRepo,
	}
}

func (s *PostsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer setup")
	return nil
}

func (s *PostsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer cleanup")
	return nil
}

func (s *PostsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-post consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-post process batch error", "err", err)
		return err
	}
	log.Info("topic-post consume claim end")
	return nil
}

func (s *PostsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToPostEvent(msg)
	if err != nil {
		return err
	}

	switch event.Type {
	case EventPostDeleted:
		return s.postESRepo.DeletePost(ctx, event.PostID)
	case EventPostApproved, EventPostRejected:
		if err = s.reindex(ctx, event); err != nil {
			return err
		}
		return s.notify(ctx, event)
	case EventPostCreated, EventPostUpdated:
		return s.reindex(ctx, event)
	default:
		log.WarnContext(ctx, "unknown post event type, skipped", "type", event.Type)
		return nil
	}
}

// reindex 以数据库为准覆写索引文档，事件时间戳作外部版本号防乱序
func (s *PostsHandler) reindex(ctx context.Context, event *PostEvent) error {
	post, err := s.postDBRepo.GetPost(ctx, event.PostID)
	if err != nil {
		return errors.Wrap(err, "load post for indexing")
	}

	// 行已被删除，按删除事件处理
	if post == nil {
		return s.postESRepo.DeletePost(ctx, event.PostID)
	}

	return s.postESRepo.IndexPost(ctx, toPostES(post), event.TS)
}

func (s *PostsHandler) notify(ctx context.Context, event *PostEvent) error {
	noticeType := consts.NoticeTypeApproved
	if event.Type == EventPostRejected {
		noticeType = consts.NoticeTypeRejected
	}

	err := s.noticeRepo.CreateNotice(ctx, &mongo.NoticeModel{
		ReceiverID: event.AuthorID,
		Type:       noticeType,
		PostID:     event.PostID,
		PostTitle:  event.Title,
		IsRead:     false,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return errors.Wrap(err, "create moderation notice")
	}
	return nil
}

func toPostES(post *model.Post) *es.PostES {
	tags := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, tag.Name)
	}

	clues := ""
	if post.SearchClues != nil {
		clues = *post.SearchClues
	}

	return &es.PostES{
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
}
