package service

import (
	"Patchouli/internal/api/dto"
	"Patchouli/internal/pkg/mongo"
	"context"
	"errors"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

type NotificationService interface {
	GetNoticeList(ctx context.Context, userID uint64, page, pageSize int64) (*dto.NoticeListDTO, error)
	MarkAsRead(ctx context.Context, userID uint64, noticeID string) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
}

type notificationServiceImpl struct {
	noticeRepo mongo.NoticeRepo
}

func NewNotificationService(noticeRepo mongo.NoticeRepo) NotificationService {
	return &notificationServiceImpl{
		noticeRepo: noticeRepo,
	}
}

func (s *notificationServiceImpl) GetNoticeList(ctx context.Context, userID uint64, page, pageSize int64) (*dto.NoticeListDTO, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	notices, err := s.noticeRepo.GetNoticeList(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	unread, err := s.noticeRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.NoticeDTO, 0, len(notices))
	for _, notice := range notices {
		items = append(items, &dto.NoticeDTO{
			ID:        notice.ID.Hex(),
			Type:      notice.Type,
			PostID:    notice.PostID,
			PostTitle: notice.PostTitle,
			IsRead:    notice.IsRead,
			CreatedAt: notice.CreatedAt.Format(time.DateTime),
		})
	}

	return &dto.NoticeListDTO{List: items, UnreadCount: unread}, nil
}

func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, userID uint64, noticeID string) error {
	if userID == 0 {
		return ErrUnauthenticated
	}
	if err := s.noticeRepo.MarkAsRead(ctx, userID, noticeID); err != nil {
		// ID 非法或不属于该用户都按不存在处理
		if errors.Is(err, mongodriver.ErrNoDocuments) || errors.Is(err, mongodriver.ErrInvalidIndexValue) {
			return ErrNoticeNotFound
		}
		return err
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	if userID == 0 {
		return ErrUnauthenticated
	}
	return s.noticeRepo.MarkAllAsRead(ctx, userID)
}
