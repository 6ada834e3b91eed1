package service

import (
	"Patchouli/internal/pkg/mongo"
	"context"
	"errors"
	"testing"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

type mockNoticeRepo struct {
	markAsReadFn func(ctx context.Context, userID uint64, msgID string) error
}

func (m *mockNoticeRepo) CreateNotice(ctx context.Context, msg *mongo.NoticeModel) error { return nil }

func (m *mockNoticeRepo) GetNoticeList(ctx context.Context, userID uint64, limit, offset int64) ([]*mongo.NoticeModel, error) {
	return nil, nil
}

func (m *mockNoticeRepo) MarkAsRead(ctx context.Context, userID uint64, msgID string) error {
	if m.markAsReadFn != nil {
		return m.markAsReadFn(ctx, userID, msgID)
	}
	return nil
}

func (m *mockNoticeRepo) MarkAllAsRead(ctx context.Context, userID uint64) error { return nil }

func (m *mockNoticeRepo) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return 0, nil
}

// 标记不存在、不属于自己或 ID 非法的通知，对外统一是"通知不存在"，存储故障才上抛
func TestMarkAsRead_ErrorMapping(t *testing.T) {
	storeErr := errors.New("mongo 连接中断")

	cases := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"通知不存在", mongodriver.ErrNoDocuments, ErrNoticeNotFound},
		{"ID 非法", mongodriver.ErrInvalidIndexValue, ErrNoticeNotFound},
		{"存储故障原样上抛", storeErr, storeErr},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockNoticeRepo{
				markAsReadFn: func(_ context.Context, _ uint64, _ string) error {
					return tc.repoErr
				},
			}
			svc := NewNotificationService(repo)

			err := svc.MarkAsRead(context.Background(), 1, "64f000000000000000000000")
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, 期望 %v", err, tc.wantErr)
			}
		})
	}
}

func TestMarkAsRead_RequiresLogin(t *testing.T) {
	svc := NewNotificationService(&mockNoticeRepo{})

	if err := svc.MarkAsRead(context.Background(), 0, "x"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, 期望 ErrUnauthenticated", err)
	}
}
