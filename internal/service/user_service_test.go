package service

import (
	"Patchouli/internal/api/dto"
	"Patchouli/internal/model"
	"Patchouli/internal/pkg/consts"
	"context"
	"errors"
	"testing"
)

type banRecordingRepo struct {
	mockUserRepo
	banCalls []bool
}

func (m *banRecordingRepo) UpdateIsBan(ctx context.Context, id uint64, isBan bool) error {
	m.banCalls = append(m.banCalls, isBan)
	return nil
}

func usersByID(users map[uint64]*model.User) func(ctx context.Context, id uint64) (*model.User, error) {
	return func(_ context.Context, id uint64) (*model.User, error) {
		return users[id], nil
	}
}

func TestSetBan_Rules(t *testing.T) {
	users := map[uint64]*model.User{
		1: {ID: 1, Role: model.RoleAdmin},
		2: {ID: 2, Role: model.RoleUser},
		3: {ID: 3, Role: model.RoleAdmin},
		4: {ID: 4, Role: model.RoleUser, IsBan: true},
		5: {ID: 5, Role: model.RoleUser},
	}

	cases := []struct {
		name       string
		operatorID uint64
		targetID   uint64
		ban        bool
		wantErr    error
		wantCalls  int
	}{
		{"管理员封普通用户", 1, 2, true, nil, 1},
		{"普通用户无权操作", 5, 2, true, ErrForbidden, 0},
		{"不能封自己", 1, 1, true, ErrBanSelf, 0},
		{"不能封管理员", 1, 3, true, ErrBanAdmin, 0},
		{"目标不存在", 1, 99, true, ErrUserNotFound, 0},
		{"重复封禁幂等成功", 1, 4, true, nil, 0},
		{"解封已封禁用户", 1, 4, false, nil, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &banRecordingRepo{}
			repo.getUserByIdFn = usersByID(users)
			svc := NewUserService(repo)

			err := svc.SetBan(context.Background(), tc.operatorID, tc.targetID, tc.ban)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, 期望 %v", err, tc.wantErr)
			}
			if len(repo.banCalls) != tc.wantCalls {
				t.Errorf("UpdateIsBan 调用 %d 次, 期望 %d", len(repo.banCalls), tc.wantCalls)
			}
		})
	}
}

type registerRecordingRepo struct {
	mockUserRepo
	created *model.User
}

func (m *registerRecordingRepo) CreateUser(ctx context.Context, user *model.User) error {
	m.created = user
	return nil
}

// 注册未提供头像时落默认头像
func TestRegister_DefaultAvatar(t *testing.T) {
	repo := &registerRecordingRepo{}
	svc := NewUserService(repo)

	err := svc.Register(context.Background(), &dto.RegisterDTO{Username: "steve", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Register 失败: %v", err)
	}
	if repo.created == nil {
		t.Fatal("期望调用 CreateUser")
	}
	if repo.created.AvatarURL != consts.DefaultAvatarURL {
		t.Errorf("AvatarURL = %q, 期望默认头像", repo.created.AvatarURL)
	}
	if repo.created.Nickname != "steve" {
		t.Errorf("昵称缺省应取用户名, 实际 %q", repo.created.Nickname)
	}
}
