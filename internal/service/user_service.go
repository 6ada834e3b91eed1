package service

import (
	"Patchouli/internal/api/dto"
	"Patchouli/internal/model"
	"Patchouli/internal/pkg/consts"
	"Patchouli/internal/pkg/redis"
	"Patchouli/internal/pkg/security"
	"Patchouli/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, dto *dto.RegisterDTO) error
	Login(ctx context.Context, dto *dto.CredentialDTO) (string, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	SetBan(ctx context.Context, operatorID uint64, targetID uint64, ban bool) error
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	findUser, err := s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	nickname := regDTO.Nickname
	if nickname == "" {
		nickname = regDTO.Username
	}

	user := &model.User{
		Username:  &regDTO.Username,
		Password:  &passwordHash,
		Nickname:  nickname,
		Role:      model.RoleUser,
		AvatarURL: consts.DefaultAvatarURL,
	}
	if regDTO.AvatarURL != nil && *regDTO.AvatarURL != "" {
		user.AvatarURL = *regDTO.AvatarURL
	}

	return s.userRepo.CreateUser(ctx, user)
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, credDTO.Username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if user.Password == nil {
		return "", ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(credDTO.Password, *user.Password); err != nil {
		return "", ErrPasswordIncorrect
	}

	return security.GenerateToken(user.ID, user.Role)
}

// Logout 把 token 签名拉黑到过期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, time.Hour*24)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	userDTO := &dto.UserDTO{}
	if err = copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	userDTO.UserID = user.ID
	if user.Username != nil {
		userDTO.Username = *user.Username
	}
	return userDTO, nil
}

// SetBan 封禁/解封。管理员专用；不能动自己也不能动管理员；
// 重复设置同一状态按成功返回
func (s *UserServiceImpl) SetBan(ctx context.Context, operatorID uint64, targetID uint64, ban bool) error {
	operator, err := s.userRepo.GetUserById(ctx, operatorID)
	if err != nil {
		return err
	}
	if operator == nil {
		return ErrUnauthenticated
	}
	if !operator.IsAdmin() {
		return ErrForbidden
	}
	if operatorID == targetID {
		return ErrBanSelf
	}

	target, err := s.userRepo.GetUserById(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if target.IsAdmin() {
		return ErrBanAdmin
	}
	if target.IsBan == ban {
		return nil
	}

	return s.userRepo.UpdateIsBan(ctx, targetID, ban)
}
