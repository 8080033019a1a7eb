package service

import (
	"context"
	"errors"

	"github.com/inkwells/smart-note-service/internal/domain"
	"github.com/inkwells/smart-note-service/internal/dto"
	pkgapp "github.com/inkwells/smart-note-service/pkg/app"
	"github.com/inkwells/smart-note-service/pkg/code"
	"github.com/inkwells/smart-note-service/pkg/logger"
	"github.com/inkwells/smart-note-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService 用户业务接口
type UserService interface {
	// SignUp registers a user and issues the first token pair
	// SignUp 注册用户并签发首个令牌对
	SignUp(ctx context.Context, params *dto.SignUpRequest) (*dto.Token, error)
	// Login verifies credentials and issues a token pair
	// Login 校验凭据并签发令牌对
	Login(ctx context.Context, params *dto.LoginRequest) (*dto.Token, error)
	// Refresh issues a fresh token pair for an authenticated refresh token
	// Refresh 为通过认证的刷新令牌签发新的令牌对
	Refresh(ctx context.Context, uid int64) (*dto.Token, error)
	// Me returns the authenticated user's public profile
	// Me 返回已认证用户的公开信息
	Me(ctx context.Context, uid int64) (*dto.BaseUser, error)
}

type userService struct {
	userRepo     domain.UserRepository
	tokenManager pkgapp.TokenManager
	logger       *zap.Logger
}

var _ UserService = (*userService)(nil)

func NewUserService(userRepo domain.UserRepository, tokenManager pkgapp.TokenManager, lg *zap.Logger) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       lg,
	}
}

func (s *userService) SignUp(ctx context.Context, params *dto.SignUpRequest) (*dto.Token, error) {
	// policy check comes before any storage access
	// 策略校验先于任何存储访问
	if !util.IsStrongPassword(params.Password) {
		return nil, code.ErrorWeakPassword
	}

	if _, err := s.userRepo.GetByUsername(ctx, params.Username); err == nil {
		return nil, code.ErrorUsernameTaken.WithInput(params.Username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Username: params.Username,
		Password: hash,
	})
	if err != nil {
		// a concurrent sign-up can win between the check and the insert
		// 并发注册可能在检查与插入之间抢先成功
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, code.ErrorUsernameTaken.WithInput(params.Username)
		}
		return nil, err
	}

	s.logger.Info("user signed up",
		zap.Int64(logger.FieldUID, user.UID),
		zap.String(logger.FieldUsername, user.Username))

	return s.issueTokenPair(user)
}

func (s *userService) Login(ctx context.Context, params *dto.LoginRequest) (*dto.Token, error) {
	user, err := s.userRepo.GetByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound.WithInput(params.Username)
		}
		return nil, err
	}

	if !util.CheckPassword(params.Password, user.Password) {
		return nil, code.ErrorBadCredentials
	}

	return s.issueTokenPair(user)
}

func (s *userService) Refresh(ctx context.Context, uid int64) (*dto.Token, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, err
	}
	return s.issueTokenPair(user)
}

func (s *userService) Me(ctx context.Context, uid int64) (*dto.BaseUser, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, err
	}
	return &dto.BaseUser{Username: user.Username}, nil
}

func (s *userService) issueTokenPair(user *domain.User) (*dto.Token, error) {
	access, refresh, err := s.tokenManager.GeneratePair(user.UID, user.Username)
	if err != nil {
		return nil, err
	}
	return &dto.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}, nil
}
