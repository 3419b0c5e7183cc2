package service

import (
	"context"
	"errors"
	"strings"

	"github.com/solenote/note-keeper-service/internal/domain"
	"github.com/solenote/note-keeper-service/internal/dto"
	"github.com/solenote/note-keeper-service/pkg/app"
	"github.com/solenote/note-keeper-service/pkg/code"
	"github.com/solenote/note-keeper-service/pkg/logger"
	"github.com/solenote/note-keeper-service/pkg/timex"
	"github.com/solenote/note-keeper-service/pkg/util"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 密码最小长度
const minPasswordLength = 8

// UserService 用户业务服务接口
type UserService interface {
	Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserTokenDTO, error)
	Login(ctx context.Context, params *dto.UserLoginRequest) (*dto.UserTokenDTO, error)
	RefreshToken(ctx context.Context, params *dto.UserTokenRefreshRequest) (*dto.UserTokenDTO, error)
	Get(ctx context.Context, uid int64) (*dto.UserDTO, error)
}

type userService struct {
	config       Config
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(c Config, userRepo domain.UserRepository, tokenManager app.TokenManager, log *zap.Logger) UserService {
	return &userService{
		config:       c,
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       log,
	}
}

func (s *userService) domainToDTO(u *domain.User) *dto.UserDTO {
	if u == nil {
		return nil
	}
	res := &dto.UserDTO{}
	_ = copier.Copy(res, u)
	res.CreatedAt = timex.Time(u.CreatedAt)
	res.UpdatedAt = timex.Time(u.UpdatedAt)
	return res
}

// issueTokens 签发令牌对并持久化刷新凭证，旧凭证随之失效
func (s *userService) issueTokens(ctx context.Context, user *domain.User) (*dto.UserTokenDTO, error) {
	accessToken, err := s.tokenManager.GenerateAccess(user.UID, user.Username)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	refreshToken, err := s.tokenManager.GenerateRefresh(user.UID)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, refreshToken, user.UID); err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	return &dto.UserTokenDTO{
		UID:          user.UID,
		Username:     user.Username,
		Token:        accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Register 注册新用户并直接签发令牌对
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserTokenDTO, error) {
	if !s.config.RegisterIsEnable {
		return nil, code.ErrorUserRegisterDisabled
	}

	email := strings.TrimSpace(params.Email)
	if !util.IsValidEmail(email) {
		return nil, code.ErrorInvalidEmail
	}
	if len(params.Password) < minPasswordLength {
		return nil, code.ErrorPasswordTooShort
	}

	username := strings.TrimSpace(params.Username)
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, code.ErrorUserNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, code.ErrorUserNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	hash, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:    email,
		Username: username,
		Password: hash,
	})
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	s.logger.Info("user registered",
		zap.Int64(logger.FieldUID, user.UID),
		zap.String("username", user.Username))

	return s.issueTokens(ctx, user)
}

// Login 校验凭证并签发令牌对
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest) (*dto.UserTokenDTO, error) {
	user, err := s.userRepo.GetByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserLoginFailed
		}
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserLoginFailed
	}

	s.logger.Info("user login", zap.Int64(logger.FieldUID, user.UID))

	return s.issueTokens(ctx, user)
}

// RefreshToken 轮换令牌对
// 只接受数据库中保存的当前刷新凭证，轮换后旧凭证立即失效
func (s *userService) RefreshToken(ctx context.Context, params *dto.UserTokenRefreshRequest) (*dto.UserTokenDTO, error) {
	if params.RefreshToken == "" {
		return nil, code.ErrorNotRefreshToken
	}

	claims, err := s.tokenManager.ParseRefresh(params.RefreshToken)
	if err != nil {
		return nil, code.ErrorInvalidRefreshToken
	}

	user, err := s.userRepo.GetByUID(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorInvalidRefreshToken
		}
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	if user.RefreshToken != params.RefreshToken {
		return nil, code.ErrorInvalidRefreshToken
	}

	return s.issueTokens(ctx, user)
}

// Get 获取用户信息
func (s *userService) Get(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorInvalidUserAuthToken
		}
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}
	return s.domainToDTO(user), nil
}
