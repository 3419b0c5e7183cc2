package service

import (
	"context"
	"testing"
	"time"

	"github.com/solenote/note-keeper-service/internal/domain"
	"github.com/solenote/note-keeper-service/internal/dto"
	"github.com/solenote/note-keeper-service/pkg/app"
	"github.com/solenote/note-keeper-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*domain.User)}
}

func (m *mockUserRepo) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	u, ok := m.users[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *u
	return &c, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.nextID++
	c := *user
	c.UID = m.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.users[c.UID] = &c
	out := c
	return &out, nil
}

func (m *mockUserRepo) UpdateRefreshToken(ctx context.Context, refreshToken string, uid int64) error {
	if u, ok := m.users[uid]; ok {
		u.RefreshToken = refreshToken
	}
	return nil
}

func newTestUserService(registerEnabled bool) (UserService, *mockUserRepo) {
	repo := newMockUserRepo()
	tm := app.NewTokenManager(app.TokenConfig{
		SecretKey: "test-secret",
		Expiry:    time.Hour,
	})
	svc := NewUserService(Config{RegisterIsEnable: registerEnabled}, repo, tm, zap.NewNop())
	return svc, repo
}

func TestUserServiceRegister(t *testing.T) {
	svc, repo := newTestUserService(true)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, &dto.UserCreateRequest{
		Email:    "a@example.com",
		Username: "alice",
		Password: "password123",
	})
	assert.Nil(t, err)
	assert.NotEmpty(t, tokens.Token)
	assert.NotEmpty(t, tokens.RefreshToken)

	// 密码以散列形式存储
	stored, _ := repo.GetByUID(ctx, tokens.UID)
	assert.NotEqual(t, "password123", stored.Password)
	assert.Equal(t, tokens.RefreshToken, stored.RefreshToken)

	// 重复用户名
	_, err = svc.Register(ctx, &dto.UserCreateRequest{
		Email:    "other@example.com",
		Username: "alice",
		Password: "password123",
	})
	assert.Equal(t, code.ErrorUserNameExists, err)

	// 重复邮箱
	_, err = svc.Register(ctx, &dto.UserCreateRequest{
		Email:    "a@example.com",
		Username: "alice2",
		Password: "password123",
	})
	assert.Equal(t, code.ErrorUserNameExists, err)

	// 非法邮箱
	_, err = svc.Register(ctx, &dto.UserCreateRequest{
		Email:    "not-an-email",
		Username: "bob",
		Password: "password123",
	})
	assert.Equal(t, code.ErrorInvalidEmail, err)

	// 密码过短
	_, err = svc.Register(ctx, &dto.UserCreateRequest{
		Email:    "b@example.com",
		Username: "bob",
		Password: "short",
	})
	assert.Equal(t, code.ErrorPasswordTooShort, err)
}

func TestUserServiceRegisterDisabled(t *testing.T) {
	svc, _ := newTestUserService(false)

	_, err := svc.Register(context.Background(), &dto.UserCreateRequest{
		Email:    "a@example.com",
		Username: "alice",
		Password: "password123",
	})
	assert.Equal(t, code.ErrorUserRegisterDisabled, err)
}

func TestUserServiceLogin(t *testing.T) {
	svc, _ := newTestUserService(true)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.UserCreateRequest{
		Email:    "a@example.com",
		Username: "alice",
		Password: "password123",
	})
	assert.Nil(t, err)

	tokens, err := svc.Login(ctx, &dto.UserLoginRequest{Username: "alice", Password: "password123"})
	assert.Nil(t, err)
	assert.Equal(t, "alice", tokens.Username)

	// 错误密码和未知用户返回同一个错误
	_, err = svc.Login(ctx, &dto.UserLoginRequest{Username: "alice", Password: "wrong"})
	assert.Equal(t, code.ErrorUserLoginFailed, err)
	_, err = svc.Login(ctx, &dto.UserLoginRequest{Username: "nobody", Password: "password123"})
	assert.Equal(t, code.ErrorUserLoginFailed, err)
}

func TestUserServiceRefreshTokenRotation(t *testing.T) {
	svc, repo := newTestUserService(true)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.UserCreateRequest{
		Email:    "a@example.com",
		Username: "alice",
		Password: "password123",
	})
	assert.Nil(t, err)

	// JWT 的秒级时间戳需要间隔以产生不同的令牌
	time.Sleep(1100 * time.Millisecond)

	rotated, err := svc.RefreshToken(ctx, &dto.UserTokenRefreshRequest{
		RefreshToken: registered.RefreshToken,
	})
	assert.Nil(t, err)
	assert.NotEqual(t, registered.RefreshToken, rotated.RefreshToken)

	// 旧凭证在轮换后失效
	_, err = svc.RefreshToken(ctx, &dto.UserTokenRefreshRequest{
		RefreshToken: registered.RefreshToken,
	})
	assert.Equal(t, code.ErrorInvalidRefreshToken, err)

	// 新凭证可用
	stored, _ := repo.GetByUID(ctx, registered.UID)
	assert.Equal(t, rotated.RefreshToken, stored.RefreshToken)

	// 伪造凭证被拒绝
	_, err = svc.RefreshToken(ctx, &dto.UserTokenRefreshRequest{RefreshToken: "garbage"})
	assert.Equal(t, code.ErrorInvalidRefreshToken, err)

	// 缺少凭证与凭证无效是两种错误
	_, err = svc.RefreshToken(ctx, &dto.UserTokenRefreshRequest{})
	assert.Equal(t, code.ErrorNotRefreshToken, err)
}
