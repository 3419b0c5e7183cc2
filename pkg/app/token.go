package app

import (
	"fmt"
	"time"

	"github.com/solenote/note-keeper-service/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 默认 Token 签发者
const DefaultTokenIssuer = "note-keeper-service"

const (
	accessTokenSubject  = "user-token"
	refreshTokenSubject = "refresh-token"
)

// TokenConfig 定义 Token 管理器的配置
type TokenConfig struct {
	SecretKey        string        // 访问 Token 签名密钥
	RefreshSecretKey string        // 刷新 Token 签名密钥
	Expiry           time.Duration // 访问 Token 过期时间，默认 1 小时
	RefreshExpiry    time.Duration // 刷新 Token 过期时间，默认 7 天
	Issuer           string        // Token 签发者
}

// TokenManager 定义 Token 管理接口
// 访问凭证短时有效，刷新凭证单独签名、单独过期
type TokenManager interface {
	GenerateAccess(uid int64, username string) (string, error)
	GenerateRefresh(uid int64) (string, error)
	ParseAccess(token string) (*UserEntity, error)
	ParseRefresh(token string) (*UserEntity, error)
	GetSecretKey() string
}

// tokenManager 实现 TokenManager 接口
type tokenManager struct {
	config TokenConfig
}

// NewTokenManager 创建一个新的 TokenManager 实例
func NewTokenManager(cfg TokenConfig) TokenManager {
	// 设置默认值
	if cfg.Expiry == 0 {
		cfg.Expiry = time.Hour
	}
	if cfg.RefreshExpiry == 0 {
		cfg.RefreshExpiry = 7 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	if cfg.RefreshSecretKey == "" {
		cfg.RefreshSecretKey = cfg.SecretKey + "-refresh"
	}
	return &tokenManager{config: cfg}
}

// UserEntity 存储在 JWT 中的用户数据
type UserEntity struct {
	UID      int64  `json:"uid"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

func (t *tokenManager) generate(claims *UserEntity, secretKey string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey(secretKey))
}

// GenerateAccess 生成访问 Token
func (t *tokenManager) GenerateAccess(uid int64, username string) (string, error) {
	now := time.Now()
	claims := &UserEntity{
		UID:      uid,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
			Subject:   accessTokenSubject,
			ID:        fmt.Sprintf("%d", uid),
		},
	}
	return t.generate(claims, t.config.SecretKey)
}

// GenerateRefresh 生成刷新 Token
func (t *tokenManager) GenerateRefresh(uid int64) (string, error) {
	now := time.Now()
	claims := &UserEntity{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.config.RefreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
			Subject:   refreshTokenSubject,
			ID:        fmt.Sprintf("%d", uid),
		},
	}
	return t.generate(claims, t.config.RefreshSecretKey)
}

// ParseAccess 解析访问 Token 并返回用户信息
func (t *tokenManager) ParseAccess(token string) (*UserEntity, error) {
	return parseWithKey(token, t.config.SecretKey, accessTokenSubject)
}

// ParseRefresh 解析刷新 Token
func (t *tokenManager) ParseRefresh(token string) (*UserEntity, error) {
	return parseWithKey(token, t.config.RefreshSecretKey, refreshTokenSubject)
}

// GetSecretKey 获取密钥
func (t *tokenManager) GetSecretKey() string {
	return t.config.SecretKey
}

func parseWithKey(tokenString, secretKey, subject string) (*UserEntity, error) {
	claims := &UserEntity{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Subject != subject {
		return nil, fmt.Errorf("unexpected token subject: %s", claims.Subject)
	}

	return claims, nil
}

// signingKey 将配置密钥与机器标识绑定
func signingKey(secretKey string) []byte {
	return []byte(secretKey + "_" + util.GetMachineID())
}

// ParseTokenWithKey 使用指定密钥解析访问 Token，供中间件使用
func ParseTokenWithKey(tokenString string, secretKey string) (*UserEntity, error) {
	return parseWithKey(tokenString, secretKey, accessTokenSubject)
}

// GetUID 从请求上下文中取出用户 ID
func GetUID(ctx *gin.Context) (out int64) {
	user, exist := ctx.Get("user_token")
	if exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.UID
		}
	}
	return
}

// SetTokenToContextWithKey 使用指定密钥解析 Token 并写入 Context
func SetTokenToContextWithKey(ctx *gin.Context, tokenString string, secretKey string) error {
	user, err := ParseTokenWithKey(tokenString, secretKey)
	if err != nil {
		return err
	}
	ctx.Set("user_token", user)
	return nil
}
