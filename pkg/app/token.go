package app

import (
	"crypto/rsa"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType discriminates access and refresh tokens via the "type" claim
// TokenType 通过 "type" 声明区分访问令牌与刷新令牌
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Token errors
// 令牌错误
var (
	ErrTokenInvalid   = fmt.Errorf("token is invalid")
	ErrTokenWrongType = fmt.Errorf("token has wrong type")
)

// TokenConfig RS256 token manager configuration
// TokenConfig RS256 令牌管理器配置
type TokenConfig struct {
	PrivateKeyPath string
	PublicKeyPath  string
	Issuer         string
	AccessExpiry   time.Duration // default 30m // 默认 30 分钟
	RefreshExpiry  time.Duration // default 720h // 默认 30 天
}

// TokenClaims JWT claims carried by both token types. Username is only set on
// access tokens.
// TokenClaims 两种令牌共用的 JWT 声明。Username 仅在访问令牌上设置。
type TokenClaims struct {
	Type     TokenType `json:"type"`
	Username string    `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// UID parses the subject back into a user id
// UID 将 subject 解析回用户 ID
func (c *TokenClaims) UID() int64 {
	uid, _ := strconv.ParseInt(c.Subject, 10, 64)
	return uid
}

// TokenManager issues and validates JWT token pairs
// TokenManager 负责签发与校验 JWT 令牌对
type TokenManager interface {
	// Generate issues one token. The optional expiry overrides the configured
	// default for the token type.
	// Generate 签发单个令牌。可选的 expiry 覆盖该类型的默认有效期。
	Generate(typ TokenType, uid int64, username string, expiry ...time.Duration) (string, error)
	// GeneratePair issues an access and refresh token for the user
	// GeneratePair 为用户签发访问令牌与刷新令牌
	GeneratePair(uid int64, username string) (access string, refresh string, err error)
	// Parse validates signature, expiry and token type
	// Parse 校验签名、有效期与令牌类型
	Parse(token string, typ TokenType) (*TokenClaims, error)
}

type tokenManager struct {
	config     TokenConfig
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

var _ TokenManager = (*tokenManager)(nil)

// NewTokenManager loads the PEM key pair from the configured paths
// NewTokenManager 从配置路径加载 PEM 密钥对
func NewTokenManager(config TokenConfig) (TokenManager, error) {
	privPEM, err := os.ReadFile(config.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	pubPEM, err := os.ReadFile(config.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return NewTokenManagerFromKeys(config, privateKey, publicKey), nil
}

// NewTokenManagerFromKeys builds a manager from in-memory keys
// NewTokenManagerFromKeys 从内存中的密钥构建管理器
func NewTokenManagerFromKeys(config TokenConfig, privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey) TokenManager {
	if config.AccessExpiry <= 0 {
		config.AccessExpiry = 30 * time.Minute
	}
	if config.RefreshExpiry <= 0 {
		config.RefreshExpiry = 30 * 24 * time.Hour
	}
	return &tokenManager{
		config:     config,
		privateKey: privateKey,
		publicKey:  publicKey,
	}
}

func (m *tokenManager) Generate(typ TokenType, uid int64, username string, expiry ...time.Duration) (string, error) {
	validity := m.config.AccessExpiry
	if typ == TokenTypeRefresh {
		validity = m.config.RefreshExpiry
	}
	if len(expiry) > 0 && expiry[0] > 0 {
		validity = expiry[0]
	}

	now := time.Now()
	claims := &TokenClaims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(uid, 10),
			Issuer:    m.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			ID:        uuid.NewString(),
		},
	}
	if typ == TokenTypeAccess {
		claims.Username = username
	}

	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(m.privateKey)
}

func (m *tokenManager) GeneratePair(uid int64, username string) (string, string, error) {
	access, err := m.Generate(TokenTypeAccess, uid, username)
	if err != nil {
		return "", "", err
	}
	refresh, err := m.Generate(TokenTypeRefresh, uid, username)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (m *tokenManager) Parse(token string, typ TokenType) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Type != typ {
		return nil, ErrTokenWrongType
	}
	return claims, nil
}

// gin context key holding the parsed claims
// gin 上下文中保存已解析声明的键
const ContextUserTokenKey = "user_token"

// GetClaims reads the parsed token claims from the gin context
// GetClaims 从 gin 上下文读取已解析的令牌声明
func GetClaims(c *gin.Context) (*TokenClaims, bool) {
	value, ok := c.Get(ContextUserTokenKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*TokenClaims)
	return claims, ok
}

// GetUID reads the authenticated user id from the gin context
// GetUID 从 gin 上下文读取已认证的用户 ID
func GetUID(c *gin.Context) int64 {
	claims, ok := GetClaims(c)
	if !ok {
		return 0
	}
	return claims.UID()
}
