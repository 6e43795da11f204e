package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/golang-jwt/jwt/v5"
)

var Instance *JWT

const (
	// AccessTokenType 表示 Access Token 类型
	AccessTokenType = "access"
	// RefreshTokenType 表示 Refresh Token 类型
	RefreshTokenType = "refresh"
	// ClaimsKey 表示 JWT 载荷在请求上下文中的键名
	ClaimsKey = "jwt_claims"
	// UserKey 表示当前登录用户在请求上下文中的键名
	UserKey = "jwt_user"
)

func Init(jwt *JWT) {
	Instance = jwt
}

// Claims 定义 JWT 载荷结构，sub 为用户名
type Claims struct {
	Subject string `json:"sub"`  // 用户名
	Type    string `json:"type"` // token类型：access/refresh
	jwt.RegisteredClaims
}

// TokenPair 包含 Access Token 和 Refresh Token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// JWT 管理结构体。Access Token 有效期以分钟计，
// Refresh Token 以天计，且刷新令牌有效期必须长于访问令牌。
type JWT struct {
	SigningKey     []byte            // 签名密钥
	SigningMethod  jwt.SigningMethod // 签名算法
	AccessExpires  time.Duration     // Access Token 有效期
	RefreshExpires time.Duration     // Refresh Token 有效期

	now func() time.Time // 可注入时钟，便于测试
}

// NewJWT 创建 JWT 管理器实例，algorithm 为 HS256/HS384/HS512
func NewJWT(signingKey, algorithm string, accessMinutes, refreshDays int) (*JWT, error) {
	if signingKey == "" {
		return nil, errors.New("empty signing key")
	}
	method, err := signingMethod(algorithm)
	if err != nil {
		return nil, err
	}
	if accessMinutes <= 0 {
		return nil, fmt.Errorf("invalid access token expiration: %d minutes", accessMinutes)
	}
	if refreshDays <= 0 {
		return nil, fmt.Errorf("invalid refresh token expiration: %d days", refreshDays)
	}

	j := &JWT{
		SigningKey:     []byte(signingKey),
		SigningMethod:  method,
		AccessExpires:  time.Duration(accessMinutes) * time.Minute,
		RefreshExpires: time.Duration(refreshDays) * 24 * time.Hour,
		now:            time.Now,
	}
	if j.RefreshExpires <= j.AccessExpires {
		return nil, errors.New("refresh token expiration must be longer than access token expiration")
	}
	return j, nil
}

// DefaultJWT 创建默认配置的 JWT 管理器
func DefaultJWT() (*JWT, error) {
	return NewJWT("your-secret-key", "HS256", 30, 7)
}

// WithClock 替换内部时钟（仅用于测试）
func (j *JWT) WithClock(now func() time.Time) *JWT {
	j.now = now
	return j
}

func signingMethod(algorithm string) (jwt.SigningMethod, error) {
	switch algorithm {
	case "", "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported signing algorithm: %s", algorithm)
	}
}

// GenerateAccessToken 为指定用户名签发 Access Token
func (j *JWT) GenerateAccessToken(username string) (string, error) {
	return j.generate(username, AccessTokenType, j.AccessExpires)
}

// GenerateRefreshToken 为指定用户名签发 Refresh Token
func (j *JWT) GenerateRefreshToken(username string) (string, error) {
	return j.generate(username, RefreshTokenType, j.RefreshExpires)
}

// GenerateTokenPair 同时签发 Access Token 和 Refresh Token
func (j *JWT) GenerateTokenPair(username string) (*TokenPair, error) {
	accessToken, err := j.GenerateAccessToken(username)
	if err != nil {
		return nil, err
	}
	refreshToken, err := j.GenerateRefreshToken(username)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    j.now().Add(j.AccessExpires).Unix(),
	}, nil
}

func (j *JWT) generate(username, tokenType string, expires time.Duration) (string, error) {
	now := j.now()
	claims := Claims{
		Subject: username,
		Type:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expires)),
		},
	}
	token := jwt.NewWithClaims(j.SigningMethod, claims)
	tokenStr, err := token.SignedString(j.SigningKey)
	if err != nil {
		return "", fmt.Errorf("generate %s token failed: %w", tokenType, err)
	}
	return tokenStr, nil
}

// ParseToken 解析并校验 JWT token。
// 签名、结构、过期等任何失败都只返回错误，不区分具体原因。
func (j *JWT) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.SigningKey, nil
	}, jwt.WithTimeFunc(j.now))

	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ParseAccessToken 解析 token 并要求其为 Access Token
func (j *JWT) ParseAccessToken(tokenString string) (*Claims, error) {
	claims, err := j.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != AccessTokenType {
		return nil, errors.New("not an access token")
	}
	return claims, nil
}

// ParseRefreshToken 解析 token 并要求其为 Refresh Token
func (j *JWT) ParseRefreshToken(tokenString string) (*Claims, error) {
	claims, err := j.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != RefreshTokenType {
		return nil, errors.New("not a refresh token")
	}
	return claims, nil
}

// ContextClaims 从上下文中提取 JWT 声明
func (j *JWT) ContextClaims(c *app.RequestContext) (*Claims, error) {
	claims, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, errors.New("jwt claims not found in context")
	}

	return claims.(*Claims), nil
}

// GetSubject 从上下文中获取当前登录用户名
func (j *JWT) GetSubject(c *app.RequestContext) (string, error) {
	claims, err := j.ContextClaims(c)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
