package jwtauth

import (
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T) *JWT {
	j, err := NewJWT("test-secret-key", "HS256", 30, 7)
	require.NoError(t, err)
	return j
}

func TestNewJWT(t *testing.T) {
	tests := []struct {
		name          string
		secret        string
		algorithm     string
		accessMinutes int
		refreshDays   int
		wantErr       bool
	}{
		{"valid HS256", "secret", "HS256", 30, 7, false},
		{"valid HS384", "secret", "HS384", 30, 7, false},
		{"valid HS512", "secret", "HS512", 30, 7, false},
		{"default algorithm", "secret", "", 30, 7, false},
		{"empty secret", "", "HS256", 30, 7, true},
		{"unsupported algorithm", "secret", "RS256", 30, 7, true},
		{"zero access minutes", "secret", "HS256", 0, 7, true},
		{"zero refresh days", "secret", "HS256", 30, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJWT(tt.secret, tt.algorithm, tt.accessMinutes, tt.refreshDays)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateAndParseTokenPair(t *testing.T) {
	j := newTestJWT(t)

	pair, err := j.GenerateTokenPair("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := j.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", access.Subject)
	assert.Equal(t, AccessTokenType, access.Type)

	refresh, err := j.ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", refresh.Subject)
	assert.Equal(t, RefreshTokenType, refresh.Type)

	// 刷新令牌有效期必须严格长于访问令牌
	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
	assert.Equal(t,
		j.RefreshExpires-j.AccessExpires,
		refresh.ExpiresAt.Sub(access.ExpiresAt.Time))
}

func TestParseToken_KindDiscrimination(t *testing.T) {
	j := newTestJWT(t)
	pair, err := j.GenerateTokenPair("admin")
	require.NoError(t, err)

	// 刷新令牌不能当访问令牌用，反之亦然
	_, err = j.ParseAccessToken(pair.RefreshToken)
	assert.Error(t, err)
	_, err = j.ParseRefreshToken(pair.AccessToken)
	assert.Error(t, err)

	_, err = j.ParseAccessToken(pair.AccessToken)
	assert.NoError(t, err)
	_, err = j.ParseRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestParseToken_Expiry(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	j := newTestJWT(t).WithClock(func() time.Time { return base })

	token, err := j.GenerateAccessToken("admin")
	require.NoError(t, err)

	// 过期前1秒仍有效
	j.WithClock(func() time.Time { return base.Add(30*time.Minute - time.Second) })
	_, err = j.ParseToken(token)
	assert.NoError(t, err)

	// 时钟拨过exp后失效
	j.WithClock(func() time.Time { return base.Add(30*time.Minute + time.Second) })
	_, err = j.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_InvalidInput(t *testing.T) {
	j := newTestJWT(t)

	_, err := j.ParseToken("")
	assert.Error(t, err)

	_, err = j.ParseToken("not-a-jwt")
	assert.Error(t, err)

	// 换个密钥签发的token必须被拒绝
	other, err := NewJWT("another-secret", "HS256", 30, 7)
	require.NoError(t, err)
	token, err := other.GenerateAccessToken("admin")
	require.NoError(t, err)

	_, err = j.ParseToken(token)
	assert.Error(t, err)
}

func TestContextClaims(t *testing.T) {
	j := newTestJWT(t)
	c := app.NewContext(0)

	_, err := j.ContextClaims(c)
	assert.Error(t, err)

	claims := &Claims{Subject: "admin", Type: AccessTokenType}
	c.Set(ClaimsKey, claims)

	got, err := j.ContextClaims(c)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Subject)

	subject, err := j.GetSubject(c)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}
