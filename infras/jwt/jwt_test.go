package jwt_test

import (
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleema/config"
	"saleema/infras/jwt"
	"saleema/infras/otel/mocks"
)

const (
	accessSecret  = "access-secret"
	refreshSecret = "refresh-secret"
)

func newVerifier() jwt.JWT {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = accessSecret
	cfg.JWT.RefreshSecret = refreshSecret

	return jwt.New(cfg, mocks.NewOtel())
}

func sign(t *testing.T, method gojwt.SigningMethod, secret any, tokenType jwt.TokenType, expiresIn time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.Claims{
		UserID:  "user-1",
		Email:   "user@saleema.id",
		Role:    "user",
		TokenID: "token-1",
		Type:    tokenType,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  gojwt.NewNumericDate(now),
		},
	}

	token, err := gojwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)

	return token
}

func TestValidateToken(t *testing.T) {
	token := sign(t, gojwt.SigningMethodHS256, []byte(accessSecret), jwt.AccessToken, time.Hour)

	claims, err := newVerifier().ValidateToken(context.Background(), token, jwt.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@saleema.id", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateToken_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		tokenType jwt.TokenType
		wantErr   error
	}{
		{
			name:      "expired",
			token:     sign(t, gojwt.SigningMethodHS256, []byte(accessSecret), jwt.AccessToken, -time.Minute),
			tokenType: jwt.AccessToken,
			wantErr:   jwt.ErrExpiredToken,
		},
		{
			name:      "wrong secret",
			token:     sign(t, gojwt.SigningMethodHS256, []byte("other"), jwt.AccessToken, time.Hour),
			tokenType: jwt.AccessToken,
			wantErr:   jwt.ErrInvalidToken,
		},
		{
			name:      "refresh token used as access token",
			token:     sign(t, gojwt.SigningMethodHS256, []byte(accessSecret), jwt.RefreshToken, time.Hour),
			tokenType: jwt.AccessToken,
			wantErr:   jwt.ErrInvalidClaim,
		},
		{
			name:      "garbage",
			token:     "not.a.token",
			tokenType: jwt.AccessToken,
			wantErr:   jwt.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newVerifier().ValidateToken(context.Background(), tt.token, tt.tokenType)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateToken_Issuer(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = accessSecret
	cfg.JWT.Issuer = "saleema-identity"

	token := sign(t, gojwt.SigningMethodHS256, []byte(accessSecret), jwt.AccessToken, time.Hour)

	_, err := jwt.New(cfg, mocks.NewOtel()).ValidateToken(context.Background(), token, jwt.AccessToken)

	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateToken_Leeway(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = accessSecret
	cfg.JWT.LeewaySeconds = 60

	token := sign(t, gojwt.SigningMethodHS256, []byte(accessSecret), jwt.AccessToken, -10*time.Second)

	claims, err := jwt.New(cfg, mocks.NewOtel()).ValidateToken(context.Background(), token, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestValidateToken_UnknownType(t *testing.T) {
	_, err := newVerifier().ValidateToken(context.Background(), "x", jwt.TokenType("id"))

	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc.def", want: "abc.def"},
		{name: "empty", header: "", wantErr: true},
		{name: "basic auth", header: "Basic dXNlcg==", wantErr: true},
		{name: "bearer without token", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
