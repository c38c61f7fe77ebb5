package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails signature or claim checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token has expired")
)

// TokenConfig holds the signing parameters for session tokens.
type TokenConfig struct {
	SecretKey       string
	AccessDuration  time.Duration
	RefreshDuration time.Duration
	Issuer          string
}

// TokenConfigFromEnv reads TASKHUB_JWT_SECRET, falling back to a development
// key so a bare checkout still boots.
func TokenConfigFromEnv() TokenConfig {
	secret := os.Getenv("TASKHUB_JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-in-production"
	}
	return TokenConfig{
		SecretKey:       secret,
		AccessDuration:  15 * time.Minute,
		RefreshDuration: 7 * 24 * time.Hour,
		Issuer:          "taskhub",
	}
}

// SessionClaims are the claims carried by both access and refresh tokens.
type SessionClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 session tokens.
type TokenManager struct {
	config TokenConfig
}

// NewTokenManager creates a TokenManager with the given configuration.
func NewTokenManager(config TokenConfig) *TokenManager {
	return &TokenManager{config: config}
}

// IssueAccessToken signs a short-lived access token for the user.
func (m *TokenManager) IssueAccessToken(userID, email string) (string, error) {
	return m.issue(userID, email, "access", m.config.AccessDuration)
}

// IssueRefreshToken signs a long-lived refresh token for the user.
func (m *TokenManager) IssueRefreshToken(userID, email string) (string, error) {
	return m.issue(userID, email, "refresh", m.config.RefreshDuration)
}

func (m *TokenManager) issue(userID, email, tokenType string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// ValidateAccessToken parses the token and returns its claims if it is a
// valid, unexpired access token.
func (m *TokenManager) ValidateAccessToken(tokenString string) (*SessionClaims, error) {
	return m.validate(tokenString, "access")
}

// ValidateRefreshToken parses the token and returns its claims if it is a
// valid, unexpired refresh token.
func (m *TokenManager) ValidateRefreshToken(tokenString string) (*SessionClaims, error) {
	return m.validate(tokenString, "refresh")
}

func (m *TokenManager) validate(tokenString, wantType string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
