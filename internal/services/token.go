package services

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// TokenType tags a token as usable for ordinary API calls (access) or only
// for minting new access tokens (refresh). A leaked refresh token never
// doubles as an access token and vice versa.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// TokenManager issues and verifies the signed bearer tokens bound to a user id.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a TokenManager signing with the given secret.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess issues a short-lived access token for the given user id.
func (m *TokenManager) IssueAccess(subject uint) (string, error) {
	return m.issue(subject, TokenAccess, m.accessTTL)
}

// IssueRefresh issues a longer-lived refresh token for the given user id.
func (m *TokenManager) IssueRefresh(subject uint) (string, error) {
	return m.issue(subject, TokenRefresh, m.refreshTTL)
}

func (m *TokenManager) issue(subject uint, typ TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"type": string(typ),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
		"jti":  uuid.New().String(),
	})
	return token.SignedString(m.secret)
}

// Verify checks signature, expiry and the type tag, returning the user id the
// token was issued for. Failures are reported as ErrInvalidToken,
// ErrExpiredToken or ErrWrongTokenType.
func (m *TokenManager) Verify(tokenString string, expected TokenType) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	if typ, _ := claims["type"].(string); typ != string(expected) {
		return 0, ErrWrongTokenType
	}
	subject, ok := claims["sub"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return uint(subject), nil
}
