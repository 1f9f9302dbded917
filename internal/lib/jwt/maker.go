// Package jwt issues and parses the access and refresh tokens of dashboard admins.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType tells access tokens from refresh tokens.
type TokenType string

const (
	Access  TokenType = "access"
	Refresh TokenType = "refresh"
)

// ErrWrongTokenType is returned when a token of the other type is presented.
var ErrWrongTokenType = errors.New("wrong token type")

// CustomClaims are the claims every dashboard token carries. RegisteredClaims.ID
// identifies the token so a session can be bound to one refresh token.
type CustomClaims struct {
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Type     TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// Maker issues and parses tokens.
type Maker interface {
	GenerateToken(username, role string, typ TokenType) (token string, claims *CustomClaims, err error)
	ParseToken(tokenStr string, typ TokenType) (*CustomClaims, error)
}

// MakerImpl signs tokens with HS256.
type MakerImpl struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTMaker returns a MakerImpl signing with secretKey.
func NewJWTMaker(secretKey string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateToken signs a token of type typ for username.
func (m *MakerImpl) GenerateToken(username, role string, typ TokenType) (string, *CustomClaims, error) {
	const op = "jwt.GenerateToken"

	ttl := m.accessTTL
	if typ == Refresh {
		ttl = m.refreshTTL
	}
	now := time.Now()
	claims := &CustomClaims{
		Username: username,
		Role:     role,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secretKey))
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, claims, nil
}

// ParseToken verifies the signature, expiry and type of tokenStr.
func (m *MakerImpl) ParseToken(tokenStr string, typ TokenType) (*CustomClaims, error) {
	const op = "jwt.ParseToken"

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token claims", op)
	}
	if claims.Type != typ {
		return nil, fmt.Errorf("%s: %w", op, ErrWrongTokenType)
	}
	return claims, nil
}
