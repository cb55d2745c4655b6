package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Tomlord1122/weather-todo/internal/domain"
)

// BearerPrefix precedes every issued token.
const BearerPrefix = "Bearer "

// ErrInvalidToken covers malformed, tampered and expired tokens alike.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload carried by a bearer token.
type Claims struct {
	Email    string          `json:"email"`
	UserRole domain.UserRole `json:"userRole"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return NewTokenManagerWithClock(secret, ttl, time.Now)
}

func NewTokenManagerWithClock(secret []byte, ttl time.Duration, now func() time.Time) *TokenManager {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: secret, ttl: ttl, now: now}
}

// Issue signs a token for the given identity and returns it with the bearer prefix.
func (m *TokenManager) Issue(userID uint, email string, role domain.UserRole) (string, error) {
	now := m.now()
	claims := Claims{
		Email:    email,
		UserRole: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return BearerPrefix + signed, nil
}

// Verify checks the signature and expiry of a token, with or without the
// bearer prefix, and returns the identity it carries.
func (m *TokenManager) Verify(token string) (domain.AuthUser, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), BearerPrefix))
	if raw == "" {
		return domain.AuthUser{}, ErrInvalidToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return domain.AuthUser{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return domain.AuthUser{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	if !claims.UserRole.Valid() {
		return domain.AuthUser{}, fmt.Errorf("%w: bad role", ErrInvalidToken)
	}

	return domain.AuthUser{ID: uint(userID), Email: claims.Email, UserRole: claims.UserRole}, nil
}
