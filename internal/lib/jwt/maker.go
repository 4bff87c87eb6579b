// Package jwt реализует выпуск и проверку подписанных токенов доступа и обновления.
//
// Maker подписывает токены HMAC-SHA256 секретным ключом сервера.
// Каждый токен несёт subject (email учётной записи), тег типа и срок действия;
// при проверке тип сверяется всегда, а не только подпись и срок.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultAccessTTL — срок жизни access-токена, если вызывающий не задал свой.
	DefaultAccessTTL = 6 * time.Hour
	// DefaultRefreshTTL — срок жизни refresh-токена по умолчанию.
	DefaultRefreshTTL = 30 * 24 * time.Hour
)

// Maker выпускает и проверяет токены.
type Maker struct {
	secretKey []byte           // Секретный ключ для подписи токенов.
	now       func() time.Time // Источник текущего времени.
}

// Option настраивает Maker.
type Option func(*Maker)

// WithClock подменяет источник времени (используется в тестах).
func WithClock(now func() time.Time) Option {
	return func(m *Maker) {
		m.now = now
	}
}

// NewMaker создаёт Maker на основе секретного ключа.
func NewMaker(secretKey string, opts ...Option) *Maker {
	m := &Maker{
		secretKey: []byte(secretKey),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue создаёт токен заданного типа для subject со сроком жизни ttl.
func (m *Maker) Issue(subject string, typ TokenType, ttl time.Duration) (string, error) {
	const op = "jwt.Issue"
	if len(m.secretKey) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrSigningKeyMissing)
	}

	now := m.now()
	claims := CustomClaims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// IssueAccess выпускает access-токен. При ttl <= 0 используется DefaultAccessTTL.
func (m *Maker) IssueAccess(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	return m.Issue(subject, Access, ttl)
}

// IssueRefresh выпускает refresh-токен. При ttl <= 0 используется DefaultRefreshTTL.
func (m *Maker) IssueRefresh(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultRefreshTTL
	}
	return m.Issue(subject, Refresh, ttl)
}

// Verify проверяет подпись, срок действия и тип токена и возвращает subject.
//
// Истёкший токен всегда даёт ErrTokenExpired, даже если тип тоже не совпадает.
func (m *Maker) Verify(tokenStr string, expected TokenType) (string, error) {
	const op = "jwt.Verify"
	if len(m.secretKey) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrSigningKeyMissing)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return m.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}
		return "", fmt.Errorf("%s: %w: %w", op, ErrTokenMalformed, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%s: %w", op, ErrTokenMalformed)
	}
	if claims.Type != expected {
		return "", fmt.Errorf("%s: %w: got %q, want %q", op, ErrWrongTokenType, claims.Type, expected)
	}
	return claims.Subject, nil
}

// VerifyRefresh проверяет refresh-токен и возвращает email владельца.
func (m *Maker) VerifyRefresh(tokenStr string) (string, error) {
	return m.Verify(tokenStr, Refresh)
}
