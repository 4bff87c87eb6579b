package jwt

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType — тег типа токена, зашиваемый в claim "type".
type TokenType string

const (
	// Access — короткоживущий токен доступа к API.
	Access TokenType = "access"
	// Refresh — долгоживущий токен для получения нового access.
	Refresh TokenType = "refresh"
)

var (
	// ErrSigningKeyMissing — секретный ключ подписи не задан.
	ErrSigningKeyMissing = errors.New("signing key is not configured")
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed — токен не декодируется или подпись неверна.
	ErrTokenMalformed = errors.New("token malformed or signature invalid")
	// ErrWrongTokenType — тип токена не совпадает с ожидаемым.
	ErrWrongTokenType = errors.New("wrong token type")
)

// CustomClaims описывает данные, хранящиеся в JWT.
// Subject (email учётной записи) и ExpiresAt берутся из стандартных claims.
type CustomClaims struct {
	Type                 TokenType `json:"type"` // Тип токена: access или refresh
	jwt.RegisteredClaims           // Встроенные стандартные claims JWT (sub, exp, iat)
}
