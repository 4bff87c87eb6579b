package auth

import "errors"

var (
	// ErrInvalidFormat — идентификатор не похож ни на email, ни на имя пользователя.
	ErrInvalidFormat = errors.New("invalid identifier format")
	// ErrUnsupportedIdentifier — вход по имени пользователя без '@' не поддерживается.
	ErrUnsupportedIdentifier = errors.New("identifier without @ is not supported")
	// ErrInvalidCredentials — неверный email или пароль.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorized — неверные учётные данные Basic.
	ErrUnauthorized = errors.New("invalid basic credentials")
	// ErrMisconfiguredServer — API_USER или API_PASS не заданы.
	ErrMisconfiguredServer = errors.New("basic credentials are not configured")
	// ErrUnauthenticated — токен недействителен или владелец не найден.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
)
