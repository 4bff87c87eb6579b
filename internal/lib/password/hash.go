// Package password реализует хеширование и проверку паролей учётных записей.
//
// Hash создаёт bcrypt-хеш пароля, который содержит соль и стоимость и
// не требует внешнего состояния для проверки.
// Verify сравнивает хеш с введённым паролем и никогда не паникует на
// повреждённом хеше: в этом случае просто возвращается false.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes — предел длины пароля для bcrypt.
const MaxBytes = 72

// ErrTooLong — пароль длиннее MaxBytes байт.
var ErrTooLong = errors.New("password length exceeds 72 bytes")

// Hash принимает пароль пользователя и возвращает его bcrypt‑хэш.
//
// Используется для безопасного хранения паролей в базе данных.
func Hash(plaintext string) (string, error) {
	const op = "password.Hash"
	if len(plaintext) > MaxBytes {
		return "", fmt.Errorf("%s: %w", op, ErrTooLong)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сообщает, соответствует ли пароль bcrypt‑хэшу.
func Verify(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
