package account

import "errors"

var (
	// ErrNotFound — учётная запись не найдена.
	ErrNotFound = errors.New("account not found")
	// ErrAlreadyActive — учётная запись уже активна.
	ErrAlreadyActive = errors.New("account already active")
	// ErrAlreadyInactive — учётная запись уже неактивна.
	ErrAlreadyInactive = errors.New("account already inactive")
	// ErrPlanExpired — план истёк, учётная запись деактивирована.
	ErrPlanExpired = errors.New("plan expired")
	// ErrEmailTaken — email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
)

// errUnchanged откатывает транзакцию, когда менять нечего.
var errUnchanged = errors.New("unchanged")
