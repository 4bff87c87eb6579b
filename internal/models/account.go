// Package models содержит доменные модели сервиса: учётную запись,
// настройки бота, брокеров, торговые ордера и опции сайта, а также
// patch-типы для частичного обновления этих записей.
package models

import "time"

// Account представляет учётную запись клиента торгового бота.
type Account struct {
	ID           int64      `json:"id"`
	Name         string     `json:"complete_name"`
	Email        string     `json:"email"` // Уникален, хранится в нижнем регистре
	PasswordHash string     `json:"-"`
	IsSuperuser  bool       `json:"is_superuser"` // Суперпользователь не подчиняется сроку плана
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	ActivatedAt  *time.Time `json:"activated_at"` // Момент выдачи текущего плана
	CurrentPlan  *string    `json:"current_plan"` // Код плана: daily, weekly, monthly
}

// Plan возвращает код текущего плана или пустую строку.
func (a *Account) Plan() string {
	if a.CurrentPlan == nil {
		return ""
	}
	return *a.CurrentPlan
}

// ClearPlan переводит учётную запись в неактивное состояние без плана.
func (a *Account) ClearPlan() {
	a.IsActive = false
	a.ActivatedAt = nil
	a.CurrentPlan = nil
}

// GrantPlan активирует учётную запись с планом code начиная с момента at.
// Пустой code оставляет план незаданным.
func (a *Account) GrantPlan(code string, at time.Time) {
	a.IsActive = true
	a.ActivatedAt = &at
	if code == "" {
		a.CurrentPlan = nil
		return
	}
	a.CurrentPlan = &code
}

// NewAccount — данные для создания учётной записи.
type NewAccount struct {
	Name         string
	Email        string
	PasswordHash string
	IsSuperuser  bool
	CreatedAt    time.Time
}
