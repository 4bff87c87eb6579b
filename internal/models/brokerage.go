package models

import "encoding/base64"

// Brokerage — запись каталога брокеров.
type Brokerage struct {
	ID    int64  `json:"id"`
	Name  string `json:"brokerage_name"`
	Route string `json:"brokerage_route"`
	Icon  string `json:"brokerage_icon"`
}

// BrokeragePatch — частичное обновление записи каталога.
type BrokeragePatch struct {
	Name  *string `json:"brokerage_name" validate:"omitempty,max=250"`
	Route *string `json:"brokerage_route" validate:"omitempty,max=250"`
	Icon  *string `json:"brokerage_icon" validate:"omitempty,max=250"`
}

// Apply переносит заданные поля patch в b.
func (p BrokeragePatch) Apply(b *Brokerage) {
	setIf(&b.Name, p.Name)
	setIf(&b.Route, p.Route)
	setIf(&b.Icon, p.Icon)
}

// UserBrokerage — подключение пользователя к брокеру.
//
// Password хранится в base64. Это только сокрытие от случайного взгляда
// в хранилище, а не шифрование: значение восстанавливается без ключа.
type UserBrokerage struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	BrokerageID int64   `json:"brokerage_id"`
	APIKey      *string `json:"api_key"`
	Username    *string `json:"brokerage_username"`
	Password    *string `json:"brokerage_password"`
}

// UserBrokeragePatch — частичное обновление подключения к брокеру.
type UserBrokeragePatch struct {
	APIKey   *string `json:"api_key"`
	Username *string `json:"brokerage_username"`
	Password *string `json:"brokerage_password"`
}

// Apply переносит заданные поля patch в ub. Пароль кодируется в base64.
func (p UserBrokeragePatch) Apply(ub *UserBrokerage) {
	if p.APIKey != nil {
		v := *p.APIKey
		ub.APIKey = &v
	}
	if p.Username != nil {
		v := *p.Username
		ub.Username = &v
	}
	if p.Password != nil {
		v := ObfuscateSecret(*p.Password)
		ub.Password = &v
	}
}

// ObfuscateSecret кодирует секрет брокера в base64 для хранения.
func ObfuscateSecret(secret string) string {
	return base64.StdEncoding.EncodeToString([]byte(secret))
}

// RevealSecret декодирует значение, записанное ObfuscateSecret.
func RevealSecret(stored string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
