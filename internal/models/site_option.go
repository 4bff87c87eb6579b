package models

// SiteOption — глобальная настройка сайта в формате ключ/значение.
type SiteOption struct {
	ID          int64   `json:"id"`
	KeyName     string  `json:"key_name"`
	KeyValue    string  `json:"key_value"`
	Type        string  `json:"type"` // string, integer, boolean
	Description *string `json:"description"`
}
