package models

// BotOptions — настройки торгового бота пользователя. Одна запись на пользователя.
type BotOptions struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	BotStatus  bool    `json:"bot_status"`
	StopLoss   int     `json:"stop_loss"`
	StopWin    int     `json:"stop_win"`
	EntryPrice int     `json:"entry_price"`
	APIKey     *string `json:"api_key"`
	IsDemo     bool    `json:"is_demo"`
	WinValue   float64 `json:"win_value"`
	LossValue  float64 `json:"loss_value"`
	GaleOne    bool    `json:"gale_one"`
	GaleTwo    bool    `json:"gale_two"`
}

// DefaultBotOptions возвращает настройки, создаваемые вместе с учётной записью.
func DefaultBotOptions(userID int64) BotOptions {
	return BotOptions{UserID: userID}
}

// BotOptionsPatch — частичное обновление настроек бота.
// nil-поле означает «не менять».
type BotOptionsPatch struct {
	BotStatus  *bool    `json:"bot_status"`
	StopLoss   *int     `json:"stop_loss" validate:"omitempty,gte=0"`
	StopWin    *int     `json:"stop_win" validate:"omitempty,gte=0"`
	EntryPrice *int     `json:"entry_price" validate:"omitempty,gte=0"`
	APIKey     *string  `json:"api_key"`
	IsDemo     *bool    `json:"is_demo"`
	WinValue   *float64 `json:"win_value"`
	LossValue  *float64 `json:"loss_value"`
	GaleOne    *bool    `json:"gale_one"`
	GaleTwo    *bool    `json:"gale_two"`
}

// Apply переносит заданные поля patch в o.
func (p BotOptionsPatch) Apply(o *BotOptions) {
	setIf(&o.BotStatus, p.BotStatus)
	setIf(&o.StopLoss, p.StopLoss)
	setIf(&o.StopWin, p.StopWin)
	setIf(&o.EntryPrice, p.EntryPrice)
	if p.APIKey != nil {
		key := *p.APIKey
		o.APIKey = &key
	}
	setIf(&o.IsDemo, p.IsDemo)
	setIf(&o.WinValue, p.WinValue)
	setIf(&o.LossValue, p.LossValue)
	setIf(&o.GaleOne, p.GaleOne)
	setIf(&o.GaleTwo, p.GaleTwo)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
