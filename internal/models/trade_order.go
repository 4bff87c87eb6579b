package models

import "time"

// Статусы торгового ордера.
const (
	OrderStatusOpen     = "open"
	OrderStatusClosed   = "closed"
	OrderStatusCanceled = "canceled"
)

// TradeOrder — запись журнала ордеров, отправленных ботом брокеру.
type TradeOrder struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	BrokerageID int64     `json:"brokerage_id"`
	OrderID     string    `json:"order_id"`
	Symbol      string    `json:"symbol"`
	OrderType   string    `json:"order_type"` // buy или sell
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	DateTime    time.Time `json:"date_time"`
}

// TradeOrderPatch — частичное обновление ордера.
type TradeOrderPatch struct {
	Symbol    *string  `json:"symbol"`
	OrderType *string  `json:"order_type" validate:"omitempty,oneof=buy sell"`
	Quantity  *float64 `json:"quantity" validate:"omitempty,gt=0"`
	Price     *float64 `json:"price" validate:"omitempty,gte=0"`
	Status    *string  `json:"status" validate:"omitempty,oneof=open closed canceled"`
}

// Apply переносит заданные поля patch в o.
func (p TradeOrderPatch) Apply(o *TradeOrder) {
	setIf(&o.Symbol, p.Symbol)
	setIf(&o.OrderType, p.OrderType)
	setIf(&o.Quantity, p.Quantity)
	setIf(&o.Price, p.Price)
	setIf(&o.Status, p.Status)
}

// TradeEvent — сообщение о событии ордера для уведомлений.
type TradeEvent struct {
	Kind      string     `json:"kind"` // opened или closed
	Email     string     `json:"email"`
	Order     TradeOrder `json:"order"`
	Timestamp time.Time  `json:"timestamp"`
}

// Виды событий ордера.
const (
	TradeOpened = "opened"
	TradeClosed = "closed"
)

// NewTradeOrder — данные ордера, присылаемые ботом.
type NewTradeOrder struct {
	UserID      int64   `json:"user_id" validate:"required,gt=0"`
	BrokerageID int64   `json:"brokerage_id" validate:"required,gt=0"`
	OrderID     string  `json:"order_id" validate:"required"`
	Symbol      string  `json:"symbol" validate:"required"`
	OrderType   string  `json:"order_type" validate:"required,oneof=buy sell"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Status      string  `json:"status" validate:"required,oneof=open closed canceled"`
}

// TradeOrderUpdate адресует ордер пользователя и несёт изменения.
type TradeOrderUpdate struct {
	ID     int64 `json:"id" validate:"required,gt=0"`
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	TradeOrderPatch
}
