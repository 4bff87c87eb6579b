package models

// TradePair — торговая пара из каталога, например EURUSD.
type TradePair struct {
	ID       int64  `json:"id"`
	PairName string `json:"pair_name"`
}

// TradePairPatch — частичное обновление торговой пары.
type TradePairPatch struct {
	PairName *string `json:"pair_name" validate:"omitempty,min=1,max=50"`
}

// Apply переносит заданные поля patch в p.
func (p TradePairPatch) Apply(tp *TradePair) {
	setIf(&tp.PairName, p.PairName)
}
