package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order: запись из истории ордеров.
type Order struct {
	ID         int64
	Symbol     string
	Side       Side
	PosSide    PosSide
	ReduceOnly bool
	Status     string
	Time       time.Time
}

// OrderRequest: рыночный ордер с тегом ноги.
type OrderRequest struct {
	Symbol   string
	Side     Side
	PosSide  PosSide
	Quantity decimal.Decimal
	Reason   string
}

type OrderResult struct {
	OrderID       int64
	ClientOrderID string
}

// Market: параметры контракта.
type Market struct {
	Symbol   string // BTC/USDT:USDT
	ID       string // BTCUSDT
	Base     string
	Quote    string
	Settle   string
	StepSize decimal.Decimal
	MinQty   decimal.Decimal
}
