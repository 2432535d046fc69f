package models

import "github.com/shopspring/decimal"

// Position: открытая позиция на бирже, символ в унифицированном виде (BTC/USDT:USDT).
type Position struct {
	Symbol     string
	Side       PosSide
	Size       decimal.Decimal
	EntryPrice decimal.Decimal
}

func (p Position) Open() bool { return p.Size.IsPositive() }
