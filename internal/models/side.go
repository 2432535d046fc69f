package models

// PosSide нога позиции в hedge-режиме, "long" или "short".
type PosSide string

const (
	PosLong  PosSide = "long"
	PosShort PosSide = "short"
)

// Side направление ордера, "BUY" или "SELL".
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OpenSide направление ордера, открывающего ногу.
func (s PosSide) OpenSide() Side {
	if s == PosShort {
		return SideSell
	}
	return SideBuy
}

// CloseSide направление ордера, закрывающего ногу.
func (s PosSide) CloseSide() Side {
	if s == PosShort {
		return SideBuy
	}
	return SideSell
}

// Tag: значение positionSide на бирже ("LONG" / "SHORT").
func (s PosSide) Tag() string {
	if s == PosShort {
		return "SHORT"
	}
	return "LONG"
}

func (s PosSide) Valid() bool { return s == PosLong || s == PosShort }

func (s PosSide) String() string { return string(s) }
