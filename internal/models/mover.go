package models

const (
	EventPullback = "PULLBACK"
	EventRally    = "RALLY"
)

// MoverEvent: одно событие из ленты top movers.
type MoverEvent struct {
	Symbol          string `json:"symbol"`
	EventType       string `json:"eventType"`
	CreateTimestamp int64  `json:"createTimestamp"`
}

// DesiredTarget: куда хотим повернуть ноги. Пустая строка = сигнала нет.
type DesiredTarget struct {
	Long  string
	Short string
}

func (t DesiredTarget) For(side PosSide) string {
	if side == PosShort {
		return t.Short
	}
	return t.Long
}

// CurrentLegs: управляемые ноги, выбранные из позиций аккаунта.
type CurrentLegs struct {
	Long  *Position
	Short *Position
}

func (c CurrentLegs) For(side PosSide) *Position {
	if side == PosShort {
		return c.Short
	}
	return c.Long
}

// Symbol пустая строка если ноги нет.
func (c CurrentLegs) Symbol(side PosSide) string {
	if p := c.For(side); p != nil {
		return p.Symbol
	}
	return ""
}
