package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type JournalAction string

const (
	ActionOpen   JournalAction = "open"
	ActionClose  JournalAction = "close"
	ActionSkip   JournalAction = "skip"
	ActionFailed JournalAction = "failed"
)

// JournalEntry: запись аудита ротации. Решения по ней не принимаются.
type JournalEntry struct {
	CycleID   string
	Action    JournalAction
	Symbol    string
	Side      PosSide
	Quantity  decimal.Decimal
	OrderID   int64
	Reason    string
	CreatedAt time.Time
}
