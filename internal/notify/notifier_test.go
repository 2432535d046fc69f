package notify

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"rotation_bot/internal/models"
)

func TestFormatPositions(t *testing.T) {
	assert.Equal(t, "📭 Открытых позиций нет", FormatPositions(nil))

	got := FormatPositions([]models.Position{
		{Symbol: "ETH/USDT:USDT", Side: models.PosLong, Size: decimal.NewFromInt(2), EntryPrice: decimal.RequireFromString("3000.5")},
		{Symbol: "SOL/USDT:USDT", Side: models.PosShort, Size: decimal.RequireFromString("4.5"), EntryPrice: decimal.NewFromInt(150)},
	})
	assert.Contains(t, got, "- ETH/USDT:USDT [LONG] size=2 @ 3000.5\n")
	assert.Contains(t, got, "- SOL/USDT:USDT [SHORT] size=4.5 @ 150\n")
}

func TestStdoutLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewStdout(zap.New(core))

	s.Sendf("🔺 Открыт %s %s qty=%s", "LONG", "ETH/USDT:USDT", decimal.NewFromInt(2))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "🔺 Открыт LONG ETH/USDT:USDT qty=2", entries[0].Message)
	}
}

func TestNilTelegramIsSilent(t *testing.T) {
	var tg *Telegram
	assert.NotPanics(t, func() {
		tg.Send("x")
		tg.Stop()
	})
}

func TestFormatJournal(t *testing.T) {
	assert.Equal(t, "📭 Журнал пуст", FormatJournal(nil))

	got := FormatJournal([]models.JournalEntry{
		{
			Action: models.ActionSkip, Symbol: "ETH/USDT:USDT", Side: models.PosLong,
			Quantity: decimal.Zero, Reason: "cooldown",
			CreatedAt: time.Date(2025, 3, 1, 12, 0, 5, 0, time.UTC),
		},
	})
	assert.Contains(t, got, "03-01 12:00:05 skip ETH/USDT:USDT [LONG] qty=0 (cooldown)\n")
}
