package journal

import (
	"context"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotation_bot/internal/models"
)

func TestInsertArgs(t *testing.T) {
	at := time.Date(2025, 3, 1, 15, 0, 0, 0, time.FixedZone("MSK", 3*3600))
	args, err := insertArgs(models.JournalEntry{
		CycleID:   "c1",
		Action:    models.ActionOpen,
		Symbol:    "ETH/USDT:USDT",
		Side:      models.PosLong,
		Quantity:  decimal.RequireFromString("2.500"),
		OrderID:   42,
		Reason:    "rotate",
		CreatedAt: at,
	})
	require.NoError(t, err)
	require.Len(t, args, 9)

	assert.Equal(t, "c1", args[0])
	assert.Equal(t, "open", args[1])
	assert.Equal(t, "long", args[3])
	assert.Equal(t, "2.5", args[4])
	require.NotNil(t, args[5])
	assert.Equal(t, int64(42), *args[5].(*int64))
	assert.Equal(t, at.UTC(), args[8])

	var p payload
	require.NoError(t, sonic.Unmarshal(args[7].([]byte), &p))
	assert.Equal(t, "ETH/USDT:USDT", p.Symbol)
	assert.Equal(t, "2.5", p.Quantity)
	assert.Equal(t, int64(42), p.OrderID)
}

func TestInsertArgsSkipWithoutOrder(t *testing.T) {
	args, err := insertArgs(models.JournalEntry{Action: models.ActionSkip, Symbol: "BTC/USDT:USDT", Side: models.PosShort, Reason: "cooldown"})
	require.NoError(t, err)

	assert.Nil(t, args[5].(*int64))
	assert.Equal(t, "0", args[4])
	assert.False(t, args[8].(time.Time).IsZero())
	assert.NotContains(t, string(args[7].([]byte)), "order_id")
}

func TestNop(t *testing.T) {
	var s Store = Nop{}
	require.NoError(t, s.Append(context.Background(), models.JournalEntry{}))
	got, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseQty(t *testing.T) {
	q, err := parseQty("")
	require.NoError(t, err)
	assert.True(t, q.IsZero())

	q, err = parseQty("0.0150")
	require.NoError(t, err)
	assert.Equal(t, "0.015", q.String())

	_, err = parseQty("abc")
	assert.Error(t, err)
}
