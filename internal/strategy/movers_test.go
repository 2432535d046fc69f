package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rotation_bot/internal/models"
)

func newTestMovers() *Movers {
	return NewMovers(MoverConfig{Quote: "USDT", Blacklist: []string{"XNY"}}, nil)
}

func TestMoversAllowed(t *testing.T) {
	m := newTestMovers()

	tests := []struct {
		symbol string
		want   bool
	}{
		{symbol: "BTCUSDT", want: true},
		{symbol: "xnybtc", want: false},
		{symbol: "XNYUSDT", want: false},
		{symbol: "ETHUSDC", want: false},
		{symbol: "ETH/USDC:USDC", want: false},
		// USDC сверяется с учётом регистра
		{symbol: "ethusdc", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Allowed(tt.symbol))
		})
	}
}

func TestMoversAllowUSDC(t *testing.T) {
	m := NewMovers(MoverConfig{Quote: "USDT", AllowUSDC: true}, nil)
	assert.True(t, m.Allowed("ETHUSDC"))
}

func TestMoversSelectLatestPerSide(t *testing.T) {
	m := newTestMovers()
	events := []models.MoverEvent{
		{Symbol: "AAAUSDT", EventType: models.EventPullback, CreateTimestamp: 100},
		{Symbol: "BBBUSDT", EventType: models.EventRally, CreateTimestamp: 500},
		{Symbol: "CCCUSDT", EventType: models.EventPullback, CreateTimestamp: 300},
		{Symbol: "DDDUSDT", EventType: "UP_2", CreateTimestamp: 900},
		{Symbol: "EEEUSDT", EventType: models.EventRally, CreateTimestamp: 200},
	}

	got := m.Select(events)

	assert.Equal(t, "CCC/USDT:USDT", got.Long)
	assert.Equal(t, "BBB/USDT:USDT", got.Short)
}

func TestMoversSelectDoesNotMixSides(t *testing.T) {
	m := newTestMovers()
	// самое свежее событие: RALLY, но long берёт только PULLBACK
	events := []models.MoverEvent{
		{Symbol: "NEWUSDT", EventType: models.EventRally, CreateTimestamp: 1000},
		{Symbol: "OLDUSDT", EventType: models.EventPullback, CreateTimestamp: 10},
	}

	got := m.Select(events)

	assert.Equal(t, "OLD/USDT:USDT", got.Long)
	assert.Equal(t, "NEW/USDT:USDT", got.Short)
}

func TestMoversSelectSkipsFiltered(t *testing.T) {
	m := newTestMovers()
	events := []models.MoverEvent{
		{Symbol: "XNYUSDT", EventType: models.EventPullback, CreateTimestamp: 900},
		{Symbol: "ETHUSDC", EventType: models.EventRally, CreateTimestamp: 900},
		{Symbol: "SOLUSDT", EventType: models.EventPullback, CreateTimestamp: 100},
	}

	got := m.Select(events)

	assert.Equal(t, "SOL/USDT:USDT", got.Long)
	assert.Empty(t, got.Short)
}

func TestMoversSelectEmpty(t *testing.T) {
	got := newTestMovers().Select(nil)
	assert.Equal(t, models.DesiredTarget{}, got)
}

func TestMoversCustomEventTypes(t *testing.T) {
	m := NewMovers(MoverConfig{
		Quote:       "USDT",
		LongEvents:  []string{"UP_1", "UP_2"},
		ShortEvents: []string{"DOWN_1"},
	}, nil)
	events := []models.MoverEvent{
		{Symbol: "AAA", EventType: models.EventPullback, CreateTimestamp: 900},
		{Symbol: "BBB", EventType: "UP_2", CreateTimestamp: 100},
		{Symbol: "CCC", EventType: "DOWN_1", CreateTimestamp: 50},
	}

	got := m.Select(events)

	assert.Equal(t, "BBB/USDT:USDT", got.Long)
	assert.Equal(t, "CCC/USDT:USDT", got.Short)
}
