package service

import (
	"context"

	"github.com/shopspring/decimal"

	"rotation_bot/internal/exchange"
)

// Balance возвращает total по активу, то есть баланс кошелька + нереализованный PnL (cross).
func (c *Client) Balance(ctx context.Context, asset string) (decimal.Decimal, error) {
	balances, err := c.fut.NewGetBalanceService().Do(ctx)
	if err != nil {
		return decimal.Zero, wrap("Balance", err)
	}

	for _, b := range balances {
		if b.Asset != asset {
			continue
		}
		wallet, err := decimal.NewFromString(b.Balance)
		if err != nil {
			return decimal.Zero, fail("Balance", exchange.KindUnknown, "parse balance %q: %v", b.Balance, err)
		}
		upl, _ := decimal.NewFromString(b.CrossUnPnl)
		return wallet.Add(upl), nil
	}
	return decimal.Zero, fail("Balance", exchange.KindNotFound, "no %s balance", asset)
}
