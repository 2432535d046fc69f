package service

import (
	"context"

	"github.com/shopspring/decimal"

	"rotation_bot/internal/exchange"
)

// LastPrice: последняя цена сделки.
func (c *Client) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	m, err := c.market(ctx, symbol)
	if err != nil {
		return decimal.Zero, exchange.NewError("LastPrice", exchange.KindUnknown, err)
	}

	prices, err := c.fut.NewListPricesService().Symbol(m.ID).Do(ctx)
	if err != nil {
		return decimal.Zero, wrap("LastPrice", err)
	}
	for _, p := range prices {
		if p.Symbol != m.ID {
			continue
		}
		px, err := decimal.NewFromString(p.Price)
		if err != nil {
			return decimal.Zero, fail("LastPrice", exchange.KindUnknown, "parse price %q: %v", p.Price, err)
		}
		if !px.IsPositive() {
			return decimal.Zero, fail("LastPrice", exchange.KindRejected, "price <= 0 for %s", symbol)
		}
		return px, nil
	}
	return decimal.Zero, fail("LastPrice", exchange.KindNotFound, "no ticker for %s", symbol)
}
