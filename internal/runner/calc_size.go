package runner

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"rotation_bot/internal/exchange"
)

// ErrSizeTooSmall: объём после округления нулевой или меньше минимального лота.
var ErrSizeTooSmall = errors.New("order size too small")

// calcSize считает объём ноги в базовой валюте:
//
//	notional = balance * LeverageFraction
//	qty      = notional / lastPrice, вниз до шага лота
//
// Баланс берётся заново на каждое открытие, так что размер растёт и падает вместе со счётом.
func (r *Runner) calcSize(ctx context.Context, symbol string) (qty decimal.Decimal, err error) {
	balance, err := r.ex.Balance(ctx, r.set.BalanceAsset)
	if err != nil {
		return qty, errors.Wrap(err, "get balance")
	}
	notional := balance.Mul(r.set.LeverageFraction)
	if !notional.IsPositive() {
		return qty, errors.Wrapf(ErrSizeTooSmall, "notional %s <= 0 (balance %s)", notional, balance)
	}

	price, err := r.ex.LastPrice(ctx, symbol)
	if err != nil {
		return qty, errors.Wrap(err, "get last price")
	}
	if !price.IsPositive() {
		return qty, errors.Errorf("last price %s <= 0", price)
	}

	raw := notional.Div(price)
	qty, err = r.ex.AmountToPrecision(ctx, symbol, raw)
	if err != nil {
		if exchange.KindOf(err) == exchange.KindRejected {
			return qty, errors.Wrapf(ErrSizeTooSmall, "qty %s: %v", raw, err)
		}
		return qty, errors.Wrap(err, "amount to precision")
	}
	return qty, nil
}
