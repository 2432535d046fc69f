package runner

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rotation_bot/internal/exchange"
	"rotation_bot/internal/models"
)

// reconcile сверяет одну ногу: есть сигнал и он отличается от текущей позиции -
// закрываем текущую и открываем новую. Нет сигнала: ничего не трогаем.
func (r *Runner) reconcile(ctx context.Context, c *cycle, log *zap.Logger, side models.PosSide, current *models.Position, desired string) error {
	log = log.With(zap.String("side", side.String()))

	if desired == "" {
		log.Debug("no signal, leg untouched")
		return nil
	}
	if current != nil && current.Symbol == desired {
		log.Debug("leg already on target", zap.String("symbol", desired))
		return nil
	}

	if current != nil {
		if err := r.closeLeg(ctx, c, log, current.Symbol, side); err != nil {
			if exchange.KindOf(err) != exchange.KindNotFound {
				log.Warn("open skipped after failed close", zap.String("symbol", desired))
				return err
			}
		}
	}
	return r.openLeg(ctx, c, log, desired, side)
}

// closeLeg закрывает весь наблюдаемый объём (symbol, side) рыночным ордером.
// Позиции нет: предупреждение, не ошибка.
func (r *Runner) closeLeg(ctx context.Context, c *cycle, log *zap.Logger, symbol string, side models.PosSide) error {
	pos := findPosition(c.positions, symbol, side)
	if pos == nil {
		log.Warn("no position to close", zap.String("symbol", symbol))
		return nil
	}

	res, err := r.ex.PlaceMarketOrder(ctx, models.OrderRequest{
		Symbol:   symbol,
		Side:     side.CloseSide(),
		PosSide:  side,
		Quantity: pos.Size,
		Reason:   "rotate",
	})
	if err != nil {
		r.logExchangeErr(log, "close failed", err, zap.String("symbol", symbol))
		r.record(ctx, c, models.ActionFailed, symbol, side, pos.Size, 0, "close: "+err.Error())
		return errors.Wrapf(err, "close %s %s", side, symbol)
	}

	log.Info("leg closed", zap.String("symbol", symbol), zap.String("qty", pos.Size.String()), zap.Int64("order_id", res.OrderID))
	r.record(ctx, c, models.ActionClose, symbol, side, pos.Size, res.OrderID, "rotate")
	r.notify.Sendf("🔻 Закрыт %s %s qty=%s", side.Tag(), symbol, pos.Size)
	return nil
}

// openLeg открывает ногу на рассчитанный объём, если по ней не было свежего закрытия.
func (r *Runner) openLeg(ctx context.Context, c *cycle, log *zap.Logger, symbol string, side models.PosSide) error {
	log = log.With(zap.String("symbol", symbol))

	recent, err := r.recentlyClosed(ctx, symbol, side)
	if err != nil {
		r.logExchangeErr(log, "cooldown lookup failed, treating as no recent close", err)
	}
	if recent {
		log.Info("open skipped: cooldown", zap.Duration("cooldown", r.set.Cooldown))
		r.record(ctx, c, models.ActionSkip, symbol, side, decimal.Zero, 0, "cooldown")
		return nil
	}

	qty, err := r.calcSize(ctx, symbol)
	if err != nil {
		if errors.Is(err, ErrSizeTooSmall) {
			log.Warn("open skipped: size too small", zap.Error(err))
			r.record(ctx, c, models.ActionSkip, symbol, side, decimal.Zero, 0, "size too small")
			return nil
		}
		r.logExchangeErr(log, "sizing failed", err)
		return errors.Wrapf(err, "size %s %s", side, symbol)
	}

	res, err := r.ex.PlaceMarketOrder(ctx, models.OrderRequest{
		Symbol:   symbol,
		Side:     side.OpenSide(),
		PosSide:  side,
		Quantity: qty,
		Reason:   "rotate",
	})
	if err != nil {
		r.logExchangeErr(log, "open failed", err)
		r.record(ctx, c, models.ActionFailed, symbol, side, qty, 0, "open: "+err.Error())
		return errors.Wrapf(err, "open %s %s", side, symbol)
	}

	log.Info("leg opened", zap.String("qty", qty.String()), zap.Int64("order_id", res.OrderID))
	r.record(ctx, c, models.ActionOpen, symbol, side, qty, res.OrderID, "rotate")
	r.notify.Sendf("🔺 Открыт %s %s qty=%s", side.Tag(), symbol, qty)
	return nil
}

func findPosition(positions []models.Position, symbol string, side models.PosSide) *models.Position {
	for i := range positions {
		p := &positions[i]
		if p.Symbol == symbol && p.Side == side && p.Open() {
			return p
		}
	}
	return nil
}

func (r *Runner) record(ctx context.Context, c *cycle, action models.JournalAction, symbol string, side models.PosSide, qty decimal.Decimal, orderID int64, reason string) {
	err := r.journal.Append(ctx, models.JournalEntry{
		CycleID:   c.id,
		Action:    action,
		Symbol:    symbol,
		Side:      side,
		Quantity:  qty,
		OrderID:   orderID,
		Reason:    reason,
		CreatedAt: r.now(),
	})
	if err != nil {
		r.log.Warn("journal append failed", zap.String("cycle_id", c.id), zap.Error(err))
	}
}
