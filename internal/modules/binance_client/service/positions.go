package service

import (
	"context"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rotation_bot/internal/models"
)

// Positions: открытые позиции на загруженных perpetual-контрактах.
// Нулевые и позиции на прочих контрактах (квартальные и т.п.) отбрасываются:
// бот ими не торгует и закрыть их не сможет.
func (c *Client) Positions(ctx context.Context) ([]models.Position, error) {
	risks, err := c.fut.NewGetPositionRiskService().Do(ctx)
	if err != nil {
		return nil, wrap("Positions", err)
	}

	if c.hasUnknown(risks) && c.reloadDue() {
		if err := c.LoadMarkets(ctx); err != nil {
			c.log.Warn("markets reload failed", zap.Error(err))
		}
	}

	res := make([]models.Position, 0, len(risks))
	for _, r := range risks {
		if p, ok := c.toPosition(r); ok {
			res = append(res, p)
		}
	}
	return res, nil
}

func (c *Client) hasUnknown(risks []*futures.PositionRisk) bool {
	for _, r := range risks {
		if r == nil || isZero(r.PositionAmt) {
			continue
		}
		if _, ok := c.unified(r.Symbol); !ok {
			return true
		}
	}
	return false
}

func isZero(amt string) bool {
	d, err := decimal.NewFromString(amt)
	return err != nil || d.IsZero()
}

func (c *Client) toPosition(r *futures.PositionRisk) (models.Position, bool) {
	if r == nil {
		return models.Position{}, false
	}
	amt, err := decimal.NewFromString(r.PositionAmt)
	if err != nil || amt.IsZero() {
		return models.Position{}, false
	}
	symbol, ok := c.unified(r.Symbol)
	if !ok {
		c.log.Debug("position on unmanaged contract ignored", zap.String("id", r.Symbol), zap.String("amt", r.PositionAmt))
		return models.Position{}, false
	}

	var side models.PosSide
	switch r.PositionSide {
	case "LONG":
		side = models.PosLong
	case "SHORT":
		side = models.PosShort
	default:
		// one-way режим (BOTH): сторона по знаку
		side = models.PosLong
		if amt.IsNegative() {
			side = models.PosShort
		}
	}

	entry, _ := decimal.NewFromString(r.EntryPrice)
	return models.Position{
		Symbol:     symbol,
		Side:       side,
		Size:       amt.Abs(),
		EntryPrice: entry,
	}, true
}
