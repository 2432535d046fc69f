package service

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rotation_bot/internal/exchange"
	"rotation_bot/internal/models"
)

// ClosingOrders: ордера, закрывавшие ногу side по symbol начиная с since.
// Закрывающим считаем reduceOnly/closePosition либо ордер с тегом ноги в обратную сторону.
func (c *Client) ClosingOrders(ctx context.Context, symbol string, side models.PosSide, since time.Time) ([]models.Order, error) {
	m, err := c.market(ctx, symbol)
	if err != nil {
		return nil, exchange.NewError("ClosingOrders", exchange.KindUnknown, err)
	}

	orders, err := c.listOrdersSince(ctx, m.ID, since)
	if err != nil {
		return nil, err
	}

	res := make([]models.Order, 0)
	for _, o := range orders {
		if !isClosing(o, side) {
			continue
		}
		res = append(res, toOrder(o, symbol))
	}
	return res, nil
}

// allOrders отдаёт не больше limit ордеров от startTime по возрастанию,
// поэтому листаем по orderId, пока страница полная.
const maxOrderPages = 10

func (c *Client) listOrdersSince(ctx context.Context, id string, since time.Time) ([]*futures.Order, error) {
	limit := c.cfg.OrderLookupLimit
	var (
		res    []*futures.Order
		fromID int64
	)
	for page := 0; page < maxOrderPages; page++ {
		svc := c.fut.NewListOrdersService().Symbol(id).Limit(limit)
		if fromID == 0 {
			svc = svc.StartTime(since.UnixMilli())
		} else {
			svc = svc.OrderID(fromID)
		}

		batch, err := svc.Do(ctx)
		if err != nil {
			return nil, wrap("ClosingOrders", err)
		}
		next := fromID
		for _, o := range batch {
			if o == nil || o.OrderID < fromID {
				continue
			}
			res = append(res, o)
			if o.OrderID >= next {
				next = o.OrderID + 1
			}
		}
		if len(batch) < limit || next == fromID {
			return res, nil
		}
		fromID = next
	}

	c.log.Warn("closing orders lookup truncated", zap.String("id", id), zap.Int("pages", maxOrderPages))
	return res, nil
}

func isClosing(o *futures.Order, side models.PosSide) bool {
	if o == nil {
		return false
	}
	switch o.Status {
	case futures.OrderStatusTypeCanceled, futures.OrderStatusTypeRejected, futures.OrderStatusTypeExpired:
		filled, _ := decimal.NewFromString(o.ExecutedQuantity)
		if !filled.IsPositive() {
			return false
		}
	}
	if string(o.Side) != string(side.CloseSide()) {
		return false
	}
	if o.ReduceOnly || o.ClosePosition {
		return true
	}
	return string(o.PositionSide) == side.Tag()
}

func toOrder(o *futures.Order, symbol string) models.Order {
	ts := o.Time
	if ts == 0 {
		ts = o.UpdateTime
	}

	var posSide models.PosSide
	switch o.PositionSide {
	case futures.PositionSideTypeLong:
		posSide = models.PosLong
	case futures.PositionSideTypeShort:
		posSide = models.PosShort
	}

	return models.Order{
		ID:         o.OrderID,
		Symbol:     symbol,
		Side:       models.Side(o.Side),
		PosSide:    posSide,
		ReduceOnly: o.ReduceOnly,
		Status:     string(o.Status),
		Time:       time.UnixMilli(ts),
	}
}
