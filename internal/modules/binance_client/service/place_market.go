package service

import (
	"context"

	"github.com/adshao/go-binance/v2/futures"
	"go.uber.org/zap"

	"rotation_bot/internal/exchange"
	"rotation_bot/internal/models"
)

// PlaceMarketOrder: рыночный ордер с positionSide. Без ожидания исполнения.
func (c *Client) PlaceMarketOrder(ctx context.Context, req models.OrderRequest) (models.OrderResult, error) {
	if !req.Quantity.IsPositive() {
		return models.OrderResult{}, fail("PlaceMarketOrder", exchange.KindRejected, "qty <= 0")
	}
	if !req.PosSide.Valid() {
		return models.OrderResult{}, fail("PlaceMarketOrder", exchange.KindRejected, "unsupported posSide=%q", req.PosSide)
	}

	m, err := c.market(ctx, req.Symbol)
	if err != nil {
		return models.OrderResult{}, exchange.NewError("PlaceMarketOrder", exchange.KindUnknown, err)
	}

	clientID := c.clientOrderID()
	res, err := c.fut.NewCreateOrderService().
		Symbol(m.ID).
		Side(futures.SideType(req.Side)).
		PositionSide(futures.PositionSideType(req.PosSide.Tag())).
		Type(futures.OrderTypeMarket).
		Quantity(req.Quantity.String()).
		NewClientOrderID(clientID).
		Do(ctx)
	if err != nil {
		return models.OrderResult{}, wrap("PlaceMarketOrder", err)
	}

	c.log.Debug("market order placed",
		zap.String("symbol", req.Symbol),
		zap.String("side", string(req.Side)),
		zap.String("pos_side", req.PosSide.Tag()),
		zap.String("qty", req.Quantity.String()),
		zap.Int64("order_id", res.OrderID),
	)
	return models.OrderResult{OrderID: res.OrderID, ClientOrderID: res.ClientOrderID}, nil
}
