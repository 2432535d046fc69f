package exchange

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rotation_bot/internal/models"
)

// Client: то, что бот берёт у биржи. Символы везде в унифицированном виде BTC/USDT:USDT.
// Все ошибки: *Error с Kind.
type Client interface {
	// LoadMarkets подтягивает параметры контрактов (шаг лота, активы).
	LoadMarkets(ctx context.Context) error
	// EnsureHedgeMode включает двусторонние позиции, если выключены.
	EnsureHedgeMode(ctx context.Context) error

	Positions(ctx context.Context) ([]models.Position, error)
	// ClosingOrders: ордера, закрывавшие ногу side по symbol, начиная с since.
	ClosingOrders(ctx context.Context, symbol string, side models.PosSide, since time.Time) ([]models.Order, error)
	LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	// Balance: полный баланс актива (кошелёк + нереализованный PnL).
	Balance(ctx context.Context, asset string) (decimal.Decimal, error)
	AmountToPrecision(ctx context.Context, symbol string, qty decimal.Decimal) (decimal.Decimal, error)
	PlaceMarketOrder(ctx context.Context, req models.OrderRequest) (models.OrderResult, error)
}
