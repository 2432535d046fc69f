package binance_client

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"rotation_bot/internal/exchange"
	"rotation_bot/internal/modules/binance_client/service"
	"rotation_bot/internal/modules/config"
)

func NewClient(cfg *config.Config, log *zap.Logger) *service.Client {
	return service.NewClient(service.Config{
		APIKey:            cfg.Exchange.APIKey,
		APISecret:         cfg.Exchange.APISecret,
		BaseURL:           cfg.Exchange.BaseURL,
		Testnet:           cfg.Exchange.Testnet,
		ClientOrderPrefix: cfg.Exchange.ClientOrderPrefix,
		OrderLookupLimit:  cfg.Exchange.OrderLookupLimit,
	}, log.Named("binance"))
}

// Module поднимает клиента USD-M futures. Без рынков и hedge mode бот не стартует.
func Module() fx.Option {
	return fx.Module("binance_client",
		fx.Provide(
			NewClient,
			// *service.Client -> exchange.Client
			func(c *service.Client) exchange.Client {
				return c
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, c *service.Client) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					if err := c.LoadMarkets(ctx); err != nil {
						return errors.Wrap(err, "load markets")
					}
					if err := c.EnsureHedgeMode(ctx); err != nil {
						return errors.Wrap(err, "enable hedge mode")
					}
					return nil
				},
			})
		}),
	)
}
