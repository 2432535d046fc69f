package signal_feed

import (
	"go.uber.org/fx"

	"rotation_bot/internal/modules/config"
	"rotation_bot/internal/modules/signal_feed/service"
	"rotation_bot/internal/runner"
)

func NewClient(cfg *config.Config) *service.Client {
	return service.NewClient(service.Config{
		URL:     cfg.Signal.URL,
		Timeout: cfg.Signal.Timeout,
	})
}

func Module() fx.Option {
	return fx.Module("signal_feed",
		fx.Provide(
			NewClient,
			// *service.Client -> runner.SignalSource
			func(c *service.Client) runner.SignalSource {
				return c
			},
		),
	)
}
