package strategy

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"rotation_bot/internal/modules/config"
)

// NewMoversFromConfig: правила отбора из секции rotation.
func NewMoversFromConfig(cfg *config.Config, log *zap.Logger) *Movers {
	return NewMovers(MoverConfig{
		Quote:       cfg.Rotation.Quote,
		Blacklist:   cfg.Rotation.Blacklist,
		AllowUSDC:   cfg.Rotation.AllowUSDC,
		LongEvents:  cfg.Rotation.LongEvents,
		ShortEvents: cfg.Rotation.ShortEvents,
	}, log.Named("movers"))
}

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			NewMoversFromConfig, // *Movers
		),
	)
}
