package runner

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"rotation_bot/internal/exchange"
	"rotation_bot/internal/modules/config"
	"rotation_bot/internal/strategy"
)

type Params struct {
	fx.In

	Cfg      *config.Config
	Exchange exchange.Client
	Signals  SignalSource
	Movers   *strategy.Movers
	Journal  Journal
	Notify   Notifier
	Health   CycleTracker
	Tracer   opentracing.Tracer
	Log      *zap.Logger
}

func NewRunner(p Params) *Runner {
	return New(NewSettings(p.Cfg), Deps{
		Exchange: p.Exchange,
		Signals:  p.Signals,
		Movers:   p.Movers,
		Journal:  p.Journal,
		Notify:   p.Notify,
		Health:   p.Health,
		Tracer:   p.Tracer,
		Log:      p.Log.Named("runner"),
	})
}

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			NewRunner, // *Runner
		),
		fx.Invoke(func(lc fx.Lifecycle, r *Runner) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					// ctx хука живёт только на время старта, циклу нужен свой
					r.Start(context.Background())
					return nil
				},
				OnStop: func(ctx context.Context) error {
					return r.Stop(ctx)
				},
			})
		}),
	)
}
