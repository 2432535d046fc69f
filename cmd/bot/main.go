package main

import (
	"context"
	"log"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"rotation_bot/internal/modules/binance_client"
	"rotation_bot/internal/modules/config"
	"rotation_bot/internal/modules/health"
	"rotation_bot/internal/modules/postgres"
	"rotation_bot/internal/modules/signal_feed"
	"rotation_bot/internal/notify"
	"rotation_bot/internal/runner"
	"rotation_bot/internal/strategy"
	"rotation_bot/pkg/logger"
	"rotation_bot/pkg/tracing"
)

const serviceName = "rotation_bot"

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger.SetServiceName(serviceName)
	l, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return nil, err
	}

	dump, err := cfg.Dump()
	if err != nil {
		return nil, err
	}
	l.Info("config loaded\n" + dump)
	return l, nil
}

func newTracer(lc fx.Lifecycle, cfg *config.Config) (opentracing.Tracer, error) {
	tracing.SetServiceName(cfg.Tracing.ServiceName)
	tracer, closer, err := tracing.InitTracer(tracing.Config{
		Enabled: cfg.Tracing.Enabled,
		Host:    cfg.Tracing.Host,
		Port:    cfg.Tracing.Port,
	})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closer()
			return nil
		},
	})
	return tracer, nil
}

func main() {
	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
			newLogger,
			newTracer,
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		config.Module(),
		binance_client.Module(),
		signal_feed.Module(),
		postgres.Module(),
		strategy.Module(),
		notify.Module(),
		health.Module(),
		runner.Module(),
	)
	if err := app.Err(); err != nil {
		log.Fatal(err)
	}
	app.Run()
}
