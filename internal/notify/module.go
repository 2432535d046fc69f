package notify

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"rotation_bot/internal/exchange"
	"rotation_bot/internal/journal"
	"rotation_bot/internal/modules/config"
	"rotation_bot/internal/runner"
)

// NewNotifier: Telegram, если задан токен, иначе Stdout.
func NewNotifier(lc fx.Lifecycle, cfg *config.Config, ex exchange.Client, history journal.Store, log *zap.Logger) (Notifier, error) {
	log = log.Named("notify")
	if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
		log.Info("telegram not configured, notifications go to log")
		return NewStdout(log), nil
	}

	t, err := NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, ex, history, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			t.Send("🚀 Бот ротации запущен")
			return t.Start(context.Background())
		},
		OnStop: func(_ context.Context) error {
			t.Stop()
			return nil
		},
	})
	return t, nil
}

func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			NewNotifier,
			// Notifier -> runner.Notifier
			func(n Notifier) runner.Notifier {
				return n
			},
		),
	)
}
