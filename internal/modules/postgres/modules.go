package postgres

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"rotation_bot/internal/journal"
	"rotation_bot/internal/modules/config"
	"rotation_bot/internal/runner"
	"rotation_bot/pkg/db"
)

// NewJournal: журнал в Postgres, если задан DSN; иначе пустышка.
func NewJournal(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (journal.Store, error) {
	if cfg.DB == "" {
		log.Info("db_dsn not set, journal disabled")
		return journal.Nop{}, nil
	}

	poolMaster, err := db.NewPool(ctx, db.PoolConfig{
		DSN:      cfg.DB,
		MaxConns: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create poolMaster: %w", err)
	}

	err = poolMaster.Ping(ctx)
	if err != nil {
		poolMaster.Close()
		return nil, err
	}

	tx := db.NewPgTxManager(poolMaster)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			tx.Close()
			return nil
		},
	})
	return journal.NewPostgres(tx), nil
}

func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			NewJournal,
			// journal.Store -> runner.Journal
			func(s journal.Store) runner.Journal {
				return s
			},
		),
	)
}
