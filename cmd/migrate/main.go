package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"rotation_bot/pkg/db"
	"rotation_bot/pkg/logger"
)

const defaultSource = "migrations/*.sql"

// collect раскрывает glob-шаблоны и сортирует файлы по имени (0001_..., 0002_...).
func collect(patterns []string) ([]string, error) {
	files := make([]string, 0)
	for _, pattern := range patterns {
		f, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "get file glob %s", pattern)
		}
		files = append(files, f...)
	}
	sort.Strings(files)
	return files, nil
}

func apply(ctx context.Context, tx *db.PgTxManager, file string) error {
	body, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrap(err, "read migration")
	}
	return tx.RunMaster(ctx, func(ctxTx context.Context, t pgx.Tx) error {
		_, err := t.Exec(ctxTx, string(body))
		return err
	})
}

func main() {
	logger.SetServiceName("rotation_bot_migrate")
	if _, err := logger.New(logger.Config{Level: "info", Development: true}); err != nil {
		panic(err)
	}

	v := viper.New()
	v.SetDefault("source", []string{defaultSource})
	v.AutomaticEnv()
	_ = v.BindEnv("dsn", "DATABASE_DSN")
	_ = v.BindEnv("source", "MIGRATIONS_SOURCE")

	dsn := v.GetString("dsn")
	if dsn == "" {
		panic("DATABASE_DSN is not set")
	}

	files, err := collect(v.GetStringSlice("source"))
	if err != nil {
		panic(err)
	}
	if len(files) == 0 {
		panic("no migration files found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.NewPool(ctx, db.PoolConfig{DSN: dsn, MaxConns: 1})
	if err != nil {
		panic(fmt.Errorf("connect: %w", err))
	}
	tx := db.NewPgTxManager(pool)
	defer tx.Close()

	for _, file := range files {
		if err := apply(ctx, tx, file); err != nil {
			panic(fmt.Errorf("apply %s: %w", file, err))
		}
		logger.Info("%s applied", file)
	}
	logger.Info("done: %d files", len(files))
}
