package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type TxManager interface {
	RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx pgx.Tx) error) error
}

var _ TxManager = (*PgTxManager)(nil)
