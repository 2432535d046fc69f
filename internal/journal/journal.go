package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"

	"rotation_bot/internal/models"
	"rotation_bot/pkg/db"
)

const insertEntry = `
INSERT INTO rotation_journal (cycle_id, action, symbol, side, quantity, order_id, reason, payload, created_at)
VALUES ($1, $2, $3, $4, $5::text::numeric, $6, $7, $8, $9)`

const selectRecent = `
SELECT cycle_id, action, symbol, side, quantity::text, order_id, reason, created_at
FROM rotation_journal
ORDER BY created_at DESC, id DESC
LIMIT $1`

// Store: журнал действий ротации.
type Store interface {
	Append(ctx context.Context, e models.JournalEntry) error
	Recent(ctx context.Context, limit int) ([]models.JournalEntry, error)
}

// Postgres: append-only журнал ротации в таблице rotation_journal.
type Postgres struct {
	tx db.TxManager
}

func NewPostgres(tx db.TxManager) *Postgres {
	return &Postgres{tx: tx}
}

func (p *Postgres) Append(ctx context.Context, e models.JournalEntry) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Journal.Append: %w", err)
		}
	}()

	args, err := insertArgs(e)
	if err != nil {
		return err
	}
	return p.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertEntry, args...)
		return err
	})
}

// Recent: последние limit записей, новые первыми.
func (p *Postgres) Recent(ctx context.Context, limit int) (entries []models.JournalEntry, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Journal.Recent: %w", err)
		}
	}()

	err = p.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctxTx, selectRecent, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				e       models.JournalEntry
				action  string
				side    string
				qty     string
				orderID *int64
			)
			if err := rows.Scan(&e.CycleID, &action, &e.Symbol, &side, &qty, &orderID, &e.Reason, &e.CreatedAt); err != nil {
				return err
			}
			e.Action = models.JournalAction(action)
			e.Side = models.PosSide(side)
			if e.Quantity, err = parseQty(qty); err != nil {
				return err
			}
			if orderID != nil {
				e.OrderID = *orderID
			}
			entries = append(entries, e)
		}
		return rows.Err()
	})
	return entries, err
}

type payload struct {
	CycleID  string `json:"cycle_id"`
	Action   string `json:"action"`
	Symbol   string `json:"symbol"`
	Side     string `json:"side"`
	Quantity string `json:"quantity"`
	OrderID  int64  `json:"order_id,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func insertArgs(e models.JournalEntry) ([]any, error) {
	data, err := sonic.Marshal(payload{
		CycleID:  e.CycleID,
		Action:   string(e.Action),
		Symbol:   e.Symbol,
		Side:     string(e.Side),
		Quantity: e.Quantity.String(),
		OrderID:  e.OrderID,
		Reason:   e.Reason,
	})
	if err != nil {
		return nil, err
	}

	var orderID *int64
	if e.OrderID != 0 {
		id := e.OrderID
		orderID = &id
	}
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return []any{
		e.CycleID,
		string(e.Action),
		e.Symbol,
		string(e.Side),
		e.Quantity.String(),
		orderID,
		e.Reason,
		data,
		createdAt.UTC(),
	}, nil
}

// Nop: журнал, когда база не настроена.
type Nop struct{}

func (Nop) Append(context.Context, models.JournalEntry) error { return nil }

func (Nop) Recent(context.Context, int) ([]models.JournalEntry, error) { return nil, nil }
