package runner

import (
	"context"
	"time"

	"rotation_bot/internal/models"
)

// recentlyClosed: была ли нога (symbol, side) закрыта меньше Cooldown назад.
// Смотрим закрывающие ордера за CooldownLookback.
func (r *Runner) recentlyClosed(ctx context.Context, symbol string, side models.PosSide) (bool, error) {
	if r.set.Cooldown <= 0 {
		return false, nil
	}

	now := r.now()
	orders, err := r.ex.ClosingOrders(ctx, symbol, side, now.Add(-r.set.CooldownLookback))
	if err != nil {
		return false, err
	}

	var last time.Time
	for _, o := range orders {
		if o.Time.After(last) {
			last = o.Time
		}
	}
	if last.IsZero() {
		return false, nil
	}
	return now.Sub(last) < r.set.Cooldown, nil
}
