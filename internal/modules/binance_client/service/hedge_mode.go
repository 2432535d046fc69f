package service

import (
	"context"
)

// EnsureHedgeMode включает dualSidePosition, если он выключен.
func (c *Client) EnsureHedgeMode(ctx context.Context) error {
	mode, err := c.fut.NewGetPositionModeService().Do(ctx)
	if err != nil {
		return wrap("EnsureHedgeMode", err)
	}
	if mode.DualSidePosition {
		return nil
	}

	c.log.Info("enabling hedge mode")
	if err := c.fut.NewChangePositionModeService().DualSide(true).Do(ctx); err != nil {
		if code, ok := apiCode(err); ok && code == codeNoNeedToChangePos {
			return nil
		}
		return wrap("EnsureHedgeMode", err)
	}
	c.log.Info("hedge mode enabled")
	return nil
}
