package runner

import (
	"time"

	"github.com/shopspring/decimal"

	"rotation_bot/internal/modules/config"
)

// Settings: неизменяемая копия параметров ротации. Раннер получает её по значению.
type Settings struct {
	UpdateInterval   time.Duration
	Cooldown         time.Duration
	CooldownLookback time.Duration
	LeverageFraction decimal.Decimal
	BalanceAsset     string
}

func NewSettings(cfg *config.Config) Settings {
	return Settings{
		UpdateInterval:   cfg.Rotation.UpdateInterval,
		Cooldown:         cfg.Rotation.Cooldown,
		CooldownLookback: cfg.Rotation.CooldownLookback,
		LeverageFraction: decimal.NewFromFloat(cfg.Rotation.LeverageFraction),
		BalanceAsset:     cfg.Rotation.BalanceAsset,
	}
}

func (s Settings) withDefaults() Settings {
	if s.UpdateInterval <= 0 {
		s.UpdateInterval = 900 * time.Second
	}
	if s.CooldownLookback <= 0 {
		s.CooldownLookback = 24 * time.Hour
	}
	if s.BalanceAsset == "" {
		s.BalanceAsset = "USDT"
	}
	return s
}
