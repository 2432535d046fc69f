package strategy

import (
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	"rotation_bot/internal/helper"
	"rotation_bot/internal/models"
)

// MoverConfig: правила отбора сигналов из ленты top movers.
type MoverConfig struct {
	Quote       string
	Blacklist   []string
	AllowUSDC   bool
	LongEvents  []string // по умолчанию PULLBACK
	ShortEvents []string // по умолчанию RALLY
}

// Movers выбирает желаемые long/short символы из ленты.
type Movers struct {
	cfg MoverConfig
	log *zap.Logger
}

func NewMovers(cfg MoverConfig, log *zap.Logger) *Movers {
	if log == nil {
		log = zap.NewNop()
	}
	if len(cfg.LongEvents) == 0 {
		cfg.LongEvents = []string{models.EventPullback}
	}
	if len(cfg.ShortEvents) == 0 {
		cfg.ShortEvents = []string{models.EventRally}
	}
	return &Movers{cfg: cfg, log: log}
}

// Allowed: blacklist (подстрока без учёта регистра) и фильтр USDC (с учётом регистра, как в ленте).
func (m *Movers) Allowed(symbol string) bool {
	for _, black := range m.cfg.Blacklist {
		if black != "" && helper.ContainsFold(symbol, black) {
			m.log.Debug("blacklisted symbol filtered", zap.String("symbol", symbol), zap.String("rule", black))
			return false
		}
	}
	if !m.cfg.AllowUSDC && strings.Contains(symbol, "USDC") {
		m.log.Debug("usdc symbol filtered", zap.String("symbol", symbol))
		return false
	}
	return true
}

func (m *Movers) Filter(events []models.MoverEvent) []models.MoverEvent {
	out := make([]models.MoverEvent, 0, len(events))
	for _, e := range events {
		if m.Allowed(e.Symbol) {
			out = append(out, e)
		}
	}
	return out
}

// Select фильтрует события и берёт самое свежее событие своего типа для каждой ноги.
// Ноги выбираются независимо друг от друга.
func (m *Movers) Select(events []models.MoverEvent) models.DesiredTarget {
	sorted := m.Filter(events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreateTimestamp > sorted[j].CreateTimestamp
	})

	return models.DesiredTarget{
		Long:  m.latest(sorted, m.cfg.LongEvents),
		Short: m.latest(sorted, m.cfg.ShortEvents),
	}
}

func (m *Movers) latest(sorted []models.MoverEvent, types []string) string {
	for _, e := range sorted {
		if !slices.Contains(types, e.EventType) {
			continue
		}
		sym := helper.NormalizeSymbol(e.Symbol, m.cfg.Quote)
		if sym == "" {
			m.log.Warn("unparsable mover symbol", zap.String("symbol", e.Symbol))
			continue
		}
		return sym
	}
	return ""
}
