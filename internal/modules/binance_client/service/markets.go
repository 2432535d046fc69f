package service

import (
	"context"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rotation_bot/internal/exchange"
	"rotation_bot/internal/helper"
	"rotation_bot/internal/models"
)

const contractPerpetual = "PERPETUAL"

// LoadMarkets читает exchangeInfo и перестраивает кеш контрактов.
func (c *Client) LoadMarkets(ctx context.Context) error {
	info, err := c.fut.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return wrap("LoadMarkets", err)
	}

	markets := make(map[string]models.Market, len(info.Symbols))
	byID := make(map[string]models.Market, len(info.Symbols))
	for i := range info.Symbols {
		m, ok := toMarket(&info.Symbols[i])
		if !ok {
			continue
		}
		markets[m.Symbol] = m
		byID[m.ID] = m
	}

	c.mu.Lock()
	c.markets = markets
	c.byID = byID
	c.loadedAt = c.now()
	c.mu.Unlock()

	c.log.Info("markets loaded", zap.Int("count", len(markets)))
	return nil
}

// market ищет контракт. На промах перечитывает exchangeInfo (новые листинги),
// но не чаще MarketsReloadEvery: несколько промахов за цикл дают одну перезагрузку.
func (c *Client) market(ctx context.Context, symbol string) (models.Market, error) {
	if _, _, _, ok := helper.SplitSymbol(symbol); !ok {
		return models.Market{}, fail("market", exchange.KindRejected, "bad symbol %q", symbol)
	}
	if m, ok := c.lookup(symbol); ok {
		return m, nil
	}

	if c.reloadDue() {
		if err := c.LoadMarkets(ctx); err != nil {
			return models.Market{}, err
		}
		if m, ok := c.lookup(symbol); ok {
			return m, nil
		}
	}
	return models.Market{}, fail("market", exchange.KindNotFound, "market %s not found", symbol)
}

// lookup: по унифицированному символу, затем по id (settle в символе мог не совпасть).
func (c *Client) lookup(symbol string) (models.Market, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if m, ok := c.markets[symbol]; ok {
		return m, true
	}
	m, ok := c.byID[helper.MarketID(symbol)]
	return m, ok
}

func (c *Client) reloadDue() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt.IsZero() || c.now().Sub(c.loadedAt) >= c.cfg.MarketsReloadEvery
}

// unified переводит биржевой id (BTCUSDT) в BTC/USDT:USDT.
// false: контракт не из загруженных perpetual (квартальные, делистинг).
func (c *Client) unified(id string) (string, bool) {
	c.mu.RLock()
	m, ok := c.byID[id]
	c.mu.RUnlock()
	return m.Symbol, ok
}

func toMarket(s *futures.Symbol) (models.Market, bool) {
	if string(s.ContractType) != contractPerpetual {
		return models.Market{}, false
	}
	if s.BaseAsset == "" || s.QuoteAsset == "" {
		return models.Market{}, false
	}

	settle := s.MarginAsset
	if settle == "" {
		settle = s.QuoteAsset
	}

	m := models.Market{
		Symbol: helper.UnifiedSymbol(s.BaseAsset, s.QuoteAsset, settle),
		ID:     s.Symbol,
		Base:   s.BaseAsset,
		Quote:  s.QuoteAsset,
		Settle: settle,
	}
	if f := s.LotSizeFilter(); f != nil {
		m.StepSize, _ = decimal.NewFromString(f.StepSize)
		m.MinQty, _ = decimal.NewFromString(f.MinQuantity)
	}
	if !m.StepSize.IsPositive() {
		m.StepSize = decimal.New(1, -int32(s.QuantityPrecision))
	}
	return m, true
}

// AmountToPrecision обрезает количество до шага лота. Меньше минимума: KindRejected.
func (c *Client) AmountToPrecision(ctx context.Context, symbol string, qty decimal.Decimal) (decimal.Decimal, error) {
	m, err := c.market(ctx, symbol)
	if err != nil {
		return decimal.Zero, exchange.NewError("AmountToPrecision", exchange.KindUnknown, err)
	}
	return roundQty(m, qty)
}

func roundQty(m models.Market, qty decimal.Decimal) (decimal.Decimal, error) {
	rounded := helper.RoundDownToStep(qty, m.StepSize)
	if !rounded.IsPositive() || rounded.LessThan(m.MinQty) {
		return decimal.Zero, fail("AmountToPrecision", exchange.KindRejected,
			"qty %s below min %s for %s", qty, m.MinQty, m.Symbol)
	}
	return rounded, nil
}
