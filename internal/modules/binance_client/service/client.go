package service

import (
	"strings"
	"sync"
	"time"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rotation_bot/internal/models"
)

// максимальная длина newClientOrderId у Binance
const maxClientOrderID = 36

type Config struct {
	APIKey            string
	APISecret         string
	BaseURL           string // пусто: боевой адрес (или testnet)
	Testnet           bool
	ClientOrderPrefix string
	OrderLookupLimit  int
	// не чаще этого перечитываем exchangeInfo на промахе по символу
	MarketsReloadEvery time.Duration
}

// Client адаптирует USD-M futures из go-binance. Символы наружу в виде BTC/USDT:USDT.
type Client struct {
	cfg Config
	fut *futures.Client
	log *zap.Logger

	mu       sync.RWMutex
	markets  map[string]models.Market // BTC/USDT:USDT -> market
	byID     map[string]models.Market // BTCUSDT -> market
	loadedAt time.Time

	now func() time.Time
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.OrderLookupLimit <= 0 {
		cfg.OrderLookupLimit = 500
	}
	if cfg.MarketsReloadEvery <= 0 {
		cfg.MarketsReloadEvery = time.Minute
	}

	futures.UseTestnet = cfg.Testnet
	fut := futures.NewClient(cfg.APIKey, cfg.APISecret)
	if cfg.BaseURL != "" {
		fut.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	return &Client{
		cfg:     cfg,
		fut:     fut,
		log:     log,
		markets: make(map[string]models.Market),
		byID:    make(map[string]models.Market),
		now:     time.Now,
	}
}

func (c *Client) clientOrderID() string {
	id := c.cfg.ClientOrderPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	if len(id) > maxClientOrderID {
		id = id[:maxClientOrderID]
	}
	return id
}
