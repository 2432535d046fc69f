package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	apiKeyENV         = "BINANCE_API_KEY"
	apiSecretENV      = "BINANCE_API_SECRET"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatTelegramENV   = "TELEGRAM_CHAT_ID"
	databaseDSN       = "DATABASE_DSN"

	masked = "***"
)

// Config ...
type Config struct {
	Exchange ExchangeConfig `mapstructure:"exchange"`
	Rotation RotationConfig `mapstructure:"rotation"`
	Signal   SignalConfig   `mapstructure:"signal"`
	Log      LogConfig      `mapstructure:"log"`
	Health   HealthConfig   `mapstructure:"health"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	DB       string         `mapstructure:"db_dsn"`

	settings map[string]any
}

type ExchangeConfig struct {
	APIKey            string `mapstructure:"api_key"`
	APISecret         string `mapstructure:"api_secret"`
	BaseURL           string `mapstructure:"base_url"`
	Testnet           bool   `mapstructure:"testnet"`
	ClientOrderPrefix string `mapstructure:"client_order_prefix"`
	OrderLookupLimit  int    `mapstructure:"order_lookup_limit"`
}

type RotationConfig struct {
	// Доля от equity на одну ногу: notional = balance * LeverageFraction
	LeverageFraction float64       `mapstructure:"leverage_fraction"`
	UpdateInterval   time.Duration `mapstructure:"update_interval"`
	Cooldown         time.Duration `mapstructure:"cooldown"`
	CooldownLookback time.Duration `mapstructure:"cooldown_lookback"`
	BalanceAsset     string        `mapstructure:"balance_asset"`
	Quote            string        `mapstructure:"quote"`
	Blacklist        []string      `mapstructure:"blacklist"`
	AllowUSDC        bool          `mapstructure:"allow_usdc"`
	LongEvents       []string      `mapstructure:"long_events"`
	ShortEvents      []string      `mapstructure:"short_events"`
}

type SignalConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type HealthConfig struct {
	Addr string `mapstructure:"addr"` // пусто: HTTP не поднимаем
}

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	ServiceName string `mapstructure:"service_name"`
}

var defaults = map[string]any{
	"exchange.api_key":             "",
	"exchange.api_secret":          "",
	"exchange.base_url":            "",
	"exchange.testnet":             false,
	"exchange.client_order_prefix": "x-TBzTen1X",
	"exchange.order_lookup_limit":  500,

	"rotation.leverage_fraction": 0.0001,
	"rotation.update_interval":   "900s",
	"rotation.cooldown":          "10s",
	"rotation.cooldown_lookback": "24h",
	"rotation.balance_asset":     "USDT",
	"rotation.quote":             "USDT",
	"rotation.blacklist":         []string{"XNY"},
	"rotation.allow_usdc":        false,
	"rotation.long_events":       []string{"PULLBACK"},
	"rotation.short_events":      []string{"RALLY"},

	"signal.url":     "https://www.binance.com/fapi/v1/topMovers",
	"signal.timeout": "5s",

	"log.level":       "info",
	"log.development": false,

	"health.addr": ":8080",

	"telegram.token":   "",
	"telegram.chat_id": 0,

	"tracing.enabled":      false,
	"tracing.host":         "localhost",
	"tracing.port":         6831,
	"tracing.service_name": "rotation_bot",

	"db_dsn": "",
}

// NewConfig читает configs/$CONFIG_FILE (по умолчанию values_local.yaml) + .env + переменные окружения.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	return Load("configs/" + configFileName)
}

// Load собирает конфиг: дефолты < файл < окружение. Отсутствующий файл не ошибка.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("exchange.api_key", apiKeyENV)
	_ = v.BindEnv("exchange.api_secret", apiSecretENV)
	_ = v.BindEnv("telegram.token", tokenTelegramENV)
	_ = v.BindEnv("telegram.chat_id", chatTelegramENV)
	_ = v.BindEnv("db_dsn", databaseDSN)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.settings = maskSecrets(v.AllSettings())
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Rotation.UpdateInterval <= 0:
		return errors.New("rotation.update_interval must be > 0")
	case c.Rotation.LeverageFraction <= 0:
		return errors.New("rotation.leverage_fraction must be > 0")
	case c.Rotation.Cooldown < 0:
		return errors.New("rotation.cooldown must be >= 0")
	case c.Rotation.Quote == "":
		return errors.New("rotation.quote is required")
	case c.Signal.URL == "":
		return errors.New("signal.url is required")
	case c.Signal.Timeout <= 0:
		return errors.New("signal.timeout must be > 0")
	}
	return nil
}

// Dump: итоговые настройки в YAML, секреты замаскированы.
func (c *Config) Dump() (string, error) {
	bs, err := yaml.Marshal(c.settings)
	if err != nil {
		return "", errors.Wrap(err, "marshal config to yaml")
	}
	return string(bs), nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

func maskSecrets(settings map[string]any) map[string]any {
	secret := map[string]bool{"api_key": true, "api_secret": true, "token": true, "db_dsn": true}
	for k, val := range settings {
		switch t := val.(type) {
		case map[string]any:
			settings[k] = maskSecrets(t)
		default:
			if secret[k] && val != "" {
				settings[k] = masked
			}
		}
	}
	return settings
}
