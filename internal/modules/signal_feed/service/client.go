package service

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"rotation_bot/internal/models"
)

// ErrFetch: лента недоступна или ответила мусором. Цикл пропускается.
var ErrFetch = errors.New("signal feed fetch failed")

type Config struct {
	URL     string
	Timeout time.Duration
}

// Client ходит в ленту top movers по HTTP. Ретраев нет, следующий цикл и есть ретрай.
type Client struct {
	url    string
	client *resty.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{url: cfg.URL, client: client}
}

// Fetch забирает текущий список событий. Любая ошибка оборачивает ErrFetch.
func (c *Client) Fetch(ctx context.Context) ([]models.MoverEvent, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.url)
	if err != nil {
		return nil, errors.Wrapf(ErrFetch, "get %s: %v", c.url, err)
	}
	if !resp.IsSuccess() {
		return nil, errors.Wrapf(ErrFetch, "http %d: %s", resp.StatusCode(), snippet(resp.Body()))
	}

	return Decode(resp.Body())
}

// Decode разбирает тело ленты: JSON-массив объектов с symbol/eventType/createTimestamp.
func Decode(body []byte) ([]models.MoverEvent, error) {
	var events []models.MoverEvent
	if err := sonic.Unmarshal(body, &events); err != nil {
		return nil, errors.Wrapf(ErrFetch, "decode: %v", err)
	}
	for i, ev := range events {
		if strings.TrimSpace(ev.Symbol) == "" {
			return nil, errors.Wrapf(ErrFetch, "entry %d without symbol", i)
		}
	}
	return events, nil
}

func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
