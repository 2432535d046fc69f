package runner

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"rotation_bot/internal/exchange"
	"rotation_bot/internal/helper"
	"rotation_bot/internal/models"
)

type fakeExchange struct {
	mu sync.Mutex

	positions    []models.Position
	positionsErr error

	closing    map[string][]models.Order // symbol|side
	closingErr error

	prices     map[string]decimal.Decimal
	balance    decimal.Decimal
	balanceErr error
	step       decimal.Decimal
	minQty     decimal.Decimal

	placeErr map[string]error // symbol|BUY/SELL

	orders []models.OrderRequest
	calls  []string
}

func newFakeExchange() *fakeExchange {
	return &fakeExchange{
		closing:  make(map[string][]models.Order),
		prices:   make(map[string]decimal.Decimal),
		balance:  decimal.NewFromInt(10000),
		step:     decimal.RequireFromString("0.001"),
		minQty:   decimal.RequireFromString("0.001"),
		placeErr: make(map[string]error),
	}
}

func (f *fakeExchange) call(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeExchange) LoadMarkets(context.Context) error     { f.call("LoadMarkets"); return nil }
func (f *fakeExchange) EnsureHedgeMode(context.Context) error { f.call("EnsureHedgeMode"); return nil }

func (f *fakeExchange) Positions(context.Context) ([]models.Position, error) {
	f.call("Positions")
	if f.positionsErr != nil {
		return nil, f.positionsErr
	}
	return append([]models.Position(nil), f.positions...), nil
}

func (f *fakeExchange) ClosingOrders(_ context.Context, symbol string, side models.PosSide, since time.Time) ([]models.Order, error) {
	f.call("ClosingOrders")
	if f.closingErr != nil {
		return nil, f.closingErr
	}
	var res []models.Order
	for _, o := range f.closing[symbol+"|"+side.String()] {
		if !o.Time.Before(since) {
			res = append(res, o)
		}
	}
	return res, nil
}

func (f *fakeExchange) LastPrice(_ context.Context, symbol string) (decimal.Decimal, error) {
	f.call("LastPrice")
	px, ok := f.prices[symbol]
	if !ok {
		return decimal.Zero, exchange.NewError("LastPrice", exchange.KindNotFound, errors.Errorf("no ticker %s", symbol))
	}
	return px, nil
}

func (f *fakeExchange) Balance(context.Context, string) (decimal.Decimal, error) {
	f.call("Balance")
	return f.balance, f.balanceErr
}

func (f *fakeExchange) AmountToPrecision(_ context.Context, symbol string, qty decimal.Decimal) (decimal.Decimal, error) {
	f.call("AmountToPrecision")
	q := helper.RoundDownToStep(qty, f.step)
	if !q.IsPositive() || q.LessThan(f.minQty) {
		return decimal.Zero, exchange.NewError("AmountToPrecision", exchange.KindRejected, errors.Errorf("qty %s below min for %s", qty, symbol))
	}
	return q, nil
}

func (f *fakeExchange) PlaceMarketOrder(_ context.Context, req models.OrderRequest) (models.OrderResult, error) {
	f.call("PlaceMarketOrder")
	if err := f.placeErr[req.Symbol+"|"+string(req.Side)]; err != nil {
		return models.OrderResult{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, req)
	return models.OrderResult{OrderID: int64(len(f.orders)), ClientOrderID: "x-TBzTen1Xtest"}, nil
}

func (f *fakeExchange) placed() []models.OrderRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.OrderRequest(nil), f.orders...)
}

func (f *fakeExchange) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

type fakeSignals struct {
	events []models.MoverEvent
	err    error
	panic  string
	calls  int
}

func (s *fakeSignals) Fetch(context.Context) ([]models.MoverEvent, error) {
	s.calls++
	if s.panic != "" {
		panic(s.panic)
	}
	return s.events, s.err
}

type recJournal struct {
	mu      sync.Mutex
	entries []models.JournalEntry
}

func (j *recJournal) Append(_ context.Context, e models.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
	return nil
}

func (j *recJournal) actions() []models.JournalAction {
	j.mu.Lock()
	defer j.mu.Unlock()
	res := make([]models.JournalAction, 0, len(j.entries))
	for _, e := range j.entries {
		res = append(res, e.Action)
	}
	return res
}

type recTracker struct {
	mu       sync.Mutex
	started  int
	finished []error
}

func (t *recTracker) CycleStarted(time.Time) {
	t.mu.Lock()
	t.started++
	t.mu.Unlock()
}

func (t *recTracker) CycleFinished(_ time.Time, err error) {
	t.mu.Lock()
	t.finished = append(t.finished, err)
	t.mu.Unlock()
}
