package runner

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"rotation_bot/internal/exchange"
	"rotation_bot/internal/models"
	"rotation_bot/internal/strategy"
)

// SignalSource: лента событий top movers.
type SignalSource interface {
	Fetch(ctx context.Context) ([]models.MoverEvent, error)
}

// Journal: журнал действий ротации. Ошибки журнала на торговлю не влияют.
type Journal interface {
	Append(ctx context.Context, e models.JournalEntry) error
}

type Notifier interface {
	Sendf(format string, args ...any)
}

// CycleTracker получает отметки начала и конца цикла (health).
type CycleTracker interface {
	CycleStarted(t time.Time)
	CycleFinished(t time.Time, err error)
}

// Deps: зависимости раннера. Необязательные можно не заполнять.
type Deps struct {
	Exchange exchange.Client
	Signals  SignalSource
	Movers   *strategy.Movers

	Journal Journal
	Notify  Notifier
	Health  CycleTracker
	Tracer  opentracing.Tracer
	Log     *zap.Logger

	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// Runner крутит цикл ротации: раз в UpdateInterval сверяет ноги с лентой и переворачивает их.
type Runner struct {
	set Settings

	ex      exchange.Client
	signals SignalSource
	movers  *strategy.Movers
	journal Journal
	notify  Notifier
	health  CycleTracker
	tracer  opentracing.Tracer
	log     *zap.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(set Settings, d Deps) *Runner {
	r := &Runner{
		set:     set.withDefaults(),
		ex:      d.Exchange,
		signals: d.Signals,
		movers:  d.Movers,
		journal: d.Journal,
		notify:  d.Notify,
		health:  d.Health,
		tracer:  d.Tracer,
		log:     d.Log,
		now:     d.Now,
		sleep:   d.Sleep,
	}
	if r.movers == nil {
		r.movers = strategy.NewMovers(strategy.MoverConfig{Quote: "USDT"}, r.log)
	}
	if r.journal == nil {
		r.journal = nopJournal{}
	}
	if r.notify == nil {
		r.notify = nopNotifier{}
	}
	if r.health == nil {
		r.health = nopTracker{}
	}
	if r.tracer == nil {
		r.tracer = opentracing.NoopTracer{}
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.sleep == nil {
		r.sleep = sleepCtx
	}
	return r
}

// Start запускает цикл в отдельной горутине. Повторный вызов ничего не делает.
func (r *Runner) Start(parent context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		_ = r.Run(ctx)
	}()
}

// Stop гасит цикл и ждёт выхода горутины (или ctx).
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.mu.Unlock()
	if cancel == nil {
		return nil
	}

	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run крутит циклы до отмены ctx. После каждого цикла, удачного или нет, спим полный интервал.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("rotation loop started",
		zap.Duration("interval", r.set.UpdateInterval),
		zap.Duration("cooldown", r.set.Cooldown),
		zap.String("leverage_fraction", r.set.LeverageFraction.String()),
	)

	for {
		if ctx.Err() != nil {
			break
		}
		r.safeCycle(ctx)
		if err := r.sleep(ctx, r.set.UpdateInterval); err != nil {
			break
		}
	}

	r.log.Info("rotation loop stopped")
	return ctx.Err()
}

// safeCycle гоняет один цикл с перехватом паники, упавший цикл не роняет процесс.
func (r *Runner) safeCycle(ctx context.Context) {
	r.health.CycleStarted(r.now())

	var err error
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
			r.log.Error("cycle panicked", zap.Any("panic", p), zap.ByteString("stack", debug.Stack()))
		}
		r.health.CycleFinished(r.now(), err)
	}()

	err = r.RunCycle(ctx)
}

// RunCycle: один проход сверки. Ошибки по ногам собираются, но вторая нога обрабатывается
// независимо от первой.
func (r *Runner) RunCycle(ctx context.Context) (err error) {
	c := &cycle{id: uuid.NewString()}

	span := r.tracer.StartSpan("rotation.cycle")
	span.SetTag("cycle_id", c.id)
	defer func() {
		if err != nil {
			span.SetTag("error", true)
			span.LogKV("event", "error", "message", err.Error())
		}
		span.Finish()
	}()
	ctx = opentracing.ContextWithSpan(ctx, span)

	log := r.log.With(zap.String("cycle_id", c.id))

	c.positions, err = r.ex.Positions(ctx)
	if err != nil {
		r.logExchangeErr(log, "positions fetch failed, cycle skipped", err)
		return errors.Wrap(err, "fetch positions")
	}
	legs := strategy.CurrentLegs(c.positions)

	events, err := r.signals.Fetch(ctx)
	if err != nil {
		log.Warn("signal fetch failed, cycle skipped", zap.Error(err))
		return errors.Wrap(err, "fetch signals")
	}
	target := r.movers.Select(events)

	log.Info("cycle",
		zap.Int("events", len(events)),
		zap.String("current_long", legs.Symbol(models.PosLong)),
		zap.String("current_short", legs.Symbol(models.PosShort)),
		zap.String("desired_long", target.Long),
		zap.String("desired_short", target.Short),
	)
	span.SetTag("desired_long", target.Long)
	span.SetTag("desired_short", target.Short)

	for _, side := range []models.PosSide{models.PosLong, models.PosShort} {
		if ctx.Err() != nil {
			return multierr.Append(err, ctx.Err())
		}
		err = multierr.Append(err, r.reconcile(ctx, c, log, side, legs.For(side), target.For(side)))
	}
	return err
}

type cycle struct {
	id        string
	positions []models.Position
}

func (r *Runner) logExchangeErr(log *zap.Logger, msg string, err error, fields ...zap.Field) {
	kind := exchange.KindOf(err)
	fields = append(fields, zap.String("kind", kind.String()), zap.Error(err))
	if kind.Retryable() {
		log.Warn(msg, fields...)
		return
	}
	log.Error(msg, fields...)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type nopJournal struct{}

func (nopJournal) Append(context.Context, models.JournalEntry) error { return nil }

type nopNotifier struct{}

func (nopNotifier) Sendf(string, ...any) {}

type nopTracker struct{}

func (nopTracker) CycleStarted(time.Time)         {}
func (nopTracker) CycleFinished(time.Time, error) {}
