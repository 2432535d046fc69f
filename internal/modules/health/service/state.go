package service

import (
	"sync"
	"sync/atomic"
	"time"
)

// State: состояние процесса для health-ручек. Пишет раннер, читает HTTP.
type State struct {
	ready     atomic.Bool
	startedAt time.Time

	cycles         atomic.Int64
	failedCycles   atomic.Int64
	lastStartUnix  atomic.Int64 // unix seconds
	lastFinishUnix atomic.Int64

	mu      sync.RWMutex
	lastErr string
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) Ready() bool { return s.ready.Load() }

func (s *State) CycleStarted(t time.Time) { s.lastStartUnix.Store(t.Unix()) }

// CycleFinished: первый завершённый цикл делает сервис ready.
func (s *State) CycleFinished(t time.Time, err error) {
	s.cycles.Add(1)
	s.lastFinishUnix.Store(t.Unix())

	s.mu.Lock()
	if err != nil {
		s.failedCycles.Add(1)
		s.lastErr = err.Error()
	} else {
		s.lastErr = ""
	}
	s.mu.Unlock()

	s.ready.Store(true)
}

func (s *State) Cycles() int64       { return s.cycles.Load() }
func (s *State) FailedCycles() int64 { return s.failedCycles.Load() }

func (s *State) LastStart() time.Time  { return fromUnix(s.lastStartUnix.Load()) }
func (s *State) LastFinish() time.Time { return fromUnix(s.lastFinishUnix.Load()) }

func (s *State) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }

func fromUnix(u int64) time.Time {
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}
