// internal/batch/scheduler.go

// Package batch provides the per-chat debounce scheduler: it decides when a
// quiet period has passed and a chat's pending buffer should be flushed.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// Flush is the callback invoked once a key's quiet period elapses.
type Flush func(ctx context.Context) error

// NotifyFunc reports a failed flush back to the chat that scheduled it.
type NotifyFunc func(key int64)

// slot is the single timer registration for one key. gen grows on every
// Reschedule and Cancel and never resets; a firing timer that no longer owns
// the current generation was superseded and must give up. Slots stay in the
// map for the scheduler's lifetime so a stale timer can never mistake a
// recreated slot for its own.
type slot struct {
	timer *time.Timer // nil when no timer is armed
	gen   uint64
}

// Scheduler keeps at most one pending flush timer per key at any instant.
// Rescheduling replaces the previous timer with a full fresh delay, so the
// flush fires only after a quiet period with no further arrivals. A
// semaphore bounds how many flush callbacks run at once, so one chat's slow
// network I/O never blocks timer management for the rest.
type Scheduler struct {
	mu    sync.Mutex
	slots map[int64]*slot

	sem    *semaphore.Weighted
	notify NotifyFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a Scheduler allowing up to maxConcurrent flush
// callbacks to execute simultaneously across all keys. notify, if non-nil,
// is called with the key whenever a flush fails or panics.
func NewScheduler(maxConcurrent int64, notify NotifyFunc) *Scheduler {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		slots:  make(map[int64]*slot),
		sem:    semaphore.NewWeighted(maxConcurrent),
		notify: notify,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Reschedule cancels any pending timer for key and arms a new one that runs
// fn after delay. Only the latest schedule survives: each call bumps the
// slot's generation, and a timer firing with a stale generation gives up
// before touching anything.
func (s *Scheduler) Reschedule(key int64, delay time.Duration, fn Flush) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[key]
	if !ok {
		sl = &slot{}
		s.slots[key] = sl
	}
	if sl.timer != nil {
		sl.timer.Stop()
	}
	sl.gen++
	gen := sl.gen
	sl.timer = time.AfterFunc(delay, func() {
		s.fire(key, gen, fn)
	})
}

// Cancel drops any pending timer for key. No-op if the timer already fired
// or was never scheduled.
func (s *Scheduler) Cancel(key int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl, ok := s.slots[key]; ok {
		if sl.timer != nil {
			sl.timer.Stop()
			sl.timer = nil
		}
		sl.gen++
	}
}

// Pending returns the number of keys with an armed timer.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sl := range s.slots {
		if sl.timer != nil {
			n++
		}
	}
	return n
}

// fire runs the flush callback if this timer still owns the slot's current
// generation. The timer is disarmed before the callback executes, so a
// Reschedule arriving during the callback arms a fresh timer instead of
// being mistaken for a duplicate.
func (s *Scheduler) fire(key int64, gen uint64, fn Flush) {
	s.mu.Lock()
	sl, ok := s.slots[key]
	if !ok || sl.gen != gen {
		s.mu.Unlock()
		return // superseded by a newer schedule
	}
	sl.timer = nil
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	if err := s.sem.Acquire(s.ctx, 1); err != nil {
		return // shutting down
	}
	defer s.sem.Release(1)

	if err := s.run(fn); err != nil {
		slog.Error("flush failed", "key", key, "error", err)
		if s.notify != nil {
			s.notify(key)
		}
	}
}

// run invokes the callback, converting a panic into an error so a bad flush
// never kills the timer goroutine.
func (s *Scheduler) run(fn Flush) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("flush panicked: %v", r)
		}
	}()
	return fn(s.ctx)
}

// Stop cancels the scheduler context, drops all pending timers, and waits
// for in-flight flush callbacks to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.mu.Lock()
	for _, sl := range s.slots {
		if sl.timer != nil {
			sl.timer.Stop()
			sl.timer = nil
		}
		sl.gen++
	}
	s.mu.Unlock()
	s.wg.Wait()
}
