package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driven"
	"github.com/custodia-labs/autoprofile/internal/logger"
)

// tickFunc performs one mutation of the profile.
// ctx is cancelled when the loop stops; commit is detached from the stop and
// carries the calls that must finish once the first mutation was issued.
// Both end at the tick timeout.
type tickFunc func(ctx, commit context.Context) error

// periodicLoop is the Stopped/Running state machine behind each profile feature.
// At most one loop goroutine is alive at a time.
type periodicLoop struct {
	feature  domain.Feature
	clock    clockwork.Clock
	observer driven.LoopObserver

	// transition serialises start and stop; stop holds it until the goroutine exits.
	transition sync.Mutex
	running    atomic.Bool
	cancel     context.CancelFunc
	done       chan struct{}

	mu       sync.Mutex
	settings domain.Settings
	status   domain.LoopStatus
}

func newPeriodicLoop(
	feature domain.Feature,
	clock clockwork.Clock,
	observer driven.LoopObserver,
	settings domain.Settings,
) *periodicLoop {
	return &periodicLoop{
		feature:  feature,
		clock:    clock,
		observer: observer,
		settings: settings,
		status:   domain.LoopStatus{Feature: feature, State: domain.LoopStopped},
	}
}

// isRunning reports whether the loop goroutine is alive.
func (l *periodicLoop) isRunning() bool {
	return l.running.Load()
}

// setSettings replaces the settings used from the next iteration on.
func (l *periodicLoop) setSettings(settings domain.Settings) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings = settings
}

func (l *periodicLoop) currentSettings() domain.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

// snapshot returns a copy of the loop status.
func (l *periodicLoop) snapshot() domain.LoopStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// start launches the loop goroutine. The first tick runs immediately.
// Returns domain.ErrAlreadyRunning without spawning anything if the loop is running.
func (l *periodicLoop) start(tick tickFunc) error {
	l.transition.Lock()
	defer l.transition.Unlock()

	if !l.running.CompareAndSwap(false, true) {
		return domain.ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})

	l.mu.Lock()
	l.status = domain.LoopStatus{
		Feature:   l.feature,
		State:     domain.LoopRunning,
		StartedAt: l.clock.Now(),
	}
	l.mu.Unlock()

	logger.Info("%s loop: started", l.feature)
	l.observer.LoopStarted(l.feature)

	go l.run(ctx, tick, l.done)
	return nil
}

// stop cancels the loop and blocks until its goroutine has exited.
// A tick still waiting for its first mutation is abandoned; one past it finishes first.
// Returns domain.ErrNotRunning if the loop is not running.
func (l *periodicLoop) stop() error {
	l.transition.Lock()
	defer l.transition.Unlock()

	if !l.running.Load() {
		return domain.ErrNotRunning
	}

	l.cancel()
	<-l.done

	l.mu.Lock()
	l.status.State = domain.LoopStopped
	l.mu.Unlock()

	l.running.Store(false)
	logger.Info("%s loop: stopped", l.feature)
	l.observer.LoopStopped(l.feature)

	return nil
}

// run is the loop body: tick, then wait for the interval or the retry backoff.
func (l *periodicLoop) run(ctx context.Context, tick tickFunc, done chan struct{}) {
	defer close(done)

	for {
		if ctx.Err() != nil {
			return
		}

		wait := l.runTick(ctx, tick)

		select {
		case <-ctx.Done():
			return
		case <-l.clock.After(wait):
		}
	}
}

// runTick executes one tick and returns how long to wait before the next.
func (l *periodicLoop) runTick(ctx context.Context, tick tickFunc) time.Duration {
	settings := l.currentSettings()

	tickCtx, cancel := context.WithTimeout(ctx, settings.TickTimeout)
	defer cancel()
	commit, cancelCommit := context.WithTimeout(context.WithoutCancel(ctx), settings.TickTimeout)
	defer cancelCommit()

	started := l.clock.Now()
	err := safeTick(tickCtx, commit, tick)
	finished := l.clock.Now()

	if err != nil && ctx.Err() != nil && errors.Is(err, context.Canceled) {
		logger.Debug("%s loop: tick abandoned on stop", l.feature)
		return 0
	}

	l.mu.Lock()
	l.status.LastTick = finished
	if err != nil {
		l.status.Failures++
		l.status.LastError = err.Error()
	} else {
		l.status.Ticks++
	}
	l.mu.Unlock()

	if err != nil {
		logger.Error("%s loop: %v (retrying in %s)", l.feature, err, settings.RetryBackoff)
		l.observer.TickFailed(l.feature, err)
		return settings.RetryBackoff
	}

	logger.Debug("%s loop: tick took %s", l.feature, finished.Sub(started))
	l.observer.TickSucceeded(l.feature, finished.Sub(started))
	return settings.Interval(l.feature)
}

// safeTick converts a panicking tick into an error so the loop keeps running.
func safeTick(ctx, commit context.Context, tick tickFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", domain.ErrTransientMutation, r)
		}
	}()
	return tick(ctx, commit)
}
