// Package poller runs a task on a fixed interval with on-demand refreshes.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrRunning is returned by Start on a poller that is already running.
var ErrRunning = errors.New("poller already running")

// Task is one polling cycle.
type Task func(ctx context.Context) error

// Poller runs Task immediately on Start and then every interval. Trigger
// cancels the pending wait, runs a cycle at once and schedules the next one
// a full interval later. Cycles never overlap. A failed cycle is not retried
// before the next scheduled one.
type Poller struct {
	interval time.Duration
	task     Task
	logger   *zap.Logger
	trigger  chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(interval time.Duration, task Task, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		interval: interval,
		task:     task,
		logger:   logger.Named("poller"),
		trigger:  make(chan struct{}, 1),
	}
}

func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return ErrRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
	return nil
}

// Trigger requests an immediate cycle. Requests made while a cycle is running
// collapse into one follow-up cycle.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Stop cancels the running cycle, if any, and waits for the loop to exit.
// Stopping a stopped poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		case <-p.trigger:
			timer.Stop()
		}

		start := time.Now()
		if err := p.task(ctx); err != nil && ctx.Err() == nil {
			p.logger.Warn("cycle failed", zap.Error(err), zap.Duration("took", time.Since(start)))
		} else {
			p.logger.Debug("cycle finished", zap.Duration("took", time.Since(start)))
		}

		timer.Reset(p.interval)
	}
}
