package poller

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshot is the outcome of the latest cycle. Dashboard is nil whenever
// Err is set.
type Snapshot struct {
	BoardID   string                 `json:"board_id"`
	State     app.ViewState          `json:"state"`
	Dashboard *app.DashboardResponse `json:"dashboard,omitempty"`
	Err       error                  `json:"-"`
	UpdatedAt time.Time              `json:"updated_at"`
	Cycle     string                 `json:"cycle"`
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithOnUpdate registers fn to receive every new snapshot. fn runs on the
// polling goroutine.
func WithOnUpdate(fn func(Snapshot)) WatcherOption {
	return func(w *Watcher) { w.onUpdate = fn }
}

// WithLogger sets the logger used for cycle reporting.
func WithLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = logger }
}

// Watcher keeps one board's dashboard up to date.
type Watcher struct {
	dashboards service.DashboardService
	logger     *zap.Logger
	onUpdate   func(Snapshot)
	poller     *Poller

	mu      sync.RWMutex
	boardID string
	snap    Snapshot
}

func NewWatcher(dashboards service.DashboardService, boardID string, interval time.Duration, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		dashboards: dashboards,
		boardID:    boardID,
		snap:       Snapshot{BoardID: boardID, State: app.StateLoading},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	w.poller = New(interval, w.cycle, w.logger)
	return w
}

func (w *Watcher) Start(ctx context.Context) error { return w.poller.Start(ctx) }

func (w *Watcher) Stop() { w.poller.Stop() }

// Refresh asks for an immediate cycle.
func (w *Watcher) Refresh() { w.poller.Trigger() }

// SetBoard switches the watched board and refreshes.
func (w *Watcher) SetBoard(boardID string) {
	w.mu.Lock()
	w.boardID = boardID
	w.snap = Snapshot{BoardID: boardID, State: app.StateLoading}
	w.mu.Unlock()
	w.poller.Trigger()
}

func (w *Watcher) BoardID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.boardID
}

func (w *Watcher) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snap
}

func (w *Watcher) cycle(ctx context.Context) error {
	boardID := w.BoardID()
	cycleID := uuid.New().String()

	resp, err := w.dashboards.Calc(ctx, app.NewDashboardRequest(boardID))
	if ctx.Err() != nil {
		return ctx.Err()
	}

	snap := Snapshot{
		BoardID:   boardID,
		State:     app.StateFor(err),
		Dashboard: resp,
		Err:       err,
		UpdatedAt: time.Now().UTC(),
		Cycle:     cycleID,
	}

	w.mu.Lock()
	if w.boardID != boardID {
		// The board changed mid-cycle; the follow-up cycle reports instead.
		w.mu.Unlock()
		return nil
	}
	w.snap = snap
	w.mu.Unlock()

	w.logger.Debug("dashboard cycle",
		zap.String("cycle", cycleID),
		zap.String("board_id", boardID),
		zap.String("state", string(snap.State)),
	)
	if w.onUpdate != nil {
		w.onUpdate(snap)
	}
	return err
}
