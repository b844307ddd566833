// Package panel runs the fetch-render cycle that keeps a view in sync with
// the remote user list.
//
// A cycle moves Idle -> Loading -> {Success, Failure} -> Idle. Only one cycle
// runs at a time; a trigger that arrives while Loading is ignored. There is no
// automatic retry and an in-flight cycle cannot be cancelled.
package panel

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Sid16p/Task-7---Fetch-API/internal/users"
)

// View is the render surface a DataPanel drives.
type View interface {
	// SetBusy toggles the loading indicator and the trigger control.
	SetBusy(busy bool)
	ClearRecords()
	ShowRecords(records []users.UserRecord)
	ShowCount(n int)
	// ShowError displays msg in place of the records and hides the count.
	ShowError(msg string)
	HideError()
}

// State is a snapshot of the panel. Records is empty whenever Loading is
// true or LastError is set.
type State struct {
	Loading   bool               `json:"loading"`
	LastError string             `json:"lastError,omitempty"`
	Records   []users.UserRecord `json:"records"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty"`
}

type DataPanel struct {
	fetcher users.Fetcher
	view    View
	logger  *slog.Logger

	loading atomic.Bool

	mu    sync.RWMutex
	state State
}

func New(fetcher users.Fetcher, view View, logger *slog.Logger) *DataPanel {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataPanel{
		fetcher: fetcher,
		view:    view,
		logger:  logger,
	}
}

// FetchAll runs one fetch-render cycle and reports whether it ran. It
// returns false without touching state or the view when a cycle is
// already in flight. Failures are shown on the view, never returned.
func (p *DataPanel) FetchAll(ctx context.Context) bool {
	if !p.loading.CompareAndSwap(false, true) {
		p.logger.Debug("Fetch ignored, cycle in flight")
		return false
	}

	cycle := uuid.NewString()
	start := time.Now()
	logger := p.logger.With("cycle", cycle)

	p.begin()
	defer p.finish()

	logger.Info("Fetching users")

	records, err := p.fetcher.FetchAll(ctx)
	if err != nil {
		logger.Error("Error fetching users", "error", err, "duration", time.Since(start))
		p.fail(err.Error())
		return true
	}

	p.succeed(records)
	logger.Info("Users loaded", "count", len(records), "duration", time.Since(start))
	return true
}

func (p *DataPanel) begin() {
	p.mu.Lock()
	p.state = State{Loading: true}
	p.mu.Unlock()

	p.view.HideError()
	p.view.ClearRecords()
	p.view.SetBusy(true)
}

func (p *DataPanel) succeed(records []users.UserRecord) {
	p.mu.Lock()
	p.state.Records = slices.Clone(records)
	p.state.UpdatedAt = time.Now()
	p.mu.Unlock()

	p.view.ShowRecords(records)
	p.view.ShowCount(len(records))
}

func (p *DataPanel) fail(msg string) {
	p.mu.Lock()
	p.state.Records = nil
	p.state.LastError = msg
	p.state.UpdatedAt = time.Now()
	p.mu.Unlock()

	p.view.ShowError(msg)
}

func (p *DataPanel) finish() {
	p.mu.Lock()
	p.state.Loading = false
	p.mu.Unlock()

	p.view.SetBusy(false)
	p.loading.Store(false)
}

// Loading reports whether a cycle is in flight.
func (p *DataPanel) Loading() bool {
	return p.loading.Load()
}

func (p *DataPanel) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := p.state
	s.Records = slices.Clone(p.state.Records)
	return s
}
