// Package watch runs the fetch-on-selection-change flow: it subscribes
// to host bridge events and turns each one into a panel state update.
package watch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	cellmd "github.com/avahl/go-cellmd"
	"github.com/avahl/go-cellmd/internal/host"
)

// ErrFetchFailed wraps host call failures during a fetch flow. The
// panel surfaces it as a retryable message; there is no automatic
// retry.
var ErrFetchFailed = errors.New("failed to fetch cell content")

// State describes what the panel should display.
type State int

// Panel states. Empty is not an error: it prompts for a selection.
const (
	StateLoading State = iota
	StateEmpty
	StateReady
	StateUnsupportedField
	StateFetchFailed
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	case StateUnsupportedField:
		return "unsupported-field"
	case StateFetchFailed:
		return "fetch-failed"
	default:
		return "unknown"
	}
}

// Update is one panel state transition. Snapshot is populated for
// StateReady, and partially (metadata, no content) for
// StateUnsupportedField. Err is set for StateFetchFailed.
type Update struct {
	State      State
	Snapshot   cellmd.Snapshot
	Theme      cellmd.Theme
	Err        error
	Generation uint64
}

// defaultFetchTimeout bounds a single fetch flow so a hung host call
// cannot stall the loading indicator forever.
const defaultFetchTimeout = 15 * time.Second

// Option configures a Watcher.
type Option func(*Watcher)

// WithFetchTimeout sets the per-flow timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(w *Watcher) {
		w.timeout = d
	}
}

// Watcher subscribes to bridge events and publishes panel updates.
//
// Rapid successive events each start a fresh fetch flow without
// cancelling older ones; every flow carries a generation number and a
// completed flow is applied only if its generation is still the newest,
// so an old fetch resolving late can never overwrite newer data.
type Watcher struct {
	bridge  host.Bridge
	timeout time.Duration
	updates chan Update

	mu      sync.Mutex
	gen     uint64 // last started flow
	applied uint64 // last published flow
}

// New creates a Watcher for the given bridge.
func New(bridge host.Bridge, opts ...Option) *Watcher {
	w := &Watcher{
		bridge:  bridge,
		timeout: defaultFetchTimeout,
		updates: make(chan Update, 16),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Updates returns the panel state stream. The channel is closed when
// Run returns.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Run fetches the initial state, then services bridge events until the
// context is cancelled or the bridge closes its event stream. Each
// event starts one flow; there is deliberately no debounce.
//
// The updates channel closes only after every in-flight flow has
// returned, so a fetch resolving after shutdown can never publish into
// a closed channel.
func (w *Watcher) Run(ctx context.Context) {
	var wg sync.WaitGroup
	defer func() {
		wg.Wait()
		close(w.updates)
	}()

	w.startFlow(ctx, &wg)

	events := w.bridge.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			w.startFlow(ctx, &wg)
		}
	}
}

// startFlow claims a generation and runs one fetch flow, tracked so Run
// can drain in-flight flows before closing the update stream.
func (w *Watcher) startFlow(ctx context.Context, wg *sync.WaitGroup) {
	gen := w.nextGeneration()
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.fetch(ctx, gen)
	}()
}

// nextGeneration claims a generation number for a new flow.
func (w *Watcher) nextGeneration() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	return w.gen
}

// fetch runs one strictly sequential flow:
// theme → selection → table → field → value.
func (w *Watcher) fetch(ctx context.Context, gen uint64) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	w.publish(Update{State: StateLoading, Generation: gen})

	theme, err := w.bridge.Theme(ctx)
	if err != nil {
		w.publish(Update{State: StateFetchFailed, Err: w.wrapFetch(err), Generation: gen})
		return
	}

	sel, err := w.bridge.Selection(ctx)
	if errors.Is(err, host.ErrNoSelection) {
		w.publish(Update{State: StateEmpty, Theme: theme, Generation: gen})
		return
	}
	if err != nil {
		w.publish(Update{State: StateFetchFailed, Theme: theme, Err: w.wrapFetch(err), Generation: gen})
		return
	}

	tableName, err := w.bridge.TableName(ctx, sel.TableID)
	if err != nil {
		w.publish(Update{State: StateFetchFailed, Theme: theme, Err: w.wrapFetch(err), Generation: gen})
		return
	}

	field, err := w.bridge.Field(ctx, sel.TableID, sel.FieldID)
	if err != nil {
		w.publish(Update{State: StateFetchFailed, Theme: theme, Err: w.wrapFetch(err), Generation: gen})
		return
	}

	snap := cellmd.Snapshot{
		TableID:   sel.TableID,
		TableName: tableName,
		FieldID:   field.ID,
		FieldName: field.Name,
		RecordID:  sel.RecordID,
		FieldType: field.Type.ToFieldType(),
	}

	if !snap.FieldType.Renderable() {
		w.publish(Update{State: StateUnsupportedField, Snapshot: snap, Theme: theme, Generation: gen})
		return
	}

	raw, err := w.bridge.CellValue(ctx, sel.TableID, sel.FieldID, sel.RecordID)
	if err != nil {
		w.publish(Update{State: StateFetchFailed, Theme: theme, Err: w.wrapFetch(err), Generation: gen})
		return
	}

	content, err := host.DecodeCellValue(field.Type, raw)
	if err != nil {
		w.publish(Update{State: StateFetchFailed, Theme: theme, Err: w.wrapFetch(err), Generation: gen})
		return
	}
	snap.Content = content

	w.publish(Update{State: StateReady, Snapshot: snap, Theme: theme, Generation: gen})
}

// wrapFetch tags a bridge error with the fetch-failed sentinel.
func (w *Watcher) wrapFetch(err error) error {
	return fmt.Errorf("%w: %v", ErrFetchFailed, err)
}

// publish delivers an update unless a newer flow has already published.
// Stale results are discarded instead of relying on completion order.
func (w *Watcher) publish(u Update) {
	w.mu.Lock()
	stale := u.Generation < w.applied ||
		(u.Generation < w.gen && u.State != StateLoading)
	if stale {
		w.mu.Unlock()
		return
	}
	w.applied = u.Generation
	w.mu.Unlock()

	// Non-blocking send with drop-oldest: a slow consumer sees the
	// newest state, never a stale backlog.
	for {
		select {
		case w.updates <- u:
			return
		default:
			select {
			case <-w.updates:
			default:
			}
		}
	}
}
