package host

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	cellmd "github.com/avahl/go-cellmd"
)

// Fixed identifiers the file bridge reports for its single virtual
// cell.
const (
	fileBridgeTableID   = "tblPreview"
	fileBridgeFieldID   = "fldPreview"
	fileBridgeRecordID  = "recPreview"
	fileBridgeTableName = "Preview"
)

// FileBridge adapts a single file on disk into a Bridge: the file's
// content is the selected cell's text, and every write to the file
// emits a selection-changed event. It stands in for a live host during
// plugin development.
type FileBridge struct {
	mu      sync.Mutex
	path    string
	theme   cellmd.Theme
	watcher *fsnotify.Watcher
	events  chan Event
	done    chan struct{}
	closed  bool
}

// Compile-time interface check
var _ Bridge = (*FileBridge)(nil)

// FileBridgeOption configures a FileBridge.
type FileBridgeOption func(*FileBridge)

// WithFileTheme sets the reported host theme (default light).
func WithFileTheme(theme cellmd.Theme) FileBridgeOption {
	return func(b *FileBridge) {
		b.theme = theme
	}
}

// NewFileBridge watches path and serves its content as the selected
// cell. The parent directory is watched rather than the file itself so
// editors that replace the file on save keep emitting events.
func NewFileBridge(path string, opts ...FileBridgeOption) (*FileBridge, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("watch target: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	b := &FileBridge{
		path:    abs,
		theme:   cellmd.ThemeLight,
		watcher: watcher,
		events:  make(chan Event, eventBuffer),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}

	go b.loop()
	return b, nil
}

// loop forwards relevant filesystem events as selection changes.
func (b *FileBridge) loop() {
	for {
		select {
		case <-b.done:
			return
		case ev, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != b.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				b.emit(Event{Kind: EventSelectionChanged})
			}
		case _, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient here; the next write still
			// triggers a re-fetch.
		}
	}
}

// emit sends without blocking (same contract as MemoryBridge).
func (b *FileBridge) emit(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.events <- ev:
	default:
	}
}

// SetTheme changes the reported theme and emits a theme-changed event.
func (b *FileBridge) SetTheme(theme cellmd.Theme) {
	b.mu.Lock()
	b.theme = theme
	b.mu.Unlock()
	b.emit(Event{Kind: EventThemeChanged})
}

// Close stops the watcher and closes the event stream.
func (b *FileBridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	close(b.done)
	err := b.watcher.Close()
	close(b.events)
	return err
}

// Selection implements Bridge. The file bridge always has its single
// virtual cell selected.
func (b *FileBridge) Selection(_ context.Context) (Selection, error) {
	return Selection{
		TableID:  fileBridgeTableID,
		FieldID:  fileBridgeFieldID,
		RecordID: fileBridgeRecordID,
	}, nil
}

// TableName implements Bridge.
func (b *FileBridge) TableName(_ context.Context, tableID string) (string, error) {
	if tableID != fileBridgeTableID {
		return "", ErrUnknownTable
	}
	return fileBridgeTableName, nil
}

// Field implements Bridge. The virtual field is named after the watched
// file and typed as a text field.
func (b *FileBridge) Field(_ context.Context, tableID, fieldID string) (Field, error) {
	if tableID != fileBridgeTableID || fieldID != fileBridgeFieldID {
		return Field{}, ErrUnknownField
	}
	name := filepath.Base(b.path)
	return Field{ID: fileBridgeFieldID, Name: name, Type: FieldTypeText}, nil
}

// CellValue implements Bridge: the file content as a host text value.
func (b *FileBridge) CellValue(_ context.Context, tableID, fieldID, recordID string) ([]byte, error) {
	if tableID != fileBridgeTableID || fieldID != fileBridgeFieldID || recordID != fileBridgeRecordID {
		return nil, ErrUnknownRecord
	}
	content, err := os.ReadFile(b.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", b.path, err)
	}
	return json.Marshal(string(content))
}

// Theme implements Bridge.
func (b *FileBridge) Theme(_ context.Context) (cellmd.Theme, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.theme, nil
}

// Events implements Bridge.
func (b *FileBridge) Events() <-chan Event {
	return b.events
}
