package host

import (
	"context"
	"sync"

	cellmd "github.com/avahl/go-cellmd"
)

// eventBuffer sizes bridge notification channels. Events carry no
// payload and the watcher re-fetches on each one, so dropping under
// pressure is safe.
const eventBuffer = 16

// MemoryBridge is a scripted in-memory host used by tests and the
// demo harness. Mutators emit the matching bridge events.
type MemoryBridge struct {
	mu        sync.Mutex
	selection *Selection
	tables    map[string]string
	fields    map[string]Field
	values    map[string][]byte
	theme     cellmd.Theme
	events    chan Event
	closed    bool
}

// Compile-time interface check
var _ Bridge = (*MemoryBridge)(nil)

// NewMemoryBridge creates an empty bridge with the light theme and no
// selection.
func NewMemoryBridge() *MemoryBridge {
	return &MemoryBridge{
		tables: make(map[string]string),
		fields: make(map[string]Field),
		values: make(map[string][]byte),
		theme:  cellmd.ThemeLight,
		events: make(chan Event, eventBuffer),
	}
}

// SetTable registers a table name.
func (b *MemoryBridge) SetTable(id, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tables[id] = name
}

// SetField registers field metadata.
func (b *MemoryBridge) SetField(tableID string, f Field) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fields[tableID+"/"+f.ID] = f
}

// SetCellValue stores a raw host value for a cell.
func (b *MemoryBridge) SetCellValue(tableID, fieldID, recordID string, raw []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[tableID+"/"+fieldID+"/"+recordID] = raw
}

// Select sets the current selection and emits a selection-changed
// event.
func (b *MemoryBridge) Select(sel Selection) {
	b.mu.Lock()
	b.selection = &sel
	b.mu.Unlock()
	b.emit(Event{Kind: EventSelectionChanged})
}

// ClearSelection drops the selection and emits a selection-changed
// event.
func (b *MemoryBridge) ClearSelection() {
	b.mu.Lock()
	b.selection = nil
	b.mu.Unlock()
	b.emit(Event{Kind: EventSelectionChanged})
}

// SetTheme switches the host theme and emits a theme-changed event.
func (b *MemoryBridge) SetTheme(theme cellmd.Theme) {
	b.mu.Lock()
	b.theme = theme
	b.mu.Unlock()
	b.emit(Event{Kind: EventThemeChanged})
}

// Close shuts the event stream down. Further mutators are no-ops.
func (b *MemoryBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.events)
	}
}

// emit sends without blocking; a full buffer drops the event, which is
// safe because the watcher re-fetches the full state per event.
func (b *MemoryBridge) emit(ev Event) {
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

// Selection implements Bridge.
func (b *MemoryBridge) Selection(_ context.Context) (Selection, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selection == nil {
		return Selection{}, ErrNoSelection
	}
	return *b.selection, nil
}

// TableName implements Bridge.
func (b *MemoryBridge) TableName(_ context.Context, tableID string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	name, ok := b.tables[tableID]
	if !ok {
		return "", ErrUnknownTable
	}
	return name, nil
}

// Field implements Bridge.
func (b *MemoryBridge) Field(_ context.Context, tableID, fieldID string) (Field, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.fields[tableID+"/"+fieldID]
	if !ok {
		return Field{}, ErrUnknownField
	}
	return f, nil
}

// CellValue implements Bridge.
func (b *MemoryBridge) CellValue(_ context.Context, tableID, fieldID, recordID string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	raw, ok := b.values[tableID+"/"+fieldID+"/"+recordID]
	if !ok {
		return nil, ErrUnknownRecord
	}
	return raw, nil
}

// Theme implements Bridge.
func (b *MemoryBridge) Theme(_ context.Context) (cellmd.Theme, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.theme, nil
}

// Events implements Bridge.
func (b *MemoryBridge) Events() <-chan Event {
	return b.events
}
