// Package host defines the bridge to the embedding spreadsheet
// application: selection, field metadata, cell values and theme. The
// panel consumes a Bridge; implementations adapt a live host or, for
// development and tests, an in-memory or file-backed stand-in.
package host

import (
	"context"
	"errors"

	cellmd "github.com/avahl/go-cellmd"
)

// Sentinel errors for bridge operations.
var (
	ErrNoSelection   = errors.New("no cell selected")
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownField  = errors.New("unknown field")
	ErrUnknownRecord = errors.New("unknown record")
	ErrValueDecode   = errors.New("cannot decode cell value")
)

// FieldTypeCode is the host's numeric field type identifier. Only the
// text and URL codes yield renderable content.
type FieldTypeCode int

// Field type codes used by the host.
const (
	FieldTypeText FieldTypeCode = 1
	FieldTypeURL  FieldTypeCode = 15
)

// ToFieldType maps a host code onto the panel's field taxonomy.
func (c FieldTypeCode) ToFieldType() cellmd.FieldType {
	switch c {
	case FieldTypeText:
		return cellmd.FieldText
	case FieldTypeURL:
		return cellmd.FieldURL
	default:
		return cellmd.FieldUnsupported
	}
}

// Selection identifies the currently selected cell.
type Selection struct {
	TableID  string
	FieldID  string
	RecordID string
}

// Field is the host's field metadata.
type Field struct {
	ID   string
	Name string
	Type FieldTypeCode
}

// EventKind discriminates bridge notifications.
type EventKind int

// Bridge event kinds.
const (
	EventSelectionChanged EventKind = iota
	EventThemeChanged
)

// Event is a host notification. Events carry no payload: the watcher
// re-fetches the full state so a missed event never leaves stale data
// on screen.
type Event struct {
	Kind EventKind
}

// Bridge is the consumed host surface. All calls are asynchronous host
// invocations and take a context; implementations must be safe for use
// from a single watcher goroutine while events arrive concurrently.
type Bridge interface {
	// Selection returns the current cell selection, or ErrNoSelection.
	Selection(ctx context.Context) (Selection, error)

	// TableName resolves a table id to its display name.
	TableName(ctx context.Context, tableID string) (string, error)

	// Field resolves a field id to its metadata.
	Field(ctx context.Context, tableID, fieldID string) (Field, error)

	// CellValue returns the raw cell value as host JSON; decode it with
	// DecodeCellValue using the field's type code.
	CellValue(ctx context.Context, tableID, fieldID, recordID string) ([]byte, error)

	// Theme returns the host's current color scheme.
	Theme(ctx context.Context) (cellmd.Theme, error)

	// Events returns the notification stream. The channel is closed
	// when the bridge shuts down.
	Events() <-chan Event
}
