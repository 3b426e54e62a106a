package host

import (
	"context"
	"errors"
	"testing"

	cellmd "github.com/avahl/go-cellmd"
)

// newScriptedBridge builds a bridge with one table, field and cell.
func newScriptedBridge() *MemoryBridge {
	b := NewMemoryBridge()
	b.SetTable("tbl1", "Tasks")
	b.SetField("tbl1", Field{ID: "fld1", Name: "Notes", Type: FieldTypeText})
	b.SetCellValue("tbl1", "fld1", "rec1", []byte(`"# hello"`))
	return b
}

// ---------------------------------------------------------------------------
// TestMemoryBridge_Selection
// ---------------------------------------------------------------------------

func TestMemoryBridge_Selection(t *testing.T) {
	t.Parallel()

	b := newScriptedBridge()
	ctx := context.Background()

	// No selection yet.
	if _, err := b.Selection(ctx); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Selection() error = %v, want ErrNoSelection", err)
	}

	sel := Selection{TableID: "tbl1", FieldID: "fld1", RecordID: "rec1"}
	b.Select(sel)

	got, err := b.Selection(ctx)
	if err != nil {
		t.Fatalf("Selection() error = %v", err)
	}
	if got != sel {
		t.Errorf("Selection() = %+v, want %+v", got, sel)
	}

	b.ClearSelection()
	if _, err := b.Selection(ctx); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Selection() after clear error = %v, want ErrNoSelection", err)
	}
}

// ---------------------------------------------------------------------------
// TestMemoryBridge_Lookups
// ---------------------------------------------------------------------------

func TestMemoryBridge_Lookups(t *testing.T) {
	t.Parallel()

	b := newScriptedBridge()
	ctx := context.Background()

	name, err := b.TableName(ctx, "tbl1")
	if err != nil || name != "Tasks" {
		t.Errorf("TableName() = %q, %v; want Tasks, nil", name, err)
	}
	if _, err := b.TableName(ctx, "nope"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("TableName(nope) error = %v, want ErrUnknownTable", err)
	}

	f, err := b.Field(ctx, "tbl1", "fld1")
	if err != nil || f.Name != "Notes" || f.Type != FieldTypeText {
		t.Errorf("Field() = %+v, %v", f, err)
	}
	if _, err := b.Field(ctx, "tbl1", "nope"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Field(nope) error = %v, want ErrUnknownField", err)
	}

	raw, err := b.CellValue(ctx, "tbl1", "fld1", "rec1")
	if err != nil || string(raw) != `"# hello"` {
		t.Errorf("CellValue() = %s, %v", raw, err)
	}
	if _, err := b.CellValue(ctx, "tbl1", "fld1", "nope"); !errors.Is(err, ErrUnknownRecord) {
		t.Errorf("CellValue(nope) error = %v, want ErrUnknownRecord", err)
	}
}

// ---------------------------------------------------------------------------
// TestMemoryBridge_Events - Mutators emit, closed bridge stays silent
// ---------------------------------------------------------------------------

func TestMemoryBridge_Events(t *testing.T) {
	t.Parallel()

	b := newScriptedBridge()

	b.Select(Selection{TableID: "tbl1", FieldID: "fld1", RecordID: "rec1"})
	ev := <-b.Events()
	if ev.Kind != EventSelectionChanged {
		t.Errorf("event kind = %v, want EventSelectionChanged", ev.Kind)
	}

	b.SetTheme(cellmd.ThemeDark)
	ev = <-b.Events()
	if ev.Kind != EventThemeChanged {
		t.Errorf("event kind = %v, want EventThemeChanged", ev.Kind)
	}

	theme, err := b.Theme(context.Background())
	if err != nil || theme != cellmd.ThemeDark {
		t.Errorf("Theme() = %q, %v; want dark", theme, err)
	}

	b.Close()
	if _, ok := <-b.Events(); ok {
		t.Error("events channel should be closed")
	}

	// Mutating a closed bridge must not panic.
	b.SetTheme(cellmd.ThemeLight)
	b.Close()
}

// ---------------------------------------------------------------------------
// TestMemoryBridge_EventOverflow - Full buffer drops, never blocks
// ---------------------------------------------------------------------------

func TestMemoryBridge_EventOverflow(t *testing.T) {
	t.Parallel()

	b := newScriptedBridge()
	defer b.Close()

	// Emit far more events than the buffer holds with no consumer.
	for i := 0; i < eventBuffer*3; i++ {
		b.Select(Selection{TableID: "tbl1", FieldID: "fld1", RecordID: "rec1"})
	}

	// Drain what was kept; must be at most the buffer size.
	drained := 0
	for {
		select {
		case <-b.Events():
			drained++
			continue
		default:
		}
		break
	}
	if drained == 0 || drained > eventBuffer {
		t.Errorf("drained %d events, want between 1 and %d", drained, eventBuffer)
	}
}
