package cellmd

import (
	"fmt"
	"time"
)

// FieldType identifies the kind of field a snapshot was taken from.
// Only text and URL fields carry renderable content; everything else is
// reported as an unsupported-field error state.
type FieldType string

// Field type constants.
const (
	FieldText        FieldType = "text"
	FieldURL         FieldType = "url"
	FieldUnsupported FieldType = "unsupported"
)

// Renderable reports whether the field type carries content the panel
// can display.
func (f FieldType) Renderable() bool {
	return f == FieldText || f == FieldURL
}

// Theme selects the panel color scheme. It mirrors the host theme and
// is never owned independently.
type Theme string

// Theme constants.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Validate checks that the theme is a known value.
// The zero value is valid (means use the default).
func (t Theme) Validate() error {
	switch t {
	case "", ThemeLight, ThemeDark:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidTheme, string(t))
}

// FontSize is one of four fixed panel font buckets.
type FontSize string

// Font size buckets.
const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
	FontXLarge FontSize = "xlarge"
)

// fontSizePixels maps each bucket to its fixed pixel value.
var fontSizePixels = map[FontSize]int{
	FontSmall:  12,
	FontMedium: 14,
	FontLarge:  16,
	FontXLarge: 20,
}

// Pixels returns the fixed pixel value for the bucket.
// Unknown buckets resolve to the medium default.
func (f FontSize) Pixels() int {
	if px, ok := fontSizePixels[f]; ok {
		return px
	}
	return fontSizePixels[FontMedium]
}

// Validate checks that the font size is a known bucket.
// The zero value is valid (means use the default).
func (f FontSize) Validate() error {
	if f == "" {
		return nil
	}
	if _, ok := fontSizePixels[f]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFontSize, string(f))
	}
	return nil
}

// RenderMode classifies snapshot content. It is derived on every render
// and never stored.
type RenderMode string

// Render modes.
const (
	ModeDiagram  RenderMode = "diagram"
	ModeMarkdown RenderMode = "markdown"
)

// Snapshot captures the currently selected cell. It is immutable and
// fully replaced on every selection or theme change; at most one
// snapshot is current at any time (enforced by the watcher).
type Snapshot struct {
	TableID   string
	TableName string
	FieldID   string
	FieldName string
	RecordID  string
	Content   string
	FieldType FieldType
}

// Input contains render parameters for a single pipeline run.
type Input struct {
	Snapshot Snapshot
	Theme    Theme    // zero value = ThemeLight
	FontSize FontSize // zero value = FontMedium
}

// RenderResult is the output of one pipeline run.
type RenderResult struct {
	Mode     RenderMode
	Body     string // sanitized HTML fragment
	Document string // complete panel HTML document (theme CSS injected)
	Snapshot Snapshot
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
}

// defaultTimeout bounds image export; rendering itself is synchronous.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the image export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("cellmd: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}
