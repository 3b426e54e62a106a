package cellmd

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestFieldType_Renderable
// ---------------------------------------------------------------------------

func TestFieldType_Renderable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fieldType FieldType
		want      bool
	}{
		{FieldText, true},
		{FieldURL, true},
		{FieldUnsupported, false},
		{FieldType(""), false},
		{FieldType("attachment"), false},
	}

	for _, tt := range tests {
		if got := tt.fieldType.Renderable(); got != tt.want {
			t.Errorf("FieldType(%q).Renderable() = %v, want %v", tt.fieldType, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestTheme_Validate
// ---------------------------------------------------------------------------

func TestTheme_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		theme   Theme
		wantErr error
	}{
		{ThemeLight, nil},
		{ThemeDark, nil},
		{Theme(""), nil},
		{Theme("sepia"), ErrInvalidTheme},
		{Theme("LIGHT"), ErrInvalidTheme},
	}

	for _, tt := range tests {
		if err := tt.theme.Validate(); !errors.Is(err, tt.wantErr) {
			t.Errorf("Theme(%q).Validate() = %v, want %v", tt.theme, err, tt.wantErr)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFontSize - Buckets, pixels and validation
// ---------------------------------------------------------------------------

func TestFontSize_Pixels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size FontSize
		want int
	}{
		{FontSmall, 12},
		{FontMedium, 14},
		{FontLarge, 16},
		{FontXLarge, 20},
		{FontSize(""), 14},
		{FontSize("bogus"), 14},
	}

	for _, tt := range tests {
		if got := tt.size.Pixels(); got != tt.want {
			t.Errorf("FontSize(%q).Pixels() = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestFontSize_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size    FontSize
		wantErr error
	}{
		{FontSmall, nil},
		{FontMedium, nil},
		{FontLarge, nil},
		{FontXLarge, nil},
		{FontSize(""), nil},
		{FontSize("huge"), ErrInvalidFontSize},
		{FontSize("SMALL"), ErrInvalidFontSize},
	}

	for _, tt := range tests {
		if err := tt.size.Validate(); !errors.Is(err, tt.wantErr) {
			t.Errorf("FontSize(%q).Validate() = %v, want %v", tt.size, err, tt.wantErr)
		}
	}
}
