package host

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDecodeCellValue_Text
// ---------------------------------------------------------------------------

func TestDecodeCellValue_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{
			name: "segments concatenated in order",
			raw:  `[{"type":"text","text":"# Title\n"},{"type":"text","text":"body"}]`,
			want: "# Title\nbody",
		},
		{
			name: "mention segments keep their text",
			raw:  `[{"type":"text","text":"ask "},{"type":"mention","text":"@sam"},{"type":"text","text":" today"}]`,
			want: "ask @sam today",
		},
		{
			name: "bare string value",
			raw:  `"plain content"`,
			want: "plain content",
		},
		{
			name: "empty array",
			raw:  `[]`,
			want: "",
		},
		{
			name: "null is an empty cell",
			raw:  `null`,
			want: "",
		},
		{
			name: "empty payload is an empty cell",
			raw:  ``,
			want: "",
		},
		{
			name:    "object is not a text value",
			raw:     `{"foo":1}`,
			wantErr: ErrValueDecode,
		},
		{
			name:    "malformed json",
			raw:     `{not json`,
			wantErr: ErrValueDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeCellValue(FieldTypeText, []byte(tt.raw))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("DecodeCellValue() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeCellValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeCellValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecodeCellValue_URL
// ---------------------------------------------------------------------------

func TestDecodeCellValue_URL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{
			name: "display text preferred",
			raw:  `{"text":"# Doc title","link":"https://example.com"}`,
			want: "# Doc title",
		},
		{
			name: "link fallback when text empty",
			raw:  `{"text":"","link":"https://example.com"}`,
			want: "https://example.com",
		},
		{
			name: "single-element array wrapper",
			raw:  `[{"text":"wrapped","link":"https://example.com"}]`,
			want: "wrapped",
		},
		{
			name: "null is an empty cell",
			raw:  `null`,
			want: "",
		},
		{
			name:    "empty array wrapper",
			raw:     `[]`,
			wantErr: ErrValueDecode,
		},
		{
			name:    "malformed json",
			raw:     `<html>`,
			wantErr: ErrValueDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeCellValue(FieldTypeURL, []byte(tt.raw))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("DecodeCellValue() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeCellValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeCellValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecodeCellValue_UnsupportedCode
// ---------------------------------------------------------------------------

func TestDecodeCellValue_UnsupportedCode(t *testing.T) {
	t.Parallel()

	_, err := DecodeCellValue(FieldTypeCode(99), []byte(`"x"`))
	if !errors.Is(err, ErrValueDecode) {
		t.Errorf("DecodeCellValue() error = %v, want ErrValueDecode", err)
	}
}

// ---------------------------------------------------------------------------
// TestFieldTypeCode_ToFieldType
// ---------------------------------------------------------------------------

func TestFieldTypeCode_ToFieldType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code FieldTypeCode
		want string
	}{
		{FieldTypeText, "text"},
		{FieldTypeURL, "url"},
		{FieldTypeCode(3), "unsupported"},
		{FieldTypeCode(0), "unsupported"},
	}

	for _, tt := range tests {
		if got := string(tt.code.ToFieldType()); got != tt.want {
			t.Errorf("FieldTypeCode(%d).ToFieldType() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
