package assets_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/avahl/go-cellmd/internal/assets"
)

// ---------------------------------------------------------------------------
// TestLoadStyle - Embedded theme stylesheets
// ---------------------------------------------------------------------------

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		style        string
		wantContains []string
		wantErr      error
	}{
		{
			name:         "light theme exists",
			style:        "light",
			wantContains: []string{".cellmd-panel", ".cellmd-diagram", ".chroma"},
		},
		{
			name:         "dark theme exists",
			style:        "dark",
			wantContains: []string{".cellmd-panel", ".cellmd-diagram", ".chroma"},
		},
		{
			name:    "unknown style",
			style:   "sepia",
			wantErr: assets.ErrStyleNotFound,
		},
		{
			name:    "empty name",
			style:   "",
			wantErr: assets.ErrStyleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			css, err := assets.LoadStyle(tt.style)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.style, err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(css, want) {
					t.Errorf("style %q missing %q", tt.style, want)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadTemplate - Embedded panel template
// ---------------------------------------------------------------------------

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	tmpl, err := assets.LoadTemplate("panel")
	if err != nil {
		t.Fatalf("LoadTemplate(panel) error = %v", err)
	}

	// node.dataset.theme: the hydration script must honor each
	// container's own theme attribute, not only the document theme.
	for _, want := range []string{"{{.CSS}}", "{{.Body}}", "cellmd-toolbar", "pre.mermaid", "node.dataset.theme"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("panel template missing %q", want)
		}
	}
}

func TestLoadTemplate_NotFound(t *testing.T) {
	t.Parallel()

	if _, err := assets.LoadTemplate("missing"); !errors.Is(err, assets.ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(missing) error = %v, want ErrTemplateNotFound", err)
	}
}
