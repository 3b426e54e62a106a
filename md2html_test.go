package cellmd

// Notes:
// - The goldmark conversion error branch in ToHTML is not tested because
//   goldmark does not fail on any valid UTF-8 input we can construct.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - Markdown feature rendering
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		content      string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "basic heading and paragraph",
			content:      "# Title\n\nSome text.",
			wantContains: []string{"<h1", "Title</h1>", "<p>Some text.</p>"},
		},
		{
			name:         "gfm table",
			content:      "| A | B |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<th>A</th>", "<td>1</td>"},
		},
		{
			name:         "gfm strikethrough",
			content:      "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
		{
			name:         "gfm task list",
			content:      "- [x] done\n- [ ] todo",
			wantContains: []string{`type="checkbox"`, "checked"},
		},
		{
			name:         "mermaid fence becomes hydration container",
			content:      "```mermaid\ngraph TD\nA-->B\n```",
			wantContains: []string{`<pre class="mermaid">`, "graph TD"},
			wantNot:      []string{"<code class=\"language-mermaid\">"},
		},
		{
			name:         "code fence gets highlight classes",
			content:      "```go\nfunc main() {}\n```",
			wantContains: []string{"chroma", "<span"},
		},
		{
			name:         "inline math",
			content:      "Euler: $e^{i\\pi}+1=0$",
			wantContains: []string{"math"},
		},
		{
			name:    "emoji shortcode is substituted",
			content: "ship it :rocket:",
			wantNot: []string{":rocket:"},
		},
		{
			name:         "footnote",
			content:      "text[^1]\n\n[^1]: the note",
			wantContains: []string{"fn:1", "the note"},
		},
		{
			name:         "autolink",
			content:      "see https://example.com/docs",
			wantContains: []string{`<a href="https://example.com/docs"`},
		},
		{
			name:         "hard wrap renders br",
			content:      "line one\nline two",
			wantContains: []string{"<br"},
		},
		{
			name:         "raw html is dropped",
			content:      "before <script>alert(1)</script> after",
			wantNot:      []string{"<script>", "alert(1)"},
		},
		{
			name:         "event handler attribute stripped",
			content:      `<img src="x" onerror="alert(1)">`,
			wantNot:      []string{"onerror"},
		},
		{
			name:         "javascript url stripped",
			content:      "[click](javascript:alert(1))",
			wantNot:      []string{"javascript:"},
		},
		{
			name:         "heading gets anchor id",
			content:      "## Install Guide",
			wantContains: []string{`id="install-guide"`},
		},
	}

	conv := newGoldmarkConverter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.content)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\noutput: %s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("output should not contain %q\noutput: %s", not, got)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ContextCancellation
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ContextCancellation(t *testing.T) {
	t.Parallel()

	conv := newGoldmarkConverter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.ToHTML(ctx, "# Title")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestGoldmarkConverter_ExpiredDeadline(t *testing.T) {
	t.Parallel()

	conv := newGoldmarkConverter()

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := conv.ToHTML(ctx, "# Title")
	if err == nil {
		t.Fatal("expected error for expired deadline")
	}
}

// ---------------------------------------------------------------------------
// TestPanelSanitizer - Required attributes survive sanitization
// ---------------------------------------------------------------------------

func TestPanelSanitizer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "mermaid container attributes survive",
			input:        `<div class="cellmd-diagram" id="cellmd-diagram-rec1-1"><pre class="mermaid" data-theme="dark">graph TD</pre></div>`,
			wantContains: []string{`class="cellmd-diagram"`, `id="cellmd-diagram-rec1-1"`, `data-theme="dark"`},
		},
		{
			name:         "chroma span classes survive",
			input:        `<pre class="chroma"><span class="kd">func</span></pre>`,
			wantContains: []string{`class="chroma"`, `class="kd"`},
		},
		{
			name:         "heading id survives",
			input:        `<h2 id="install-guide">Install Guide</h2>`,
			wantContains: []string{`id="install-guide"`},
		},
		{
			name:    "script is removed",
			input:   `<div>ok</div><script>alert(1)</script>`,
			wantNot: []string{"script", "alert"},
		},
		{
			name:    "style attribute is removed",
			input:   `<p style="color:red">x</p>`,
			wantNot: []string{"style="},
		},
	}

	p := newPanelSanitizer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.Sanitize(tt.input)

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("sanitized output missing %q\noutput: %s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("sanitized output should not contain %q\noutput: %s", not, got)
				}
			}
		})
	}
}
