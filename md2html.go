package cellmd

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/mermaid"
)

// markdownConverter abstracts Markdown to HTML conversion.
type markdownConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// goldmarkConverter converts Markdown to a sanitized HTML fragment
// using goldmark (pure Go). Fenced code blocks tagged "mermaid" become
// diagram hydration containers instead of plain code; all other fences
// get chroma highlighting classes.
type goldmarkConverter struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// newGoldmarkConverter creates a goldmarkConverter with GFM, footnote,
// math, emoji, diagram and highlighting extensions.
func newGoldmarkConverter() *goldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			// Diagram fences become <pre class="mermaid"> for client-side
			// hydration; the panel template loads the diagram engine itself.
			&mermaid.Extender{
				RenderMode: mermaid.RenderModeClient,
				NoScript:   true,
			},
			mathjax.MathJax, // $inline$ and $$display$$ math
			emoji.Emoji,     // :shortcode: emoji
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes so the theme stylesheet controls colors
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithXHTML(),     // Self-closing tags
			// Note: WithUnsafe() intentionally NOT used; raw HTML in cell
			// content is dropped and the output is sanitized on top.
		),
	)
	return &goldmarkConverter{md: md, sanitizer: newPanelSanitizer()}
}

// newPanelSanitizer builds a policy that keeps the classes the
// highlighter, diagram and math renderers rely on.
func newPanelSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Highlighting, diagram and math containers carry classes.
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span", "div")

	// Heading anchors from parser.WithAutoHeadingID.
	p.AllowAttrs("id").Matching(bluemonday.Paragraph).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	// Diagram containers carry the per-render theme.
	p.AllowAttrs("data-theme", "id").OnElements("pre", "div")

	// Task list checkboxes from extension.GFM.
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")

	return p
}

// ToHTML converts Markdown content to a sanitized HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (c *goldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRenderFailed, err)}
			return
		}
		done <- result{html: c.sanitizer.Sanitize(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
