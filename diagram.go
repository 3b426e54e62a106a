package cellmd

import (
	"fmt"
	"html"
	"strings"
	"sync/atomic"
)

// diagramRenderer abstracts whole-document diagram rendering.
type diagramRenderer interface {
	RenderDiagram(source string, identity string) string
}

// themedDiagramRenderer emits hydration containers for the client-side
// diagram engine. Theme is a per-instance field written into every
// container, never process-global engine state, so two renderers with
// different themes can coexist on one page.
type themedDiagramRenderer struct {
	theme Theme
	seq   atomic.Uint64
}

// newThemedDiagramRenderer creates a renderer for the given theme.
// The zero theme falls back to light.
func newThemedDiagramRenderer(theme Theme) *themedDiagramRenderer {
	if theme == "" {
		theme = ThemeLight
	}
	return &themedDiagramRenderer{theme: theme}
}

// RenderDiagram wraps a diagram description in a hydration container.
// The container keeps the escaped source as its text content: until the
// engine replaces it with vector output the source stays visible, and
// on an engine failure the panel marks the container as errored while
// the source remains on screen. The panel never goes blank.
//
// Container identifiers are structured (identity plus a monotonic
// sequence) so uniqueness within a page session is a guarantee rather
// than a probability.
func (r *themedDiagramRenderer) RenderDiagram(source string, identity string) string {
	id := r.containerID(identity)
	escaped := html.EscapeString(strings.TrimSpace(source))

	var b strings.Builder
	b.WriteString(`<div class="cellmd-diagram" id="`)
	b.WriteString(id)
	b.WriteString(`">`)
	b.WriteString(`<pre class="mermaid" data-theme="`)
	b.WriteString(string(r.theme))
	b.WriteString(`">`)
	b.WriteString(escaped)
	b.WriteString(`</pre>`)
	b.WriteString(`</div>`)
	return b.String()
}

// containerID builds a unique DOM anchor from the snapshot identity and
// a per-renderer sequence number.
func (r *themedDiagramRenderer) containerID(identity string) string {
	n := r.seq.Add(1)
	if identity == "" {
		identity = "document"
	}
	return fmt.Sprintf("cellmd-diagram-%s-%d", sanitizeIdentity(identity), n)
}

// sanitizeIdentity keeps DOM id characters conservative: letters,
// digits, hyphen and underscore pass, everything else becomes a hyphen.
func sanitizeIdentity(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			b.WriteRune(c)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
