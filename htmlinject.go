package cellmd

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/avahl/go-cellmd/internal/assets"
)

// panelData carries everything the panel template needs for one render.
type panelData struct {
	CSS          template.CSS
	Body         template.HTML
	Theme        Theme
	FieldName    string
	Empty        bool
	ErrorMessage string
}

// documentAssembler wraps a rendered body fragment into a complete,
// self-contained panel document.
type documentAssembler interface {
	Assemble(ctx context.Context, data panelData) (string, error)
}

// templateAssembler renders the embedded panel template.
type templateAssembler struct {
	tmpl *template.Template
}

// newTemplateAssembler creates a templateAssembler from the embedded
// panel template. Panics if the template cannot be loaded or parsed
// (programmer error).
func newTemplateAssembler() *templateAssembler {
	tmplContent, err := assets.LoadTemplate("panel")
	if err != nil {
		panic("failed to load panel template: " + err.Error())
	}

	tmpl, err := template.New("panel").Parse(tmplContent)
	if err != nil {
		panic("failed to parse panel template: " + err.Error())
	}

	return &templateAssembler{tmpl: tmpl}
}

// Assemble executes the panel template with the given data.
func (a *templateAssembler) Assemble(ctx context.Context, data panelData) (string, error) {
	// Check for cancellation
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf.String(), nil
}

// buildPanelCSS combines the theme stylesheet with the font-size rule.
// The theme stylesheet is embedded; an unknown theme is a programmer
// error surfaced as ErrRenderFailed.
func buildPanelCSS(theme Theme, size FontSize) (string, error) {
	style, err := assets.LoadStyle(string(theme.orLight()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return style + buildFontSizeCSS(size), nil
}
