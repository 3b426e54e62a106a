package cellmd

import (
	"context"
	"fmt"
	"html/template"
	"strings"
)

// Service orchestrates the classify-and-render pipeline.
type Service struct {
	cfg       serviceConfig
	markdown  markdownConverter
	assembler documentAssembler
	image     imageRenderer
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:       serviceConfig{timeout: defaultTimeout},
		markdown:  newGoldmarkConverter(),
		assembler: newTemplateAssembler(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create image renderer if not injected (e.g., by tests)
	if s.image == nil {
		s.image = newRodImageRenderer(s.cfg.timeout)
	}

	return s
}

// Render runs the pipeline for one snapshot: validate the field type,
// classify the content, render it on the matching path, and assemble
// the themed panel document.
//
// Empty content is not an error: it produces the empty-state prompt.
// A non-text, non-URL field type returns ErrUnsupportedFieldType with
// no content rendered.
func (s *Service) Render(ctx context.Context, input Input) (*RenderResult, error) {
	if err := input.Theme.Validate(); err != nil {
		return nil, err
	}
	if err := input.FontSize.Validate(); err != nil {
		return nil, err
	}

	snap := input.Snapshot
	if !snap.FieldType.Renderable() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFieldType, string(snap.FieldType))
	}

	css, err := buildPanelCSS(input.Theme, input.FontSize)
	if err != nil {
		return nil, err
	}

	data := panelData{
		CSS:       template.CSS(css),
		Theme:     input.Theme.orLight(),
		FieldName: snap.FieldName,
	}

	result := &RenderResult{Snapshot: snap}

	switch {
	case strings.TrimSpace(snap.Content) == "":
		result.Mode = ModeMarkdown
		data.Empty = true

	case IsDiagramDocument(snap.Content):
		// The whole cell is a diagram description: bypass the Markdown
		// path entirely and hand the content to the diagram renderer.
		result.Mode = ModeDiagram
		diagram := newThemedDiagramRenderer(input.Theme)
		result.Body = diagram.RenderDiagram(snap.Content, snap.RecordID)
		data.Body = template.HTML(result.Body) // #nosec G203 -- diagram source is escaped by RenderDiagram

	default:
		result.Mode = ModeMarkdown
		body, err := s.markdown.ToHTML(ctx, snap.Content)
		if err != nil {
			return nil, err
		}
		result.Body = body
		data.Body = template.HTML(body) // #nosec G203 -- body is sanitized by the converter
	}

	doc, err := s.assembler.Assemble(ctx, data)
	if err != nil {
		return nil, err
	}
	result.Document = doc

	return result, nil
}

// EmptyDocument assembles the empty-state panel shown when no cell is
// selected. Not an error state.
func (s *Service) EmptyDocument(ctx context.Context, theme Theme, size FontSize) (string, error) {
	css, err := buildPanelCSS(theme, size)
	if err != nil {
		return "", err
	}
	return s.assembler.Assemble(ctx, panelData{
		CSS:   template.CSS(css),
		Theme: theme.orLight(),
		Empty: true,
	})
}

// ErrorDocument assembles a panel that shows an inline error message
// and no content. Used for the unsupported-field and fetch-failed
// states; the message is escaped by the template.
func (s *Service) ErrorDocument(ctx context.Context, theme Theme, size FontSize, fieldName, message string) (string, error) {
	css, err := buildPanelCSS(theme, size)
	if err != nil {
		return "", err
	}
	return s.assembler.Assemble(ctx, panelData{
		CSS:          template.CSS(css),
		Theme:        theme.orLight(),
		FieldName:    fieldName,
		ErrorMessage: message,
	})
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.image != nil {
		return s.image.Close()
	}
	return nil
}
