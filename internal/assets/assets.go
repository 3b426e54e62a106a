// Package assets provides the embedded stylesheets and templates used
// to assemble the panel document.
package assets

import (
	"embed"
	"errors"
	"fmt"
)

//go:embed styles/*.css
var stylesFS embed.FS

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Sentinel errors for asset loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// LoadStyle returns the named embedded stylesheet (without extension).
func LoadStyle(name string) (string, error) {
	data, err := stylesFS.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(data), nil
}

// LoadTemplate returns the named embedded template (without extension).
func LoadTemplate(name string) (string, error) {
	data, err := templatesFS.ReadFile("templates/" + name + ".html.tmpl")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(data), nil
}
