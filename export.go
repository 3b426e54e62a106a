package cellmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avahl/go-cellmd/internal/dateutil"
)

// MIME types for exported artifacts.
const (
	MarkdownMIMEType = "text/markdown;charset=utf-8"
	PNGMIMEType      = "image/png"
)

// defaultExportBase is used when the snapshot has no field name.
const defaultExportBase = "markdown"

// ExportFileName builds the export filename:
// {fieldName-or-"markdown"}_{date}.{ext}. The date defaults to ISO
// (YYYY-MM-DD); dateFormat accepts the dateutil token syntax for
// callers that want something else. The time parameter allows
// injecting a fixed clock for testing.
func ExportFileName(fieldName, ext, dateFormat string, t time.Time) (string, error) {
	if dateFormat == "" {
		dateFormat = dateutil.DefaultDateFormat
	}
	goFmt, err := dateutil.ParseDateFormat(dateutil.ExpandPreset(dateFormat))
	if err != nil {
		return "", err
	}

	base := sanitizeFileBase(fieldName)
	if base == "" {
		base = defaultExportBase
	}

	return fmt.Sprintf("%s_%s.%s", base, t.Format(goFmt), ext), nil
}

// sanitizeFileBase strips characters that are unsafe in file names.
func sanitizeFileBase(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(c rune) rune {
		switch c {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', '\x00':
			return '-'
		}
		return c
	}, s)
}

// ExportMarkdown writes the raw cell content to dir as UTF-8 bytes and
// returns the written path. The content is written exactly as captured;
// reading the file back yields byte-identical text.
func ExportMarkdown(dir, fieldName, content string, now time.Time) (string, error) {
	name, err := ExportFileName(fieldName, "md", "", now)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { // #nosec G306 -- exported document, not a secret
		return "", fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return path, nil
}

// ExportImagePNG rasterizes the rendered panel document and returns the
// PNG bytes. Asynchronous and fallible (cross-origin assets,
// unsupported CSS); callers report failure through the transient
// feedback channel rather than propagating a hard error to the panel.
func (s *Service) ExportImagePNG(ctx context.Context, result *RenderResult) ([]byte, error) {
	if result == nil || result.Document == "" {
		return nil, fmt.Errorf("%w: nothing rendered", ErrImageExport)
	}
	return s.image.RenderPNG(ctx, result.Document)
}

// ExportImage rasterizes the rendered panel and writes the PNG to dir,
// returning the written path.
func (s *Service) ExportImage(ctx context.Context, dir string, result *RenderResult, now time.Time) (string, error) {
	png, err := s.ExportImagePNG(ctx, result)
	if err != nil {
		return "", err
	}

	name, err := ExportFileName(result.Snapshot.FieldName, "png", "", now)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageExport, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, png, 0o644); err != nil { // #nosec G306 -- exported image, not a secret
		return "", fmt.Errorf("%w: %v", ErrImageExport, err)
	}
	return path, nil
}
