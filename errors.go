package cellmd

import "errors"

// Sentinel errors for library operations.
var (
	ErrUnsupportedFieldType = errors.New("unsupported field type")
	ErrRenderFailed         = errors.New("render failed")
	ErrExportFailed         = errors.New("export failed")
	ErrImageExport          = errors.New("image export failed")

	// Headless browser errors (image export).
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Validation errors.
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrInvalidFontSize = errors.New("invalid font size")
)
