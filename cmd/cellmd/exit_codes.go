package main

import (
	"errors"
	"os"

	cellmd "github.com/avahl/go-cellmd"
	"github.com/avahl/go-cellmd/internal/hints"
	"github.com/avahl/go-cellmd/internal/watch"
)

// Exit codes for the cellmd CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or arguments
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// CLI sentinel errors.
var (
	ErrNoCommand      = errors.New("no command given")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoInput        = errors.New("no input file given")
	ErrReadInput      = errors.New("failed to read input")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, cellmd.ErrBrowserConnect) ||
		errors.Is(err, cellmd.ErrPageCreate) ||
		errors.Is(err, cellmd.ErrPageLoad) ||
		errors.Is(err, cellmd.ErrImageExport) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, cellmd.ErrExportFailed) ||
		errors.Is(err, watch.ErrFetchFailed) {
		return ExitIO
	}

	// Usage/validation errors (exit 2)
	if errors.Is(err, ErrNoCommand) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, cellmd.ErrInvalidTheme) ||
		errors.Is(err, cellmd.ErrInvalidFontSize) ||
		errors.Is(err, cellmd.ErrUnsupportedFieldType) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint to append to the error message,
// or an empty string when none applies.
func hintFor(err error) string {
	switch {
	case errors.Is(err, cellmd.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, os.ErrNotExist):
		return hints.ForFileWatch()
	default:
		return ""
	}
}
