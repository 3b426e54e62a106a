package cellmd

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// errClipboardUnsupported reports that the platform clipboard API is
// not available in this environment.
var errClipboardUnsupported = errors.New("system clipboard unavailable")

// writeSystemClipboard writes through the platform clipboard API.
func writeSystemClipboard(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// Copier writes text to the system clipboard with a two-tier strategy:
// the platform clipboard API first, then a legacy copy command fed over
// stdin. All failure is reported as a boolean; copying never raises an
// error to the caller.
type Copier struct {
	primary  func(text string) error
	fallback func(text string) error
}

// NewCopier creates a Copier with the platform defaults.
func NewCopier() *Copier {
	return &Copier{
		primary:  writeSystemClipboard,
		fallback: writeLegacyClipboard,
	}
}

// CopyText copies text, falling back to the legacy command when the
// primary API is unavailable or rejects the write. Returns success.
func (c *Copier) CopyText(text string) bool {
	if c.primary != nil && c.primary(text) == nil {
		return true
	}
	if c.fallback != nil && c.fallback(text) == nil {
		return true
	}
	return false
}

// CopyHTML copies the serialized HTML of the rendered panel body using
// the same two-tier strategy.
func (c *Copier) CopyHTML(result *RenderResult) bool {
	if result == nil {
		return false
	}
	return c.CopyText(result.Body)
}

// legacyCopyCommands lists stdin-fed copy commands per platform, tried
// in order.
func legacyCopyCommands() [][]string {
	switch runtime.GOOS {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		return [][]string{{"clip"}}
	default:
		return [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}
}

// writeLegacyClipboard pipes text into the first available legacy copy
// command. Returns the last error if none succeeds.
func writeLegacyClipboard(text string) error {
	var lastErr error
	for _, argv := range legacyCopyCommands() {
		if _, err := exec.LookPath(argv[0]); err != nil {
			lastErr = err
			continue
		}

		cmd := exec.Command(argv[0], argv[1:]...) // #nosec G204 -- fixed command list, no user input
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
