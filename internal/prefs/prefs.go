// Package prefs persists panel preferences across sessions. Today that
// is the font size bucket; the host theme is never stored because the
// panel always follows the host's live setting.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	cellmd "github.com/avahl/go-cellmd"
	"github.com/avahl/go-cellmd/internal/yamlutil"
)

// Sentinel errors for preference operations.
var (
	ErrPrefsParse = errors.New("failed to parse preferences")
	ErrPrefsWrite = errors.New("failed to write preferences")
)

// prefsRelPath is the file location under the XDG config home.
const prefsRelPath = "cellmd/prefs.yaml"

// Preferences is the persisted preference document.
type Preferences struct {
	FontSize string `yaml:"fontSize"`
}

// Default returns the out-of-the-box preferences.
func Default() Preferences {
	return Preferences{FontSize: string(cellmd.FontMedium)}
}

// Store reads and writes the preference file.
type Store struct {
	path string
}

// NewStore resolves the preference file under the XDG config home,
// creating parent directories as needed.
func NewStore() (*Store, error) {
	path, err := xdg.ConfigFile(prefsRelPath)
	if err != nil {
		return nil, fmt.Errorf("resolving preferences path: %w", err)
	}
	return &Store{path: path}, nil
}

// NewStoreAt uses an explicit file path. Used by tests and the
// --prefs flag.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the preferences. A missing file yields the defaults with
// no error. A file that cannot be parsed also yields the defaults, with
// an ErrPrefsParse error the caller can log; a corrupt preference file
// must never block the panel.
func (s *Store) Load() (Preferences, error) {
	data, err := os.ReadFile(s.path) // #nosec G304 -- path is our own config file
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("%w: %v", ErrPrefsParse, err)
	}

	var p Preferences
	if err := yamlutil.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrPrefsParse, err)
	}
	return p, nil
}

// FontSize returns the stored bucket, falling back to medium for
// unknown or missing values.
func (s *Store) FontSize() cellmd.FontSize {
	p, _ := s.Load()
	size := cellmd.FontSize(p.FontSize)
	if size.Validate() != nil || size == "" {
		return cellmd.FontMedium
	}
	return size
}

// SetFontSize validates and persists the bucket. Unlike reads, writes
// reject the empty value: a caller setting a size must name one.
func (s *Store) SetFontSize(size cellmd.FontSize) error {
	if size == "" {
		return fmt.Errorf("%w: empty", cellmd.ErrInvalidFontSize)
	}
	if err := size.Validate(); err != nil {
		return err
	}

	p, _ := s.Load()
	p.FontSize = string(size)

	data, err := yamlutil.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPrefsWrite, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrPrefsWrite, err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrPrefsWrite, err)
	}
	return nil
}
