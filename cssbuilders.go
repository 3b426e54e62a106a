package cellmd

import (
	"fmt"
)

// defaultFontFamily is the standard font stack for panel content.
const defaultFontFamily = `-apple-system, "Segoe UI", Roboto, sans-serif`

// buildFontSizeCSS generates the custom-property rule driving the
// panel's text size. Selecting a bucket only changes this one variable;
// the theme stylesheets derive every size from it.
func buildFontSizeCSS(size FontSize) string {
	return fmt.Sprintf(`
/* Font size bucket: %s */
:root {
  --cellmd-font-size: %dpx;
}
body {
  font-size: var(--cellmd-font-size);
  font-family: %s;
}
`, size.orMedium(), size.Pixels(), defaultFontFamily)
}

// orMedium resolves the zero value to the default bucket.
func (f FontSize) orMedium() FontSize {
	if f == "" {
		return FontMedium
	}
	return f
}

// orLight resolves the zero value to the default theme.
func (t Theme) orLight() Theme {
	if t == "" {
		return ThemeLight
	}
	return t
}
