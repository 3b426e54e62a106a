// Package cellmd renders the content of a spreadsheet cell as a themed
// Markdown panel.
//
// The package is the core of a cell-preview sidebar for Bitable-style
// hosts: raw cell text is classified as either a standalone diagram
// document or rich Markdown, rendered to HTML (diagrams, math,
// highlighted code, emoji), and wrapped in a self-contained panel
// document. Copy, file export and image export actions operate on the
// rendered result.
//
// Basic usage:
//
//	svc := cellmd.New()
//	defer svc.Close()
//
//	res, err := svc.Render(ctx, cellmd.Input{
//		Snapshot: snap,
//		Theme:    cellmd.ThemeDark,
//		FontSize: cellmd.FontLarge,
//	})
//
// Host integration (selection watching, value fetching) lives in
// internal/host and internal/watch; the dev harness HTTP panel lives in
// internal/server.
package cellmd
