package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	cellmd "github.com/avahl/go-cellmd"
)

// runRender renders one markdown input to a panel document.
func runRender(args []string) error {
	flags, rest, err := parseRenderFlags(args)
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		printRenderUsage(os.Stderr)
		return ErrNoInput
	}

	input := rest[0]
	content, err := readInput(input)
	if err != nil {
		return err
	}

	fieldName := flags.fieldName
	if fieldName == "" && input != "-" {
		fieldName = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	svc := cellmd.New()
	defer func() { _ = svc.Close() }()

	ctx := context.Background()
	result, err := svc.Render(ctx, cellmd.Input{
		Snapshot: cellmd.Snapshot{
			FieldName: fieldName,
			RecordID:  "cli",
			Content:   content,
			FieldType: cellmd.FieldText,
		},
		Theme:    cellmd.Theme(flags.common.theme),
		FontSize: cellmd.FontSize(flags.common.fontSize),
	})
	if err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(os.Stderr, "Rendered %s content (%d bytes of HTML)\n", result.Mode, len(result.Document))
	}

	if err := writeDocument(flags.output, result.Document); err != nil {
		return err
	}

	if flags.pngOutput != "" {
		if err := writePNG(ctx, svc, flags, result); err != nil {
			return err
		}
	}
	return nil
}

// readInput reads the file at path, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return string(data), nil
}

// writeDocument writes the panel document to path, or stdout when path
// is empty.
func writeDocument(path, doc string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, doc)
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil { // #nosec G306 -- rendered document, not a secret
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Created %s\n", path)
	return nil
}

// writePNG rasterizes the panel. When the target is a directory the
// file name is generated from the field name and date format.
func writePNG(ctx context.Context, svc *cellmd.Service, flags *renderFlags, result *cellmd.RenderResult) error {
	target := flags.pngOutput
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		name, err := cellmd.ExportFileName(result.Snapshot.FieldName, "png", flags.dateFormat, time.Now())
		if err != nil {
			return err
		}
		target = filepath.Join(target, name)
	}

	png, err := svc.ExportImagePNG(ctx, result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, png, 0o644); err != nil { // #nosec G306 -- exported image, not a secret
		return fmt.Errorf("%w: %v", cellmd.ErrImageExport, err)
	}
	fmt.Printf("Created %s\n", target)
	return nil
}
