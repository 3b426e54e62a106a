package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	theme    string
	fontSize string
	prefs    string
	verbose  bool
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common     commonFlags
	output     string
	pngOutput  string
	fieldName  string
	dateFormat string
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common commonFlags
	addr   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.theme, "theme", "", "panel theme: light, dark (default light)")
	fs.StringVar(&f.fontSize, "font-size", "", "font bucket: small, medium, large, xlarge")
	fs.StringVar(&f.prefs, "prefs", "", "preference file path (default: XDG config home)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "HTML output path (default: stdout)")
	fs.StringVar(&f.pngOutput, "png", "", "also rasterize the panel to this PNG path")
	fs.StringVar(&f.fieldName, "field-name", "", "field name shown in the panel (default: input file name)")
	fs.StringVar(&f.dateFormat, "date-format", "", "export date format tokens (default: YYYY-MM-DD)")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printRenderUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "localhost:7420", "listen address")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printServeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
