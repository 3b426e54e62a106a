package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cellmd <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render a markdown file as a panel document")
	fmt.Fprintln(w, "  serve      Serve the live panel for a watched file")
	fmt.Fprintln(w, "  classify   Report whether content is a diagram or markdown")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cellmd help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cellmd render <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a markdown file (or '-' for stdin) as a complete panel")
	fmt.Fprintln(w, "document. Content that is a diagram description renders on the")
	fmt.Fprintln(w, "diagram path; everything else renders as markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>      HTML output path (default: stdout)")
	fmt.Fprintln(w, "      --png <path>         Also rasterize the panel to a PNG")
	fmt.Fprintln(w, "      --field-name <s>     Field name shown in the panel")
	fmt.Fprintln(w, "      --theme <s>          Panel theme: light, dark")
	fmt.Fprintln(w, "      --font-size <s>      Font bucket: small, medium, large, xlarge")
	fmt.Fprintln(w, "      --date-format <s>    Export date tokens: YYYY, MM, DD, ...")
	fmt.Fprintln(w, "                           Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "  -v, --verbose            Show detailed progress")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cellmd serve <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the panel over HTTP, re-rendering whenever the file changes.")
	fmt.Fprintln(w, "The file stands in for the selected cell during development.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <host:port>   Listen address (default: localhost:7420)")
	fmt.Fprintln(w, "      --theme <s>          Panel theme: light, dark")
	fmt.Fprintln(w, "      --font-size <s>      Initial font bucket override")
	fmt.Fprintln(w, "      --prefs <path>       Preference file path")
	fmt.Fprintln(w, "  -v, --verbose            Show detailed progress")
}

// printClassifyUsage prints usage for the classify command.
func printClassifyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cellmd classify <input.md>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print 'diagram' if the content is a diagram description,")
	fmt.Fprintln(w, "'markdown' otherwise. Reads stdin when input is '-'.")
}
