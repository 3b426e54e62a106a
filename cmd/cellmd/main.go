package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%v%s\n", err, hintFor(err))
		os.Exit(exitCodeFor(err))
	}
}

// hasVerboseFlag scans the raw arguments before any parsing so maxprocs
// logging can be decided up front.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// run dispatches to the selected subcommand.
func run(args []string) error {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return ErrNoCommand
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "render":
		return runRender(rest)
	case "serve":
		return runServe(rest)
	case "classify":
		return runClassify(rest)
	case "version", "--version":
		fmt.Printf("cellmd %s\n", Version)
		return nil
	case "help", "--help", "-h":
		return runHelp(rest)
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

// runHelp shows usage for a specific command, or the main usage.
func runHelp(args []string) error {
	if len(args) == 0 {
		printUsage(os.Stdout)
		return nil
	}
	switch args[0] {
	case "render":
		printRenderUsage(os.Stdout)
	case "serve":
		printServeUsage(os.Stdout)
	case "classify":
		printClassifyUsage(os.Stdout)
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	return nil
}
