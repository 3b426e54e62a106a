package main

import (
	"fmt"
	"os"

	cellmd "github.com/avahl/go-cellmd"
)

// runClassify prints the render mode for the given content.
func runClassify(args []string) error {
	if len(args) < 1 {
		printClassifyUsage(os.Stderr)
		return ErrNoInput
	}

	content, err := readInput(args[0])
	if err != nil {
		return err
	}

	if cellmd.IsDiagramDocument(content) {
		fmt.Println(cellmd.ModeDiagram)
	} else {
		fmt.Println(cellmd.ModeMarkdown)
	}
	return nil
}
