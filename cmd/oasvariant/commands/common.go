package commands

import (
	"fmt"
	"path/filepath"

	"github.com/erraggy/oasvariant/document"
	"github.com/spf13/cobra"
)

const (
	stdinName  = "<stdin>"
	stdoutName = "<stdout>"
)

// isStdio reports whether path designates stdin or stdout.
func isStdio(path string) bool {
	return path == "" || path == document.StdioPath
}

// FormatSpecPath returns a display-friendly path for the document.
func FormatSpecPath(path string) string {
	if isStdio(path) {
		return stdinName
	}
	return path
}

// ValidateOutputPath rejects an output path that would overwrite the input.
func ValidateOutputPath(outputPath, inputPath string) error {
	if isStdio(outputPath) || isStdio(inputPath) {
		return nil
	}
	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	absInput, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("invalid input path %s: %w", inputPath, err)
	}
	if absOutput == absInput {
		return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
	}
	return nil
}

// loadInput reads the document at path, or from the command's stdin.
func loadInput(cmd *cobra.Command, path string) (document.Object, error) {
	if isStdio(path) {
		return document.Read(cmd.InOrStdin(), stdinName)
	}
	return document.Load(path)
}

// storeOutput writes doc to path, or to the command's stdout.
func storeOutput(cmd *cobra.Command, path string, doc document.Object) error {
	if isStdio(path) {
		return document.Write(cmd.OutOrStdout(), doc, stdoutName)
	}
	return document.Store(path, doc)
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
