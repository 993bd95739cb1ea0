// Package cliutil holds the output helpers of the oasvariant CLI.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Fallback receives the report of a failed write.
var Fallback io.Writer = os.Stderr

// Writef prints to w. A failed write is reported on Fallback, since the
// CLI has nowhere else to surface it.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(Fallback, "oasvariant: write error: %v\n", err)
	}
}

// WriteError prints err the way every oasvariant command reports failure.
func WriteError(w io.Writer, err error) {
	Writef(w, "Error: %v\n", err)
}
