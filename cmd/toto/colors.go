package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// useColor determines if color output should be used.
// Respects --no-color flag and NO_COLOR environment variable.
func useColor(noColorFlag bool, w io.Writer) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
