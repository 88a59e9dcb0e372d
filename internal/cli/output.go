package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

func header(w io.Writer, format string, args ...any) {
	headerColor.Fprintf(w, format+"\n", args...)
}

func success(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, format+"\n", args...)
}

func warn(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, format+"\n", args...)
}

func failure(w io.Writer, format string, args ...any) {
	errorColor.Fprintf(w, format+"\n", args...)
}

func bullet(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  - "+format+"\n", args...)
}

// relTo returns path relative to base, slash-separated, or path itself if
// no relative form exists.
func relTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
