package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/render"
)

// resolveFormat returns the effective format string, falling back to "table".
func resolveFormat(cfgFormat string) string {
	if globalFlags.Format != "" {
		return globalFlags.Format
	}
	if cfgFormat != "" {
		return cfgFormat
	}
	return render.FormatTable
}

// outputWriter returns the writer command output should go to: the --out
// file when set, io.Discard under --quiet, else def. The returned close
// function must always be called.
func outputWriter(def io.Writer) (io.Writer, func() error, error) {
	if globalFlags.Out != "" {
		f, err := os.Create(globalFlags.Out)
		if err != nil {
			return nil, nil, fmt.Errorf("creating output file: %w", err)
		}
		return f, f.Close, nil
	}
	if globalFlags.Quiet {
		return io.Discard, func() error { return nil }, nil
	}
	return def, func() error { return nil }, nil
}

// newResult wraps data in a Result envelope.
func newResult(kind, command string, data interface{}) *model.Result {
	return &model.Result{
		Kind:        kind,
		GeneratedAt: time.Now(),
		Command:     command,
		Data:        data,
	}
}

// printKVTable renders a two-column key/value list using aligned columns.
func printKVTable(w io.Writer, rows [][]string) {
	maxKey := 0
	for _, r := range rows {
		if len(r[0]) > maxKey {
			maxKey = len(r[0])
		}
	}
	for _, r := range rows {
		padding := strings.Repeat(" ", maxKey-len(r[0]))
		fmt.Fprintf(w, "  %s%s  %s\n", r[0], padding, r[1])
	}
}
