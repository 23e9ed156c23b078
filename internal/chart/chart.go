// Package chart provides ASCII terminal charts of where a year's working
// hours go. Bars are scaled against the largest category and require no
// external dependencies beyond the Go standard library.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/derickschaefer/truewage/internal/model"
)

// Bar is one labelled quantity.
type Bar struct {
	Label string
	Value float64
}

// BarOptions controls horizontal bar chart rendering.
type BarOptions struct {
	// Width is the total character width available for the chart.
	// If 0, auto-detects from $COLUMNS, falls back to 80.
	Width int
}

// HoursBars returns the five annual hour categories of b, in display order.
func HoursBars(b model.Breakdown) []Bar {
	return []Bar{
		{"Scheduled", b.ScheduledHoursYear},
		{"Overtime", b.OvertimeHoursYear},
		{"Breaks", b.BreakHoursYear},
		{"Commute", b.CommuteHoursYear},
		{"Prep", b.PrepHoursYear},
	}
}

// Hours renders the annual-hours breakdown of b as a bar chart.
//
// Output example:
//
//	Annual hours  2541.7 total
//	Scheduled  2000.0  78.7%  ████████████████████████████
//	Overtime    250.0   9.8%  ████
//	Breaks      125.0   4.9%  ██
func Hours(w io.Writer, b model.Breakdown, opts BarOptions) error {
	fmt.Fprintf(w, "Annual hours  %s total\n", formatFloat(b.TotalHoursYear))
	return Bars(w, HoursBars(b), b.TotalHoursYear, opts)
}

// Bars renders one bar per entry, each annotated with its share of total.
// Negative and non-finite values are drawn as empty bars.
func Bars(w io.Writer, bars []Bar, total float64, opts BarOptions) error {
	if len(bars) == 0 {
		return fmt.Errorf("chart bar: nothing to render")
	}
	totalWidth := opts.Width
	if totalWidth <= 0 {
		totalWidth = termWidth()
	}

	labelWidth, valWidth := 0, 0
	maxVal := 0.0
	for _, b := range bars {
		if l := len(b.Label); l > labelWidth {
			labelWidth = l
		}
		if l := len(formatFloat(b.Value)); l > valWidth {
			valWidth = l
		}
		if v := clean(b.Value); v > maxVal {
			maxVal = v
		}
	}
	const pctWidth = 6 // "100.0%"

	// Bar area width = totalWidth - label - value - share - separators (6 chars)
	barAreaWidth := totalWidth - labelWidth - valWidth - pctWidth - 6
	if barAreaWidth < 4 {
		barAreaWidth = 4
	}

	for _, b := range bars {
		v := clean(b.Value)
		barLen := 0
		if maxVal > 0 {
			barLen = int(math.Round(v / maxVal * float64(barAreaWidth)))
		}
		share := 0.0
		if total > 0 {
			share = v / total * 100
		}
		fmt.Fprintf(w, "%-*s  %*s  %*s  %s\n",
			labelWidth, b.Label,
			valWidth, formatFloat(b.Value),
			pctWidth, strconv.FormatFloat(share, 'f', 1, 64)+"%",
			strings.Repeat("█", barLen),
		)
	}
	return nil
}

// clean maps negative and non-finite values to 0.
func clean(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ─── Utilities ────────────────────────────────────────────────────────────────

// formatFloat formats a bar label: one decimal place, compact notation for
// large numbers.
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "."
	}
	if math.Abs(v) >= 1e6 {
		return strconv.FormatFloat(v/1e6, 'f', 1, 64) + "M"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// termWidth returns the terminal width from $COLUMNS, defaulting to 80.
func termWidth() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if n, err := strconv.Atoi(cols); err == nil && n > 20 {
			return n
		}
	}
	return 80
}
