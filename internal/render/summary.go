package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/util"
	"github.com/derickschaefer/truewage/internal/wage"
)

// ErrNothingToExport is returned when a summary is requested before any
// successful calculation.
var ErrNothingToExport = errors.New("nothing to export: calculate first")

// Placeholder messages shown instead of a result.
const (
	PromptInitial      = "Enter details and calculate."
	PromptInsufficient = "Please enter your pay and time details, then calculate."
)

// CompareText states the headline wage against the nominal rate, e.g.
// "Nominal hourly ≈ $40.00. True wage is −$8.52 per hour."
func CompareText(b model.Breakdown, fm *Formatter) string {
	c := wage.Compare(b)
	sign := "+"
	if c.Negative {
		sign = "−"
	}
	strainNote := ""
	if b.StrainApplied() {
		strainNote = fmt.Sprintf(" (after %s%% work strain adjustment)", util.FormatValue(b.StrainPct))
	}
	return fmt.Sprintf("Nominal hourly ≈ %s. True wage%s is %s%s per hour.",
		fm.Money(b.NominalHourly), strainNote, sign, fm.Money(c.AbsDelta))
}

// Insight is one "what this means" line.
type Insight struct {
	Title  string
	Value  string
	Detail string
}

// InsightLines returns the commute, unpaid-time and drop insights.
func InsightLines(b model.Breakdown, fm *Formatter) []Insight {
	ins := b.Insights
	drop := fm.Num(ins.DropPct, 1)

	strainExtra := " Add a work strain adjustment if you want a subjective quality-of-life reduction."
	if b.StrainApplied() {
		strainExtra = fmt.Sprintf(" With strain adjustment, the displayed true wage is further reduced by %s%%.",
			util.FormatValue(b.StrainPct))
	}

	return []Insight{
		{
			Title:  "Commute",
			Value:  fm.Hours(ins.CommuteHours),
			Detail: fmt.Sprintf("%s workweeks (~%s of time at nominal rate)", fm.Num(ins.CommuteWeeks, 1), fm.Money(ins.CommuteValue)),
		},
		{
			Title:  "Unpaid",
			Value:  fm.Hours(ins.UnpaidHours),
			Detail: fmt.Sprintf("%s workweeks (~%s of time at nominal rate)", fm.Num(ins.UnpaidWeeks, 1), fm.Money(ins.UnpaidValue)),
		},
		{
			Title:  "Drop",
			Value:  drop + "% lower",
			Detail: fmt.Sprintf("Your true wage (time-based) is ~%s%% below nominal.%s", drop, strainExtra),
		},
	}
}

// Summary serializes a calculation into the fixed plain-text block used for
// copy/export. Field order: mode, role, true hourly wage, annual pay counted,
// total annual hours, commute hours, unpaid hours, drop percentage.
// A nil breakdown yields ErrNothingToExport.
func Summary(b *model.Breakdown, fm *Formatter) (string, error) {
	if b == nil {
		return "", ErrNothingToExport
	}
	role := b.Role
	if role == "" {
		role = model.RoleCustom
	}
	lines := []string{
		"True Wage Calculator",
		"Mode: " + string(b.Mode),
		"Role preset: " + string(role),
		"True hourly wage: " + fm.Money(b.Headline),
		"Annual pay counted: " + fm.Money(b.AnnualPayCounted),
		"Total time cost (hrs/year): " + fm.Num(b.TotalHoursYear, 1),
		"Commute (hrs/year): " + fm.Hours(b.Insights.CommuteHours),
		"Unpaid time (hrs/year): " + fm.Hours(b.Insights.UnpaidHours),
		"Effective drop vs nominal: " + fm.Num(b.Insights.DropPct, 1) + "% lower",
		"Includes commute + unpaid overtime + unpaid breaks + prep (if entered).",
	}
	return strings.Join(lines, "\n"), nil
}
