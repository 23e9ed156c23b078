// Package render converts Result values into human-readable or machine-parseable
// output. Each format is a separate function; the top-level Render dispatcher
// selects based on the format string.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/derickschaefer/truewage/internal/form"
	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/util"
	"github.com/olekukonko/tablewriter"
)

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
	FormatMD    = "md"
	FormatText  = "text"
)

// Formats lists every supported --format value.
var Formats = []string{FormatTable, FormatJSON, FormatCSV, FormatTSV, FormatMD, FormatText}

// ValidFormat reports whether s names a supported format.
func ValidFormat(s string) bool {
	for _, f := range Formats {
		if f == s {
			return true
		}
	}
	return false
}

// Render writes result to w in the specified format.
func Render(w io.Writer, result *model.Result, format string, fm *Formatter) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, result)
	case FormatCSV:
		return renderDelimited(w, result, ',')
	case FormatTSV:
		return renderDelimited(w, result, '\t')
	case FormatMD:
		return renderMarkdown(w, result, fm)
	case FormatText:
		return renderText(w, result, fm)
	default:
		return renderTable(w, result, fm)
	}
}

// ─── JSON ─────────────────────────────────────────────────────────────────────

func renderJSON(w io.Writer, result *model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// ─── Table ────────────────────────────────────────────────────────────────────

func renderTable(w io.Writer, result *model.Result, fm *Formatter) error {
	switch result.Kind {
	case model.KindBreakdown:
		b, ok := result.Data.(model.Breakdown)
		if !ok {
			return fmt.Errorf("unexpected data type for breakdown")
		}
		return renderBreakdownTable(w, b, fm)
	case model.KindPresets:
		rows, ok := result.Data.([]model.PresetRow)
		if !ok {
			return fmt.Errorf("unexpected data type for presets")
		}
		return renderPresetTable(w, rows)
	case model.KindTable:
		rows, ok := result.Data.([][]string)
		if !ok {
			return fmt.Errorf("unexpected data type for table")
		}
		renderKVTable(w, rows)
		return nil
	default:
		// Fallback: JSON
		return renderJSON(w, result)
	}
}

func renderBreakdownTable(w io.Writer, b model.Breakdown, fm *Formatter) error {
	fmt.Fprintf(w, "True hourly wage: %s\n", fm.Money(b.Headline))
	fmt.Fprintf(w, "%s\n\n", CompareText(b, fm))

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"FIELD", "VALUE"})
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
	})
	tw.SetAutoWrapText(false)

	for _, r := range BreakdownRows(b, fm) {
		tw.Append(r)
	}
	tw.Render()

	fmt.Fprintln(w)
	for _, ins := range InsightLines(b, fm) {
		fmt.Fprintf(w, "%-8s %s\n         %s\n", ins.Title+":", ins.Value, ins.Detail)
	}
	return nil
}

func renderPresetTable(w io.Writer, rows []model.PresetRow) error {
	tw := tablewriter.NewWriter(w)
	header := []string{"ROLE"}
	for _, id := range form.PresetFields {
		header = append(header, strings.ToUpper(id.Label()))
	}
	tw.SetHeader(header)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	for _, r := range rows {
		tw.Append(presetCells(r))
	}
	tw.Render()
	return nil
}

func renderKVTable(w io.Writer, rows [][]string) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"KEY", "VALUE"})
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	for _, r := range rows {
		tw.Append(r)
	}
	tw.Render()
}

// ─── CSV / TSV ────────────────────────────────────────────────────────────────

func renderDelimited(w io.Writer, result *model.Result, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep

	switch result.Kind {
	case model.KindBreakdown:
		b, ok := result.Data.(model.Breakdown)
		if !ok {
			return fmt.Errorf("unexpected data type for breakdown")
		}
		_ = cw.Write([]string{"metric", "value"})
		for _, r := range rawRows(b) {
			_ = cw.Write(r)
		}
	case model.KindPresets:
		rows, ok := result.Data.([]model.PresetRow)
		if !ok {
			return fmt.Errorf("unexpected data type for presets")
		}
		header := []string{"role"}
		for _, id := range form.PresetFields {
			header = append(header, string(id))
		}
		_ = cw.Write(header)
		for _, r := range rows {
			_ = cw.Write(presetCells(r))
		}
	case model.KindTable:
		if rows, ok := result.Data.([][]string); ok {
			_ = cw.Write([]string{"key", "value"})
			for _, r := range rows {
				_ = cw.Write(r)
			}
		}
	default:
		// Fallback: serialize as JSON on a single line
		b, _ := json.Marshal(result.Data)
		_ = cw.Write([]string{string(b)})
	}

	cw.Flush()
	return cw.Error()
}

// ─── Markdown ─────────────────────────────────────────────────────────────────

func renderMarkdown(w io.Writer, result *model.Result, fm *Formatter) error {
	switch result.Kind {
	case model.KindBreakdown:
		b, ok := result.Data.(model.Breakdown)
		if !ok {
			return renderJSON(w, result)
		}
		fmt.Fprintf(w, "**True hourly wage: %s**\n\n%s\n\n", fm.Money(b.Headline), CompareText(b, fm))
		fmt.Fprintf(w, "| FIELD | VALUE |\n|-------|------:|\n")
		for _, r := range BreakdownRows(b, fm) {
			fmt.Fprintf(w, "| %s | %s |\n", mdEscape(r[0]), mdEscape(r[1]))
		}
		return nil
	case model.KindPresets:
		rows, ok := result.Data.([]model.PresetRow)
		if !ok {
			return renderJSON(w, result)
		}
		fmt.Fprintf(w, "| ROLE |")
		for _, id := range form.PresetFields {
			fmt.Fprintf(w, " %s |", id.Label())
		}
		fmt.Fprintf(w, "\n|----|%s\n", strings.Repeat("----|", len(form.PresetFields)))
		for _, r := range rows {
			fmt.Fprintf(w, "| %s |\n", strings.Join(presetCells(r), " | "))
		}
		return nil
	default:
		return renderJSON(w, result)
	}
}

// ─── Text ─────────────────────────────────────────────────────────────────────

func renderText(w io.Writer, result *model.Result, fm *Formatter) error {
	b, ok := result.Data.(model.Breakdown)
	if !ok || result.Kind != model.KindBreakdown {
		return renderTable(w, result, fm)
	}
	s, err := Summary(&b, fm)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s+"\n")
	return err
}

// ─── Warnings Footer ─────────────────────────────────────────────────────────

// PrintFooter writes any result warnings to w.
func PrintFooter(w io.Writer, result *model.Result) {
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "⚠  %s\n", warn)
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// BreakdownRows returns the label/value pairs of a breakdown, formatted for
// display, in the order the calculator shows them.
func BreakdownRows(b model.Breakdown, fm *Formatter) [][]string {
	return [][]string{
		{"Annual pay counted", fm.Money(b.AnnualPayCounted)},
		{"Working weeks", fm.Num(b.WorkingWeeks, 1)},
		{"Scheduled hours/year", fm.Num(b.ScheduledHoursYear, 1)},
		{"Unpaid overtime hours/year", fm.Num(b.OvertimeHoursYear, 1)},
		{"Commute hours/year", fm.Num(b.CommuteHoursYear, 1)},
		{"Unpaid break hours/year", fm.Num(b.BreakHoursYear, 1)},
		{"Prep hours/year", fm.Num(b.PrepHoursYear, 1)},
		{"Total hours/year", fm.Num(b.TotalHoursYear, 1)},
		{"Nominal hourly", fm.Money(b.NominalHourly)},
		{"True hourly", fm.Money(b.TrueHourly)},
		{"True hourly after strain", fm.Money(b.TrueHourlyAfterStrain)},
	}
}

// rawRows returns unformatted metric/value pairs for machine formats.
func rawRows(b model.Breakdown) [][]string {
	v := util.FormatValue
	return [][]string{
		{"mode", string(b.Mode)},
		{"role", string(b.Role)},
		{"annual_pay_counted", v(b.AnnualPayCounted)},
		{"working_weeks", v(b.WorkingWeeks)},
		{"scheduled_hours_year", v(b.ScheduledHoursYear)},
		{"overtime_hours_year", v(b.OvertimeHoursYear)},
		{"break_hours_year", v(b.BreakHoursYear)},
		{"commute_hours_year", v(b.CommuteHoursYear)},
		{"prep_hours_year", v(b.PrepHoursYear)},
		{"total_hours_year", v(b.TotalHoursYear)},
		{"nominal_hourly", v(b.NominalHourly)},
		{"true_hourly", v(b.TrueHourly)},
		{"strain_pct", v(b.StrainPct)},
		{"true_hourly_after_strain", v(b.TrueHourlyAfterStrain)},
		{"headline", v(b.Headline)},
		{"commute_hours", v(b.Insights.CommuteHours)},
		{"unpaid_hours", v(b.Insights.UnpaidHours)},
		{"commute_weeks", v(b.Insights.CommuteWeeks)},
		{"unpaid_weeks", v(b.Insights.UnpaidWeeks)},
		{"commute_value", v(b.Insights.CommuteValue)},
		{"unpaid_value", v(b.Insights.UnpaidValue)},
		{"drop_pct", v(b.Insights.DropPct)},
	}
}

func presetCells(r model.PresetRow) []string {
	cells := []string{string(r.Role)}
	for _, id := range form.PresetFields {
		cells = append(cells, util.FormatValue(r.Values[id]))
	}
	return cells
}

func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
