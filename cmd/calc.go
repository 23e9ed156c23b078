package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/derickschaefer/truewage/internal/app"
	"github.com/derickschaefer/truewage/internal/chart"
	"github.com/derickschaefer/truewage/internal/form"
	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/render"
	"github.com/derickschaefer/truewage/internal/scenario"
	"github.com/derickschaefer/truewage/internal/wage"
	"github.com/spf13/cobra"
)

// fieldFlag binds one calculator field to a calc flag. Values are taken as
// text, so "$80,000" and "80000" are equivalent.
type fieldFlag struct {
	name  string
	id    model.FieldID
	usage string
}

var fieldFlags = []fieldFlag{
	{"salary", model.FieldAnnualSalary, "annual salary (salary mode)"},
	{"hourly-rate", model.FieldHourlyRate, "hourly rate (hourly mode)"},
	{"hours", model.FieldScheduledHours, "scheduled hours per week (default 40)"},
	{"overtime", model.FieldUnpaidOvertime, "unpaid overtime hours per week"},
	{"break-mins", model.FieldUnpaidBreakMins, "unpaid break minutes per day (default 30)"},
	{"commute-mins", model.FieldCommuteMins, "one-way commute minutes per day"},
	{"days", model.FieldDaysPerWeek, "work days per week (default 5)"},
	{"pto-weeks", model.FieldPTOWeeks, "paid time off weeks per year (default 3)"},
	{"prep-mins", model.FieldPrepMins, "unpaid prep minutes per day"},
	{"bonus", model.FieldAnnualBonus, "annual bonus"},
	{"benefits", model.FieldBenefitsValue, "annual benefits value"},
	{"strain", model.FieldStrainPct, "work strain adjustment percent (0-20)"},
}

// calcOptions holds the non-field flags of the calc command.
type calcOptions struct {
	Mode     string
	Role     string
	Scenario string
	XLSX     string
	Chart    bool
	Copy     bool
	Summary  bool
}

// newCalcCmd builds the calc command. A constructor keeps flag state local
// to each command instance.
func newCalcCmd() *cobra.Command {
	var opts calcOptions

	c := &cobra.Command{
		Use:   "calc",
		Short: "Calculate your true hourly wage",
		Long: `Calculate a true hourly wage from pay and time inputs.

Flags you set are treated as typed values: a role preset never overwrites
them. Fields you leave alone keep their defaults or take the preset's values.

Resolution order for inputs (later wins):
  defaults → role preset → --scenario file → field flags`,
		Example: `  truewage calc --salary 80000 --commute-mins 30
  truewage calc --mode hourly --hourly-rate 28 --role supervisor
  truewage calc --role manager --salary 95000 --overtime 4 --chart
  truewage calc --scenario job.toml --summary --copy
  truewage calc --salary 80000 --xlsx breakdown.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := buildDeps()
			if err != nil {
				return err
			}
			w, closeFn, err := outputWriter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeFn()
			return runCalc(cmd, deps, opts, w)
		},
	}

	fl := c.Flags()
	for _, ff := range fieldFlags {
		fl.String(ff.name, "", ff.usage)
	}
	fl.StringVar(&opts.Mode, "mode", "", "pay mode: salary|hourly (default from config)")
	fl.StringVar(&opts.Role, "role", "", "role preset: custom|hourly|supervisor|manager|director")
	fl.StringVar(&opts.Scenario, "scenario", "", "read inputs from a TOML or JSON scenario file")
	fl.StringVar(&opts.XLSX, "xlsx", "", "also write the breakdown to an Excel workbook")
	fl.BoolVar(&opts.Chart, "chart", false, "append a bar chart of annual hours")
	fl.BoolVar(&opts.Copy, "copy", false, "copy the plain-text summary to the clipboard")
	fl.BoolVar(&opts.Summary, "summary", false, "print the plain-text summary instead of the table")

	_ = c.RegisterFlagCompletionFunc("mode", completeChoices("salary", "hourly"))
	_ = c.RegisterFlagCompletionFunc("role", completeChoices("custom", "hourly", "supervisor", "manager", "director"))
	return c
}

// runCalc assembles the form, calculates and writes the outcome to w.
// Export failures that leave the calculation intact are reported as result
// warnings in the footer.
func runCalc(cmd *cobra.Command, deps *app.Deps, opts calcOptions, w io.Writer) error {
	f, err := buildForm(cmd, deps, opts)
	if err != nil {
		return err
	}

	b, err := wage.Calculate(f.Snapshot())
	if errors.Is(err, wage.ErrInsufficientData) {
		slog.Debug("calculation skipped", "reason", err)
		fmt.Fprintln(w, render.PromptInsufficient)
		if opts.Copy || opts.XLSX != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠  %v\n", render.ErrNothingToExport)
		}
		return nil
	}
	if err != nil {
		return err
	}

	result := newResult(model.KindBreakdown, "calc", b)
	if opts.Copy {
		if err := copySummary(&b, deps.Formatter); err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		} else if !deps.Config.Quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "✓ Copied summary to clipboard")
		}
	}

	format := resolveFormat(deps.Config.Format)
	if opts.Summary {
		format = render.FormatText
	}
	if err := render.Render(w, result, format, deps.Formatter); err != nil {
		return err
	}

	if opts.Chart && (format == render.FormatTable || format == render.FormatText) {
		fmt.Fprintln(w)
		if err := chart.Hours(w, b, chart.BarOptions{}); err != nil {
			return err
		}
	}

	if opts.XLSX != "" {
		if err := render.WriteWorkbook(opts.XLSX, b, deps.Formatter); err != nil {
			return err
		}
		if !deps.Config.Quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", opts.XLSX)
		}
	}

	render.PrintFooter(cmd.ErrOrStderr(), result)
	return nil
}

// buildForm enters the scenario file and explicitly set field flags as user
// edits, then selects the pay mode and role. Selection comes last so the
// role preset fills only what the user left alone.
func buildForm(cmd *cobra.Command, deps *app.Deps, opts calcOptions) (*form.Form, error) {
	f := form.New()
	mode, role := deps.Config.Mode, deps.Config.Role

	if opts.Scenario != "" {
		s, err := scenario.Load(opts.Scenario)
		if err != nil {
			return nil, err
		}
		if err := s.Apply(f); err != nil {
			return nil, err
		}
		if s.Mode != "" {
			mode = s.Mode
		}
		if s.Role != "" {
			role = s.Role
		}
	}

	for _, ff := range fieldFlags {
		if !cmd.Flags().Changed(ff.name) {
			continue
		}
		text, err := cmd.Flags().GetString(ff.name)
		if err != nil {
			return nil, err
		}
		f.SetText(ff.id, text)
	}

	if opts.Mode != "" {
		m, err := model.ParsePayMode(opts.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	if opts.Role != "" {
		r, err := model.ParseRole(opts.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}

	if err := f.SelectPayMode(mode); err != nil {
		return nil, err
	}
	if err := f.SelectRole(role); err != nil {
		return nil, err
	}
	return f, nil
}

// writeClipboard is the system clipboard writer; tests replace it.
var writeClipboard = clipboard.WriteAll

// copySummary places the plain-text summary of b on the system clipboard.
func copySummary(b *model.Breakdown, fm *render.Formatter) error {
	s, err := render.Summary(b, fm)
	if err != nil {
		return err
	}
	if err := writeClipboard(s); err != nil {
		return fmt.Errorf("clipboard unavailable: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newCalcCmd())
}
