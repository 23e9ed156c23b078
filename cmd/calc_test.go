package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/derickschaefer/truewage/internal/config"
	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/render"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

// isolate runs the test in an empty directory with no TRUEWAGE_* settings.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range []string{config.EnvFormat, config.EnvLocale, config.EnvMode, config.EnvRole} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	t.Cleanup(func() { globalFlags.Format = "" })
	return dir
}

// runCalcArgs executes a fresh calc command and returns its stdout.
func runCalcArgs(t *testing.T, args ...string) string {
	t.Helper()
	out, _ := runCalcStreams(t, args...)
	return out
}

// runCalcStreams executes a fresh calc command and returns stdout and stderr.
func runCalcStreams(t *testing.T, args ...string) (string, string) {
	t.Helper()
	c := newCalcCmd()
	var out, errOut bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&errOut)
	c.SetArgs(args)
	if err := c.Execute(); err != nil {
		t.Fatalf("calc %v: %v", args, err)
	}
	return out.String(), errOut.String()
}

// stubClipboard replaces the clipboard writer for the duration of the test.
func stubClipboard(t *testing.T, fn func(string) error) {
	t.Helper()
	orig := writeClipboard
	writeClipboard = fn
	t.Cleanup(func() { writeClipboard = orig })
}

// calcJSON runs calc with --format json and decodes the breakdown.
func calcJSON(t *testing.T, args ...string) model.Breakdown {
	t.Helper()
	globalFlags.Format = render.FormatJSON
	out := runCalcArgs(t, args...)
	var env struct {
		Kind string          `json:"kind"`
		Data model.Breakdown `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if env.Kind != model.KindBreakdown {
		t.Fatalf("kind: expected breakdown, got %q", env.Kind)
	}
	return env.Data
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// ─── calc ─────────────────────────────────────────────────────────────────────

func TestCalcWorkedExample(t *testing.T) {
	isolate(t)
	b := calcJSON(t, "--salary", "$80,000", "--overtime", "5", "--commute-mins", "20", "--pto-weeks", "2")
	if !approxEqual(b.TrueHourly, 31.4754, 1e-3) {
		t.Errorf("TrueHourly: expected ≈31.4754, got %g", b.TrueHourly)
	}
	if !approxEqual(b.Insights.DropPct, 21.3115, 1e-3) {
		t.Errorf("DropPct: expected ≈21.3115, got %g", b.Insights.DropPct)
	}
}

func TestCalcFlagsSurviveRolePreset(t *testing.T) {
	isolate(t)
	b := calcJSON(t, "--role", "manager", "--salary", "90000", "--break-mins", "45")
	if b.Role != model.RoleManager {
		t.Errorf("Role: expected manager, got %s", b.Role)
	}
	// 45 typed mins × 5 days × 49 weeks; the manager preset's 10 must not win.
	if !approxEqual(b.BreakHoursYear, 183.75, 1e-9) {
		t.Errorf("BreakHoursYear: expected 183.75, got %g", b.BreakHoursYear)
	}
	// Overtime was left alone, so the preset's 7 hrs/week applies.
	if !approxEqual(b.OvertimeHoursYear, 343, 1e-9) {
		t.Errorf("OvertimeHoursYear: expected 343, got %g", b.OvertimeHoursYear)
	}
}

func TestCalcHourlyMode(t *testing.T) {
	isolate(t)
	b := calcJSON(t, "--mode", "hourly", "--hourly-rate", "25", "--salary", "999999")
	if b.Mode != model.ModeHourly {
		t.Errorf("Mode: expected hourly, got %s", b.Mode)
	}
	if !approxEqual(b.AnnualPayCounted, 25*40*49, 1e-9) {
		t.Errorf("AnnualPayCounted: expected %g, got %g", float64(25*40*49), b.AnnualPayCounted)
	}
}

func TestCalcInsufficientPrintsPrompt(t *testing.T) {
	isolate(t)
	out := runCalcArgs(t)
	if strings.TrimSpace(out) != render.PromptInsufficient {
		t.Errorf("expected insufficient prompt, got %q", out)
	}
}

func TestCalcRejectsUnknownRole(t *testing.T) {
	isolate(t)
	c := newCalcCmd()
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{"--role", "ceo", "--salary", "1"})
	if err := c.Execute(); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestCalcConfigDefaultsApply(t *testing.T) {
	dir := isolate(t)
	if err := config.WriteFile(filepath.Join(dir, config.DefaultConfigFile), config.File{Mode: "hourly"}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b := calcJSON(t, "--hourly-rate", "30")
	if b.Mode != model.ModeHourly {
		t.Errorf("Mode: expected hourly from config, got %s", b.Mode)
	}
}

func TestCalcScenarioThenFlags(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "job.toml")
	content := "role = \"director\"\n\n[fields]\nannual_salary = 120000\ncommute_mins = 30\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	b := calcJSON(t, "--scenario", path, "--commute-mins", "10")
	if b.Role != model.RoleDirector {
		t.Errorf("Role: expected director from scenario, got %s", b.Role)
	}
	if b.AnnualPayCounted != 120000 {
		t.Errorf("AnnualPayCounted: expected 120000, got %g", b.AnnualPayCounted)
	}
	// Flag beats scenario: 10 mins × 2 trips / 60 × 5 days × 49 weeks.
	if !approxEqual(b.CommuteHoursYear, 10.0*2/60*5*49, 1e-9) {
		t.Errorf("CommuteHoursYear: got %g", b.CommuteHoursYear)
	}
}

func TestCalcSummaryAndChart(t *testing.T) {
	isolate(t)
	out := runCalcArgs(t, "--salary", "80000", "--summary", "--chart")
	if !strings.HasPrefix(out, "True Wage Calculator\n") {
		t.Errorf("summary should lead the output:\n%s", out)
	}
	if !strings.Contains(out, "Annual hours") || !strings.Contains(out, "Scheduled") {
		t.Errorf("chart should follow the summary:\n%s", out)
	}
}

func TestCalcWritesWorkbook(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "wage.xlsx")
	runCalcArgs(t, "--salary", "80000", "--xlsx", path)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected workbook: %v", err)
	}
}

// ─── Export outcomes ──────────────────────────────────────────────────────────

func TestCalcClipboardFailureIsWarning(t *testing.T) {
	isolate(t)
	stubClipboard(t, func(string) error { return errors.New("no display") })
	globalFlags.Format = render.FormatJSON

	out, errOut := runCalcStreams(t, "--salary", "80000", "--copy")
	var env struct {
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if len(env.Warnings) != 1 || !strings.Contains(env.Warnings[0], "no display") {
		t.Errorf("expected clipboard warning in result, got %v", env.Warnings)
	}
	if !strings.Contains(errOut, "⚠  clipboard unavailable: no display") {
		t.Errorf("footer should report the warning on stderr, got %q", errOut)
	}
}

func TestCalcCopySucceeds(t *testing.T) {
	isolate(t)
	var copied string
	stubClipboard(t, func(s string) error { copied = s; return nil })

	_, errOut := runCalcStreams(t, "--salary", "80000", "--copy")
	if !strings.HasPrefix(copied, "True Wage Calculator\n") {
		t.Errorf("clipboard should receive the summary, got %q", copied)
	}
	if strings.Contains(errOut, "⚠") {
		t.Errorf("no warning expected, got %q", errOut)
	}
}

func TestCalcExportWithoutResult(t *testing.T) {
	isolate(t)
	copied := false
	stubClipboard(t, func(string) error { copied = true; return nil })

	out, errOut := runCalcStreams(t, "--copy")
	if strings.TrimSpace(out) != render.PromptInsufficient {
		t.Errorf("expected insufficient prompt, got %q", out)
	}
	if !strings.Contains(errOut, render.ErrNothingToExport.Error()) {
		t.Errorf("expected nothing-to-export notice, got %q", errOut)
	}
	if copied {
		t.Error("nothing should reach the clipboard without a result")
	}
}

func TestCalcPromptOnlyWithoutExportFlags(t *testing.T) {
	isolate(t)
	_, errOut := runCalcStreams(t)
	if errOut != "" {
		t.Errorf("plain calc without data should not print export notices, got %q", errOut)
	}
}
