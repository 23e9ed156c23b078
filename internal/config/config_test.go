package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/derickschaefer/truewage/internal/config"
	"github.com/derickschaefer/truewage/internal/model"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

var envKeys = []string{config.EnvFormat, config.EnvLocale, config.EnvMode, config.EnvRole}

// chdir changes the working directory to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

// clearEnv unsets every TRUEWAGE_* variable for the duration of the test.
// The variables are unset rather than emptied so a .env file can still
// supply them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

// writeConfig writes a truewage.json into dir.
func writeConfig(t *testing.T, dir string, f config.File) {
	t.Helper()
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), append(data, '\n'), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// ─── Defaults ─────────────────────────────────────────────────────────────────

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != config.DefaultFormat {
		t.Errorf("Format: expected %q, got %q", config.DefaultFormat, cfg.Format)
	}
	if cfg.Locale != config.DefaultLocale {
		t.Errorf("Locale: expected %q, got %q", config.DefaultLocale, cfg.Locale)
	}
	if cfg.Mode != model.ModeSalary || cfg.Role != model.RoleCustom {
		t.Errorf("selections: expected salary/custom, got %s/%s", cfg.Mode, cfg.Role)
	}
	if cfg.ConfigPath != "" {
		t.Errorf("ConfigPath should be empty without a file, got %q", cfg.ConfigPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

// ─── File layer ───────────────────────────────────────────────────────────────

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, config.File{DefaultFormat: "json", Locale: "de-DE", Mode: "hourly", Role: "manager"})
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "json" || cfg.Locale != "de-DE" {
		t.Errorf("format/locale: got %q/%q", cfg.Format, cfg.Locale)
	}
	if cfg.Mode != model.ModeHourly || cfg.Role != model.RoleManager {
		t.Errorf("selections: got %s/%s", cfg.Mode, cfg.Role)
	}
	if !strings.HasSuffix(cfg.ConfigPath, config.DefaultConfigFile) {
		t.Errorf("ConfigPath: got %q", cfg.ConfigPath)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	chdir(t, dir)

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

// ─── Env layer ────────────────────────────────────────────────────────────────

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, config.File{DefaultFormat: "json", Role: "manager"})
	chdir(t, dir)
	t.Setenv(config.EnvFormat, "csv")
	t.Setenv(config.EnvRole, "director")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "csv" {
		t.Errorf("Format: expected env csv, got %q", cfg.Format)
	}
	if cfg.Role != model.RoleDirector {
		t.Errorf("Role: expected env director, got %s", cfg.Role)
	}
}

func TestDotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.DefaultEnvFile), []byte("TRUEWAGE_MODE=hourly\nTRUEWAGE_LOCALE=fr-FR\n"), 0600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != model.ModeHourly {
		t.Errorf("Mode: expected hourly from .env, got %s", cfg.Mode)
	}
	if cfg.Locale != "fr-FR" {
		t.Errorf("Locale: expected fr-FR from .env, got %q", cfg.Locale)
	}
}

func TestProcessEnvBeatsDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.DefaultEnvFile), []byte("TRUEWAGE_ROLE=hourly\n"), 0600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	chdir(t, dir)
	t.Setenv(config.EnvRole, "supervisor")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Role != model.RoleSupervisor {
		t.Errorf("Role: expected process env supervisor, got %s", cfg.Role)
	}
}

// ─── Validate ─────────────────────────────────────────────────────────────────

func TestValidateRejectsBadValues(t *testing.T) {
	base := config.Config{Format: "table", Locale: "en-US", Mode: model.ModeSalary, Role: model.RoleCustom}

	cases := map[string]func(c *config.Config){
		"format": func(c *config.Config) { c.Format = "xml" },
		"mode":   func(c *config.Config) { c.Mode = "weekly" },
		"role":   func(c *config.Config) { c.Role = "ceo" },
		"locale": func(c *config.Config) { c.Locale = "??" },
	}
	for name, mutate := range cases {
		c := base
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

// ─── Template / WriteFile ─────────────────────────────────────────────────────

func TestTemplateRoundTrip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := config.WriteFile(filepath.Join(dir, config.DefaultConfigFile), config.Template()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("template config should validate: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, config.DefaultConfigFile))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}
