// Package config handles loading and resolving truewage configuration.
// Resolution order (later layers win):
//  1. Built-in defaults
//  2. truewage.json in the current working directory
//  3. Environment variables (a .env file in the working directory is loaded
//     first; variables already set in the environment take precedence)
//  4. CLI flags, applied by the caller after Load
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/render"
)

const (
	DefaultConfigFile = "truewage.json"
	DefaultEnvFile    = ".env"
	DefaultFormat     = render.FormatTable
	DefaultLocale     = render.DefaultLocale
	DefaultMode       = model.ModeSalary
	DefaultRole       = model.RoleCustom

	EnvFormat = "TRUEWAGE_FORMAT"
	EnvLocale = "TRUEWAGE_LOCALE"
	EnvMode   = "TRUEWAGE_MODE"
	EnvRole   = "TRUEWAGE_ROLE"
)

// File is the on-disk representation of truewage.json.
type File struct {
	DefaultFormat string `json:"default_format"`
	Locale        string `json:"locale"`
	Mode          string `json:"mode"`
	Role          string `json:"role"`
}

// Config is the fully-resolved runtime configuration.
// All callers use this struct; the File is only read during loading.
type Config struct {
	Format     string
	Locale     string
	Mode       model.PayMode
	Role       model.Role
	ConfigPath string // path of the truewage.json that was loaded (empty if none found)

	// Runtime overrides set from CLI flags after Load()
	Quiet bool
	Debug bool
}

// Load resolves configuration from all sources.
func Load() (*Config, error) {
	cfg := &Config{
		Format: DefaultFormat,
		Locale: DefaultLocale,
		Mode:   DefaultMode,
		Role:   DefaultRole,
	}

	// Layer 1: truewage.json (lowest priority). A missing file is fine;
	// a malformed one is an error.
	f, path, err := loadFile()
	switch {
	case err == nil:
		applyFile(cfg, f, path)
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	// Layer 2: environment, seeded from .env when present.
	_ = godotenv.Load(DefaultEnvFile)
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv(EnvMode); v != "" {
		cfg.Mode = model.PayMode(v)
	}
	if v := os.Getenv(EnvRole); v != "" {
		cfg.Role = model.Role(v)
	}

	return cfg, nil
}

// Validate returns an error if any resolved value is unusable.
func (c *Config) Validate() error {
	if !render.ValidFormat(c.Format) {
		return fmt.Errorf("invalid format %q: expected table|json|csv|tsv|md|text", c.Format)
	}
	if _, err := model.ParsePayMode(string(c.Mode)); err != nil {
		return err
	}
	if _, err := model.ParseRole(string(c.Role)); err != nil {
		return err
	}
	if _, err := render.NewFormatter(c.Locale); err != nil {
		return err
	}
	return nil
}

// loadFile attempts to read truewage.json from the current working directory.
func loadFile() (*File, string, error) {
	path, err := filepath.Abs(DefaultConfigFile)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%s not found at %s: %w", DefaultConfigFile, path, os.ErrNotExist)
		}
		return nil, "", fmt.Errorf("reading %s: %w", DefaultConfigFile, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w", DefaultConfigFile, err)
	}
	return &f, path, nil
}

// applyFile copies values from a parsed File into cfg,
// skipping any fields that are zero/empty.
func applyFile(cfg *Config, f *File, path string) {
	cfg.ConfigPath = path
	if f.DefaultFormat != "" {
		cfg.Format = f.DefaultFormat
	}
	if f.Locale != "" {
		cfg.Locale = f.Locale
	}
	if f.Mode != "" {
		cfg.Mode = model.PayMode(f.Mode)
	}
	if f.Role != "" {
		cfg.Role = model.Role(f.Role)
	}
}

// Template returns a File populated with sensible defaults, suitable for
// writing an initial truewage.json via `truewage config init`.
func Template() File {
	return File{
		DefaultFormat: DefaultFormat,
		Locale:        DefaultLocale,
		Mode:          string(DefaultMode),
		Role:          string(DefaultRole),
	}
}

// WriteFile serialises a File to the given path.
func WriteFile(path string, f File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0600)
}
