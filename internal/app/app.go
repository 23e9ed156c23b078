// Package app wires together configuration and the output formatter into a
// single Deps struct that commands receive at runtime.
package app

import (
	"github.com/derickschaefer/truewage/internal/config"
	"github.com/derickschaefer/truewage/internal/form"
	"github.com/derickschaefer/truewage/internal/render"
)

// Deps holds all runtime dependencies injected into command Run functions.
type Deps struct {
	Config    *config.Config
	Formatter *render.Formatter
}

// New builds a Deps from resolved config. The config is validated first so
// commands never see an unusable format, locale, mode or role.
func New(cfg *config.Config) (*Deps, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fm, err := render.NewFormatter(cfg.Locale)
	if err != nil {
		return nil, err
	}
	return &Deps{Config: cfg, Formatter: fm}, nil
}

// NewForm returns a fresh form with the configured default pay mode and role
// selected. Default selections go through the same operations a user's
// selection would, so a configured role fills its preset.
func (d *Deps) NewForm() (*form.Form, error) {
	f := form.New()
	if err := f.SelectPayMode(d.Config.Mode); err != nil {
		return nil, err
	}
	if err := f.SelectRole(d.Config.Role); err != nil {
		return nil, err
	}
	return f, nil
}
