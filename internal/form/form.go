// Package form tracks the calculator's input fields and how each value
// arrived, so role presets can fill fields without clobbering anything the
// user typed.
//
// Precedence, from strongest to weakest:
//
//	UserEdited    never overwritten until ResetAll
//	PresetFilled  always superseded by the next preset
//	Unset         overwritten only while empty
package form

import (
	"log/slog"
	"strings"

	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/util"
)

// strainEmpty is the empty-equivalent text of the strain field, which always
// carries a numeric baseline rather than a blank.
const strainEmpty = "0"

// baseline holds the field texts established on New and ResetAll.
// Fields not listed start empty.
var baseline = map[model.FieldID]string{
	model.FieldScheduledHours:  "40",
	model.FieldUnpaidOvertime:  "0",
	model.FieldUnpaidBreakMins: "30",
	model.FieldCommuteMins:     "0",
	model.FieldDaysPerWeek:     "5",
	model.FieldPTOWeeks:        "3",
	model.FieldStrainPct:       strainEmpty,
}

// Field is one input with its raw text and provenance.
type Field struct {
	ID         model.FieldID
	Text       string
	Provenance model.Provenance
}

// Value returns the coerced numeric value of the field's text.
func (f Field) Value() float64 {
	return util.ParseNumber(f.Text)
}

// isEmpty reports whether the field holds its empty-equivalent content.
func (f Field) isEmpty() bool {
	if f.ID == model.FieldStrainPct {
		return f.Text == strainEmpty
	}
	return strings.TrimSpace(f.Text) == ""
}

// Form owns the input fields and the session selections (role and pay mode).
// It is not safe for concurrent use.
type Form struct {
	fields map[model.FieldID]*Field
	role   model.Role
	mode   model.PayMode
}

// New returns a Form at baseline: defaults filled, role custom, mode salary.
func New() *Form {
	f := &Form{fields: make(map[model.FieldID]*Field, len(model.AllFields))}
	f.ResetAll()
	return f
}

// Role returns the active role preset.
func (f *Form) Role() model.Role { return f.role }

// PayMode returns the active pay mode.
func (f *Form) PayMode() model.PayMode { return f.mode }

// Field returns a copy of the field with the given id.
func (f *Form) Field(id model.FieldID) Field {
	if fl, ok := f.fields[id]; ok {
		return *fl
	}
	return Field{ID: id}
}

// Fields returns copies of every field in display order.
func (f *Form) Fields() []Field {
	out := make([]Field, 0, len(model.AllFields))
	for _, id := range model.AllFields {
		out = append(out, f.Field(id))
	}
	return out
}

// ─── Edits ────────────────────────────────────────────────────────────────────

// MarkEdited stamps the field as user-edited. The transition is one-way
// until ResetAll.
func (f *Form) MarkEdited(id model.FieldID) {
	fl := f.field(id)
	if fl == nil {
		return
	}
	fl.Provenance = model.UserEdited
}

// SetText replaces the field's text as a direct user edit.
func (f *Form) SetText(id model.FieldID, text string) {
	fl := f.field(id)
	if fl == nil {
		return
	}
	fl.Text = text
	f.MarkEdited(id)
}

// ─── Presets ──────────────────────────────────────────────────────────────────

// presetMayOverwrite is the single precedence rule for preset application.
func presetMayOverwrite(fl *Field) bool {
	switch fl.Provenance {
	case model.UserEdited:
		return false
	case model.PresetFilled:
		return true
	default:
		return fl.isEmpty()
	}
}

// ApplyPreset fills the fields covered by role's preset wherever the
// precedence rule allows. RoleCustom and unknown roles are no-ops. Fields the
// preset does not cover are left untouched.
func (f *Form) ApplyPreset(role model.Role) {
	preset, ok := PresetFor(role)
	if !ok {
		return
	}
	for _, id := range PresetFields {
		v, ok := preset[id]
		if !ok {
			continue
		}
		fl := f.field(id)
		if fl == nil {
			continue
		}
		if !presetMayOverwrite(fl) {
			slog.Debug("preset skipped field", "role", role, "field", id, "provenance", fl.Provenance)
			continue
		}
		fl.Text = util.FormatValue(v)
		fl.Provenance = model.PresetFilled
		slog.Debug("preset filled field", "role", role, "field", id, "value", fl.Text)
	}
}

// SelectRole makes role the single active role and, unless it is
// RoleCustom, applies its preset.
func (f *Form) SelectRole(role model.Role) error {
	if _, err := model.ParseRole(string(role)); err != nil {
		return err
	}
	f.role = role
	slog.Debug("role selected", "role", role)
	if role != model.RoleCustom {
		f.ApplyPreset(role)
	}
	return nil
}

// SelectPayMode makes mode the single active pay mode. Field values and
// provenance are never touched.
func (f *Form) SelectPayMode(mode model.PayMode) error {
	if _, err := model.ParsePayMode(string(mode)); err != nil {
		return err
	}
	f.mode = mode
	slog.Debug("pay mode selected", "mode", mode)
	return nil
}

// ─── Reset ────────────────────────────────────────────────────────────────────

// ResetAll clears every field, restores the baseline texts stamped
// PresetFilled so a later role selection can still replace them, and
// returns the role and pay mode to custom and salary. Idempotent. A zero
// Form becomes usable after ResetAll.
func (f *Form) ResetAll() {
	if f.fields == nil {
		f.fields = make(map[model.FieldID]*Field, len(model.AllFields))
	}
	for _, id := range model.AllFields {
		f.fields[id] = &Field{ID: id, Provenance: model.Unset}
	}
	f.role = model.RoleCustom
	f.mode = model.ModeSalary
	for _, id := range model.AllFields {
		fl := f.fields[id]
		fl.Text = baseline[id]
		fl.Provenance = model.PresetFilled
	}
	slog.Debug("form reset")
}

// ─── Snapshot ─────────────────────────────────────────────────────────────────

// Snapshot returns a value copy of every field value plus the session
// selections. The copy shares nothing with the Form.
func (f *Form) Snapshot() model.Snapshot {
	values := make(map[model.FieldID]float64, len(f.fields))
	for id, fl := range f.fields {
		values[id] = fl.Value()
	}
	return model.Snapshot{Values: values, Mode: f.mode, Role: f.role}
}

func (f *Form) field(id model.FieldID) *Field {
	return f.fields[id]
}
