package form

import (
	"testing"

	"github.com/derickschaefer/truewage/internal/model"
)

// unsetForm returns a form whose fields are all Unset with the given texts,
// the state a field holds before any baseline or preset has touched it.
func unsetForm(texts map[model.FieldID]string) *Form {
	f := &Form{fields: make(map[model.FieldID]*Field, len(model.AllFields))}
	for _, id := range model.AllFields {
		f.fields[id] = &Field{ID: id, Text: texts[id], Provenance: model.Unset}
	}
	f.role = model.RoleCustom
	f.mode = model.ModeSalary
	return f
}

func TestPresetMayOverwriteUnset(t *testing.T) {
	cases := []struct {
		name string
		fl   Field
		want bool
	}{
		{"strain zero sentinel", Field{ID: model.FieldStrainPct, Text: "0"}, true},
		{"strain nonzero", Field{ID: model.FieldStrainPct, Text: "5"}, false},
		{"strain blank", Field{ID: model.FieldStrainPct, Text: ""}, false},
		{"empty text", Field{ID: model.FieldPrepMins, Text: ""}, true},
		{"whitespace text", Field{ID: model.FieldPrepMins, Text: "  "}, true},
		{"filled text", Field{ID: model.FieldPrepMins, Text: "12"}, false},
		{"edited empty", Field{ID: model.FieldPrepMins, Provenance: model.UserEdited}, false},
		{"preset filled", Field{ID: model.FieldPrepMins, Text: "12", Provenance: model.PresetFilled}, true},
	}
	for _, c := range cases {
		fl := c.fl
		if got := presetMayOverwrite(&fl); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestApplyPresetOnUnsetStrain(t *testing.T) {
	f := unsetForm(map[model.FieldID]string{model.FieldStrainPct: "0"})
	f.ApplyPreset(model.RoleManager)
	strain := f.Field(model.FieldStrainPct)
	if strain.Text != "6" || strain.Provenance != model.PresetFilled {
		t.Errorf("zero strain: expected preset 6, got %q (%s)", strain.Text, strain.Provenance)
	}

	f = unsetForm(map[model.FieldID]string{model.FieldStrainPct: "5"})
	f.ApplyPreset(model.RoleManager)
	strain = f.Field(model.FieldStrainPct)
	if strain.Text != "5" || strain.Provenance != model.Unset {
		t.Errorf("nonzero strain: expected untouched 5, got %q (%s)", strain.Text, strain.Provenance)
	}
}

func TestApplyPresetOnUnsetEmptyField(t *testing.T) {
	f := unsetForm(map[model.FieldID]string{model.FieldUnpaidBreakMins: "25"})
	f.ApplyPreset(model.RoleSupervisor)
	if got := f.Field(model.FieldPrepMins).Text; got != "15" {
		t.Errorf("empty prep: expected preset 15, got %q", got)
	}
	if got := f.Field(model.FieldUnpaidBreakMins).Text; got != "25" {
		t.Errorf("filled break: expected untouched 25, got %q", got)
	}
}

func TestResetAllOnZeroForm(t *testing.T) {
	var f Form
	f.ResetAll()
	if got := f.Field(model.FieldScheduledHours).Text; got != "40" {
		t.Errorf("scheduled hours: expected baseline 40, got %q", got)
	}
	if f.Role() != model.RoleCustom || f.PayMode() != model.ModeSalary {
		t.Errorf("selections: got %s/%s", f.Role(), f.PayMode())
	}
}
