package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/derickschaefer/truewage/internal/form"
	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/util"
	"github.com/derickschaefer/truewage/internal/wage"
)

var placeholders = map[model.FieldID]string{
	model.FieldAnnualSalary:  "e.g. 80000",
	model.FieldHourlyRate:    "e.g. 28.50",
	model.FieldPrepMins:      "0",
	model.FieldAnnualBonus:   "0",
	model.FieldBenefitsValue: "0",
}

// fieldsModel is the input list. It mirrors the form's field texts into
// text inputs and forwards every text change back to the form as an edit.
type fieldsModel struct {
	form   *form.Form
	inputs map[model.FieldID]textinput.Model
	cursor int
}

func newFieldsModel(f *form.Form) fieldsModel {
	m := fieldsModel{form: f, inputs: make(map[model.FieldID]textinput.Model, len(model.AllFields))}
	for _, id := range model.AllFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 20
		ti.Width = 14
		ti.Placeholder = placeholders[id]
		m.inputs[id] = ti
	}
	m.sync()
	m.refocus()
	return m
}

// visible returns the fields shown for the active pay mode: only one of
// salary and hourly rate is relevant at a time.
func (m fieldsModel) visible() []model.FieldID {
	hidden := model.FieldHourlyRate
	if m.form.PayMode() == model.ModeHourly {
		hidden = model.FieldAnnualSalary
	}
	out := make([]model.FieldID, 0, len(model.AllFields)-1)
	for _, id := range model.AllFields {
		if id != hidden {
			out = append(out, id)
		}
	}
	return out
}

// focused returns the id of the field under the cursor.
func (m fieldsModel) focused() model.FieldID {
	return m.visible()[m.cursor]
}

// sync copies every field text from the form into its input. Called after
// operations that change texts without keystrokes (presets, reset).
func (m *fieldsModel) sync() {
	for _, id := range model.AllFields {
		ti := m.inputs[id]
		if ti.Value() != m.form.Field(id).Text {
			ti.SetValue(m.form.Field(id).Text)
			ti.CursorEnd()
		}
		m.inputs[id] = ti
	}
}

// refocus clamps the cursor to the visible fields and focuses exactly one input.
func (m *fieldsModel) refocus() tea.Cmd {
	vis := m.visible()
	if m.cursor >= len(vis) {
		m.cursor = len(vis) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	var cmd tea.Cmd
	for _, id := range model.AllFields {
		ti := m.inputs[id]
		if id == vis[m.cursor] {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[id] = ti
	}
	return cmd
}

func (m fieldsModel) move(delta int) (fieldsModel, tea.Cmd) {
	n := len(m.visible())
	m.cursor = (m.cursor + delta + n) % n
	return m, m.refocus()
}

func (m fieldsModel) Update(msg tea.Msg) (fieldsModel, tea.Cmd) {
	id := m.focused()
	ti := m.inputs[id]
	before := ti.Value()

	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	m.inputs[id] = ti

	if ti.Value() != before {
		m.form.SetText(id, ti.Value())
	}
	return m, cmd
}

func (m fieldsModel) View() string {
	var sb strings.Builder
	for i, id := range m.visible() {
		fl := m.form.Field(id)

		label := labelStyle.Render(id.Label())
		prefix := "  "
		if i == m.cursor {
			label = focusedLabelStyle.Render(id.Label())
			prefix = "> "
		}

		extra := ""
		if id == model.FieldStrainPct {
			extra = strainLabel(fl.Value()) + "  "
		}
		extra += dimStyle.Render(provenanceHint(fl.Provenance))

		sb.WriteString(fmt.Sprintf("%s%s %s  %s\n", prefix, label, m.inputs[id].View(), extra))
	}
	return sb.String()
}

// strainLabel renders the effective strain percentage, e.g. "6%".
func strainLabel(v float64) string {
	return util.FormatValue(wage.ClampStrain(v)) + "%"
}

func provenanceHint(p model.Provenance) string {
	switch p {
	case model.UserEdited:
		return "edited"
	case model.PresetFilled:
		return "preset"
	default:
		return ""
	}
}
