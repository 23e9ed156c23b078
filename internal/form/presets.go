package form

import "github.com/derickschaefer/truewage/internal/model"

// Preset maps the preset-influenced fields to their default magnitudes.
type Preset map[model.FieldID]float64

// PresetFields lists the fields a role preset may populate, in the order
// they are applied.
var PresetFields = []model.FieldID{
	model.FieldUnpaidOvertime,
	model.FieldUnpaidBreakMins,
	model.FieldPrepMins,
	model.FieldStrainPct,
}

// presets holds the common responsibility patterns. RoleCustom is absent on
// purpose: it applies nothing.
var presets = map[model.Role]Preset{
	model.RoleHourly: {
		model.FieldUnpaidOvertime:  0,
		model.FieldUnpaidBreakMins: 30,
		model.FieldPrepMins:        10,
		model.FieldStrainPct:       0,
	},
	model.RoleSupervisor: {
		model.FieldUnpaidOvertime:  3,
		model.FieldUnpaidBreakMins: 20,
		model.FieldPrepMins:        15,
		model.FieldStrainPct:       3,
	},
	model.RoleManager: {
		model.FieldUnpaidOvertime:  7,
		model.FieldUnpaidBreakMins: 10,
		model.FieldPrepMins:        20,
		model.FieldStrainPct:       6,
	},
	model.RoleDirector: {
		model.FieldUnpaidOvertime:  12,
		model.FieldUnpaidBreakMins: 0,
		model.FieldPrepMins:        30,
		model.FieldStrainPct:       10,
	},
}

// PresetFor returns the preset bundle for role, or false for RoleCustom and
// unknown roles.
func PresetFor(role model.Role) (Preset, bool) {
	p, ok := presets[role]
	if !ok {
		return nil, false
	}
	out := make(Preset, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out, true
}

// PresetRows returns every non-custom preset in selection order.
func PresetRows() []model.PresetRow {
	var rows []model.PresetRow
	for _, r := range model.Roles {
		p, ok := PresetFor(r)
		if !ok {
			continue
		}
		rows = append(rows, model.PresetRow{Role: r, Values: p})
	}
	return rows
}
