// Package model defines the canonical data types used throughout truewage.
// These types are shared by the form, the wage engine, the renderers and the
// front ends, and include the result envelope every command returns.
package model

import (
	"fmt"
	"time"
)

// ─── Input Fields ─────────────────────────────────────────────────────────────

// FieldID names one input quantity of the calculator.
type FieldID string

const (
	FieldAnnualSalary    FieldID = "annual_salary"
	FieldHourlyRate      FieldID = "hourly_rate"
	FieldScheduledHours  FieldID = "scheduled_hours"
	FieldUnpaidOvertime  FieldID = "unpaid_overtime"
	FieldUnpaidBreakMins FieldID = "unpaid_break_mins"
	FieldCommuteMins     FieldID = "commute_mins"
	FieldDaysPerWeek     FieldID = "days_per_week"
	FieldPTOWeeks        FieldID = "pto_weeks"
	FieldPrepMins        FieldID = "prep_mins"
	FieldAnnualBonus     FieldID = "annual_bonus"
	FieldBenefitsValue   FieldID = "benefits_value"
	FieldStrainPct       FieldID = "strain_pct"
)

// AllFields lists every input field in display order.
var AllFields = []FieldID{
	FieldAnnualSalary,
	FieldHourlyRate,
	FieldScheduledHours,
	FieldUnpaidOvertime,
	FieldUnpaidBreakMins,
	FieldCommuteMins,
	FieldDaysPerWeek,
	FieldPTOWeeks,
	FieldPrepMins,
	FieldAnnualBonus,
	FieldBenefitsValue,
	FieldStrainPct,
}

var fieldLabels = map[FieldID]string{
	FieldAnnualSalary:    "Annual salary",
	FieldHourlyRate:      "Hourly rate",
	FieldScheduledHours:  "Scheduled hours/week",
	FieldUnpaidOvertime:  "Unpaid overtime hrs/week",
	FieldUnpaidBreakMins: "Unpaid break mins/day",
	FieldCommuteMins:     "Commute mins one-way",
	FieldDaysPerWeek:     "Work days/week",
	FieldPTOWeeks:        "PTO weeks/year",
	FieldPrepMins:        "Prep mins/day",
	FieldAnnualBonus:     "Annual bonus",
	FieldBenefitsValue:   "Benefits value",
	FieldStrainPct:       "Work strain %",
}

// Label returns the human-readable name of the field.
func (f FieldID) Label() string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return string(f)
}

// Valid reports whether f is one of AllFields.
func (f FieldID) Valid() bool {
	_, ok := fieldLabels[f]
	return ok
}

// ParseFieldID resolves a field name, returning an error for unknown names.
func ParseFieldID(s string) (FieldID, error) {
	f := FieldID(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown field %q", s)
	}
	return f, nil
}

// Provenance records how a field's current value arrived.
type Provenance int

const (
	Unset Provenance = iota
	PresetFilled
	UserEdited
)

func (p Provenance) String() string {
	switch p {
	case PresetFilled:
		return "preset"
	case UserEdited:
		return "edited"
	default:
		return "unset"
	}
}

// ─── Session Selections ───────────────────────────────────────────────────────

// PayMode selects which base-pay formula is active.
type PayMode string

const (
	ModeSalary PayMode = "salary"
	ModeHourly PayMode = "hourly"
)

// PayModes lists the valid pay modes.
var PayModes = []PayMode{ModeSalary, ModeHourly}

// ParsePayMode resolves a pay mode name.
func ParsePayMode(s string) (PayMode, error) {
	switch PayMode(s) {
	case ModeSalary, ModeHourly:
		return PayMode(s), nil
	}
	return "", fmt.Errorf("invalid pay mode %q: expected salary|hourly", s)
}

// Role names a role preset. RoleCustom applies nothing.
type Role string

const (
	RoleCustom     Role = "custom"
	RoleHourly     Role = "hourly"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
	RoleDirector   Role = "director"
)

// Roles lists the valid roles in selection order.
var Roles = []Role{RoleCustom, RoleHourly, RoleSupervisor, RoleManager, RoleDirector}

// ParseRole resolves a role name.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid role %q: expected custom|hourly|supervisor|manager|director", s)
}

// ─── Snapshot ─────────────────────────────────────────────────────────────────

// Snapshot is a value copy of every input the wage engine reads.
// Missing entries in Values read as 0.
type Snapshot struct {
	Values map[FieldID]float64 `json:"values"`
	Mode   PayMode             `json:"mode"`
	Role   Role                `json:"role"`
}

// Value returns the numeric value of f, or 0 if absent.
func (s Snapshot) Value(f FieldID) float64 {
	return s.Values[f]
}

// ─── Calculation Result ───────────────────────────────────────────────────────

// Insights are derived metrics expressed at the nominal (paid) hourly rate.
type Insights struct {
	CommuteHours float64 `json:"commute_hours"`
	UnpaidHours  float64 `json:"unpaid_hours"`
	CommuteWeeks float64 `json:"commute_weeks"`
	UnpaidWeeks  float64 `json:"unpaid_weeks"`
	CommuteValue float64 `json:"commute_value"`
	UnpaidValue  float64 `json:"unpaid_value"`
	DropPct      float64 `json:"drop_pct"`
}

// Breakdown is the result of one wage calculation.
type Breakdown struct {
	Mode                  PayMode  `json:"mode"`
	Role                  Role     `json:"role"`
	AnnualPayCounted      float64  `json:"annual_pay_counted"`
	WorkingWeeks          float64  `json:"working_weeks"`
	ScheduledHoursYear    float64  `json:"scheduled_hours_year"`
	OvertimeHoursYear     float64  `json:"overtime_hours_year"`
	BreakHoursYear        float64  `json:"break_hours_year"`
	CommuteHoursYear      float64  `json:"commute_hours_year"`
	PrepHoursYear         float64  `json:"prep_hours_year"`
	TotalHoursYear        float64  `json:"total_hours_year"`
	NominalHourly         float64  `json:"nominal_hourly"`
	TrueHourly            float64  `json:"true_hourly"`
	StrainPct             float64  `json:"strain_pct"`
	TrueHourlyAfterStrain float64  `json:"true_hourly_after_strain"`
	Headline              float64  `json:"headline"`
	Insights              Insights `json:"insights"`
}

// StrainApplied reports whether a non-zero work strain adjustment was used.
func (b Breakdown) StrainApplied() bool {
	return b.StrainPct > 0
}

// ─── Result Envelope ─────────────────────────────────────────────────────────

// Result is the uniform envelope returned by every command.
// The Data field holds the typed payload; Kind identifies what is in it.
// Renderers switch on Kind to format output appropriately.
type Result struct {
	Kind        string      `json:"kind"`
	GeneratedAt time.Time   `json:"generated_at"`
	Command     string      `json:"command"`
	Data        interface{} `json:"data"`
	Warnings    []string    `json:"warnings,omitempty"`
}

// Kind constants for Result.Kind.
const (
	KindBreakdown = "breakdown"
	KindPresets   = "presets"
	KindTable     = "table"
)

// PresetRow is one role preset, flattened for rendering.
type PresetRow struct {
	Role   Role                `json:"role"`
	Values map[FieldID]float64 `json:"values"`
}
