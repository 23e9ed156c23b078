// Package wage computes the true hourly wage and its supporting breakdown
// from a snapshot of input values. All functions are pure; no I/O.
package wage

import (
	"errors"
	"math"

	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/util"
)

// ErrInsufficientData is returned when the snapshot yields no positive pay
// or no positive total hours. No partial result accompanies it.
var ErrInsufficientData = errors.New("insufficient input: enter pay and time details")

const (
	weeksPerYear   = 52
	maxStrainPct   = 20
	maxDropPct     = 99.9
	hoursPerWeekEq = 40 // one "workweek" for the equivalence insights
)

// ─── Calculate ────────────────────────────────────────────────────────────────

// Calculate turns a snapshot into a Breakdown. Every input is coerced to a
// finite number first; negative time inputs are floored at zero.
func Calculate(s model.Snapshot) (model.Breakdown, error) {
	in := func(f model.FieldID) float64 { return util.Finite(s.Value(f)) }

	scheduledWk := in(model.FieldScheduledHours)
	overtimeWk := in(model.FieldUnpaidOvertime)
	breakMins := in(model.FieldUnpaidBreakMins)
	commuteMins := in(model.FieldCommuteMins)
	daysWk := in(model.FieldDaysPerWeek)
	ptoWeeks := in(model.FieldPTOWeeks)
	prepMins := in(model.FieldPrepMins)
	bonus := in(model.FieldAnnualBonus)
	benefits := in(model.FieldBenefitsValue)
	strainPct := ClampStrain(in(model.FieldStrainPct))

	weeks := WorkingWeeks(ptoWeeks)
	workingDays := math.Max(0, daysWk) * weeks

	var basePay float64
	if s.Mode == model.ModeHourly {
		basePay = in(model.FieldHourlyRate) * scheduledWk * weeks
	} else {
		basePay = in(model.FieldAnnualSalary)
	}
	pay := math.Max(0, basePay+bonus+benefits)

	b := model.Breakdown{
		Mode:               s.Mode,
		Role:               s.Role,
		AnnualPayCounted:   pay,
		WorkingWeeks:       weeks,
		ScheduledHoursYear: math.Max(0, scheduledWk) * weeks,
		OvertimeHoursYear:  math.Max(0, overtimeWk) * weeks,
		BreakHoursYear:     math.Max(0, breakMins) / 60 * workingDays,
		CommuteHoursYear:   math.Max(0, commuteMins) * 2 / 60 * workingDays,
		PrepHoursYear:      math.Max(0, prepMins) / 60 * workingDays,
		StrainPct:          strainPct,
	}
	b.TotalHoursYear = b.ScheduledHoursYear + b.OvertimeHoursYear +
		b.BreakHoursYear + b.CommuteHoursYear + b.PrepHoursYear

	// Finite inputs can still overflow; an infinite pay or hour total has no
	// meaningful rate.
	if !isFinite(pay) || !isFinite(b.TotalHoursYear) || pay <= 0 || b.TotalHoursYear <= 0 {
		return model.Breakdown{}, ErrInsufficientData
	}

	b.TrueHourly = pay / b.TotalHoursYear
	// Floor of one hour keeps the rate finite when only commute/break/prep
	// hours are positive.
	b.NominalHourly = pay / math.Max(1, b.ScheduledHoursYear)
	b.TrueHourlyAfterStrain = b.TrueHourly * (1 - strainPct/100)

	b.Headline = b.TrueHourly
	if b.StrainApplied() {
		b.Headline = b.TrueHourlyAfterStrain
	}

	b.Insights = insights(b)
	if !finiteBreakdown(b) {
		return model.Breakdown{}, ErrInsufficientData
	}
	return b, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finiteBreakdown reports whether every figure of b is finite, so any
// result returned can be rendered in every output format.
func finiteBreakdown(b model.Breakdown) bool {
	for _, v := range []float64{
		b.AnnualPayCounted, b.WorkingWeeks, b.ScheduledHoursYear, b.OvertimeHoursYear,
		b.BreakHoursYear, b.CommuteHoursYear, b.PrepHoursYear, b.TotalHoursYear,
		b.NominalHourly, b.TrueHourly, b.TrueHourlyAfterStrain, b.Headline,
		b.Insights.CommuteHours, b.Insights.UnpaidHours, b.Insights.CommuteWeeks,
		b.Insights.UnpaidWeeks, b.Insights.CommuteValue, b.Insights.UnpaidValue,
		b.Insights.DropPct,
	} {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// ClampStrain bounds a strain percentage to [0, 20]; non-finite input is 0.
func ClampStrain(pct float64) float64 {
	return util.Clamp(util.Finite(pct), 0, maxStrainPct)
}

// WorkingWeeks returns 52 minus PTO weeks, bounded to [0, 52].
func WorkingWeeks(ptoWeeks float64) float64 {
	return util.Clamp(weeksPerYear-util.Finite(ptoWeeks), 0, weeksPerYear)
}

// insights values unpaid time at the nominal rate, so the cost is expressed
// in the pay the user recognizes. DropPct compares the pre-strain true rate.
func insights(b model.Breakdown) model.Insights {
	unpaid := b.OvertimeHoursYear + b.BreakHoursYear + b.PrepHoursYear
	return model.Insights{
		CommuteHours: b.CommuteHoursYear,
		UnpaidHours:  unpaid,
		CommuteWeeks: b.CommuteHoursYear / hoursPerWeekEq,
		UnpaidWeeks:  unpaid / hoursPerWeekEq,
		CommuteValue: b.NominalHourly * b.CommuteHoursYear,
		UnpaidValue:  b.NominalHourly * unpaid,
		DropPct:      util.Clamp((1-b.TrueHourly/b.NominalHourly)*100, 0, maxDropPct),
	}
}

// ─── Comparison ───────────────────────────────────────────────────────────────

// Comparison is the headline wage measured against the nominal rate.
type Comparison struct {
	Delta    float64 `json:"delta"`     // Headline - NominalHourly
	Negative bool    `json:"negative"`  // Delta < 0
	AbsDelta float64 `json:"abs_delta"` // |Delta|
}

// Compare measures the headline wage against the nominal hourly rate.
func Compare(b model.Breakdown) Comparison {
	d := b.Headline - b.NominalHourly
	return Comparison{Delta: d, Negative: d < 0, AbsDelta: math.Abs(d)}
}
