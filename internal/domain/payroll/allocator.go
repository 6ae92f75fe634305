package payroll

import (
	"time"

	"github.com/apexauto/garage-api/internal/models"
)

// Pay policy constants.
const (
	RegularWindowStart = 8.0  // 08:00
	RegularWindowEnd   = 18.0 // 18:00
	DailyRegularCap    = 8.0  // hours
	OvertimeMultiplier = 1.5
)

type Summary struct {
	HourlyRate    float64 `json:"hourly_rate"`
	OvertimeRate  float64 `json:"overtime_rate"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	RegularPay    float64 `json:"regular_pay"`
	OvertimePay   float64 `json:"overtime_pay"`
	TotalPay      float64 `json:"total_pay"`
}

func hourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// AllocateShift splits one worked interval into regular and overtime hours.
//
// Weekend shifts (by the start day) count entirely as overtime. Weekday
// shifts are split against the 08:00–18:00 window: hours before and after
// the window are overtime, hours inside it are regular up to the 8-hour
// daily cap, the excess spills into overtime. The before/during/after
// buckets are computed independently on decimal hour-of-day values; a shift
// crossing midnight keeps its start day's classification.
func AllocateShift(start, end time.Time) (regular, overtime float64) {
	total := end.Sub(start).Hours()

	if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return 0, total
	}

	s := hourOfDay(start)
	e := hourOfDay(end)

	if s < RegularWindowStart {
		overtime += min(e, RegularWindowStart) - s
	}

	if e > RegularWindowEnd {
		overtime += e - max(s, RegularWindowEnd)
	}

	overlapStart := max(s, RegularWindowStart)
	overlapEnd := min(e, RegularWindowEnd)
	if overlapStart < overlapEnd {
		during := overlapEnd - overlapStart
		if during <= DailyRegularCap {
			regular += during
		} else {
			regular += DailyRegularCap
			overtime += during - DailyRegularCap
		}
	}

	return regular, overtime
}

// ComputeSummary accumulates every shift into the two hour buckets and
// derives pay. Shift times are converted to loc before the hour-of-day
// arithmetic.
func ComputeSummary(hourlyRate float64, shifts []models.Shift, loc *time.Location) Summary {
	var regular, overtime float64

	for _, sh := range shifts {
		r, o := AllocateShift(sh.StartTime.In(loc), sh.EndTime.In(loc))
		regular += r
		overtime += o
	}

	overtimeRate := hourlyRate * OvertimeMultiplier
	regularPay := round2(regular * hourlyRate)
	overtimePay := round2(overtime * overtimeRate)

	return Summary{
		HourlyRate:    hourlyRate,
		OvertimeRate:  overtimeRate,
		RegularHours:  regular,
		OvertimeHours: overtime,
		RegularPay:    regularPay,
		OvertimePay:   overtimePay,
		TotalPay:      regularPay + overtimePay,
	}
}
