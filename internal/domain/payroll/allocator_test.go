package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexauto/garage-api/internal/models"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return loc
}

// 2026-01-05 is a Monday, 2026-01-10 a Saturday, 2026-01-11 a Sunday.
func at(t *testing.T, day int, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2026, time.January, day, hour, minute, 0, 0, mustLoc(t))
}

func TestAllocateShift(t *testing.T) {
	tests := []struct {
		name         string
		start, end   time.Time
		wantRegular  float64
		wantOvertime float64
	}{
		{
			name:         "inside window",
			start:        at(t, 5, 9, 0),
			end:          at(t, 5, 17, 0),
			wantRegular:  8,
			wantOvertime: 0,
		},
		{
			name:         "short shift inside window",
			start:        at(t, 5, 10, 0),
			end:          at(t, 5, 14, 30),
			wantRegular:  4.5,
			wantOvertime: 0,
		},
		{
			name:         "early start",
			start:        at(t, 5, 6, 0),
			end:          at(t, 5, 12, 0),
			wantRegular:  4,
			wantOvertime: 2,
		},
		{
			name:         "late end",
			start:        at(t, 5, 14, 0),
			end:          at(t, 5, 20, 0),
			wantRegular:  4,
			wantOvertime: 2,
		},
		{
			// Full window is 10h: 8 regular, 2 spill, plus 1 before and
			// 1 after.
			name:         "07:00-19:00 long weekday shift",
			start:        at(t, 5, 7, 0),
			end:          at(t, 5, 19, 0),
			wantRegular:  8,
			wantOvertime: 4,
		},
		{
			name:         "window fully worked caps at eight",
			start:        at(t, 5, 8, 0),
			end:          at(t, 5, 18, 0),
			wantRegular:  8,
			wantOvertime: 2,
		},
		{
			name:         "saturday counts entirely as overtime",
			start:        at(t, 10, 9, 0),
			end:          at(t, 10, 17, 0),
			wantRegular:  0,
			wantOvertime: 8,
		},
		{
			name:         "sunday counts entirely as overtime",
			start:        at(t, 11, 10, 0),
			end:          at(t, 11, 12, 30),
			wantRegular:  0,
			wantOvertime: 2.5,
		},
		{
			// Saturday 22:00 to Sunday 04:00: start day decides.
			name:         "weekend shift crossing midnight",
			start:        at(t, 10, 22, 0),
			end:          at(t, 11, 4, 0),
			wantRegular:  0,
			wantOvertime: 6,
		},
		{
			name:         "entirely before window",
			start:        at(t, 5, 5, 0),
			end:          at(t, 5, 7, 0),
			wantRegular:  0,
			wantOvertime: 2,
		},
		{
			name:         "entirely after window",
			start:        at(t, 5, 19, 0),
			end:          at(t, 5, 22, 0),
			wantRegular:  0,
			wantOvertime: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regular, overtime := AllocateShift(tt.start, tt.end)
			assert.InDelta(t, tt.wantRegular, regular, 1e-9, "regular hours")
			assert.InDelta(t, tt.wantOvertime, overtime, 1e-9, "overtime hours")
		})
	}
}

func TestComputeSummary(t *testing.T) {
	loc := mustLoc(t)

	shifts := []models.Shift{
		// Monday 09:00-17:00 → 8 regular
		{StartTime: at(t, 5, 9, 0), EndTime: at(t, 5, 17, 0)},
		// Tuesday 07:00-19:00 → 8 regular, 4 overtime
		{StartTime: at(t, 6, 7, 0), EndTime: at(t, 6, 19, 0)},
		// Saturday 09:00-13:00 → 4 overtime
		{StartTime: at(t, 10, 9, 0), EndTime: at(t, 10, 13, 0)},
	}

	s := ComputeSummary(20, shifts, loc)

	assert.InDelta(t, 20.0, s.HourlyRate, 1e-9)
	assert.InDelta(t, 30.0, s.OvertimeRate, 1e-9)
	assert.InDelta(t, 16.0, s.RegularHours, 1e-9)
	assert.InDelta(t, 8.0, s.OvertimeHours, 1e-9)
	assert.InDelta(t, 320.0, s.RegularPay, 1e-9)
	assert.InDelta(t, 240.0, s.OvertimePay, 1e-9)
	assert.InDelta(t, s.RegularPay+s.OvertimePay, s.TotalPay, 1e-9)
}

func TestComputeSummaryRounding(t *testing.T) {
	loc := mustLoc(t)

	// 1h45m at 17.77/h = 31.0975 → 31.10
	shifts := []models.Shift{
		{StartTime: at(t, 5, 10, 0), EndTime: at(t, 5, 11, 45)},
	}

	s := ComputeSummary(17.77, shifts, loc)

	assert.InDelta(t, 31.10, s.RegularPay, 1e-9)
	assert.InDelta(t, 0.0, s.OvertimePay, 1e-9)
	assert.InDelta(t, 31.10, s.TotalPay, 1e-9)
}

func TestComputeSummaryNoShifts(t *testing.T) {
	s := ComputeSummary(25, nil, mustLoc(t))

	assert.Zero(t, s.RegularHours)
	assert.Zero(t, s.OvertimeHours)
	assert.Zero(t, s.TotalPay)
	assert.InDelta(t, 37.5, s.OvertimeRate, 1e-9)
}
