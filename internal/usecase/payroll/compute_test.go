package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexauto/garage-api/internal/httperr"
	"github.com/apexauto/garage-api/internal/models"
)

type fakeRepo struct {
	employees map[uint]models.Employee
	shifts    []models.Shift
}

func (r *fakeRepo) GetEmployee(_ context.Context, id uint) (*models.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeEmployeeNotFound)
	}
	return &emp, nil
}

func (r *fakeRepo) ListShiftsInRange(_ context.Context, employeeID uint, from, to time.Time) ([]models.Shift, error) {
	var out []models.Shift
	for _, s := range r.shifts {
		if s.EmployeeID == employeeID && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestComputePayrollEmployeeNotFound(t *testing.T) {
	uc := NewComputePayroll(&fakeRepo{employees: map[uint]models.Employee{}}, time.UTC)

	_, err := uc.Execute(context.Background(), 42, time.Now().AddDate(0, 0, -7), time.Now())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeEmployeeNotFound))
}

func TestComputePayrollMixedWeek(t *testing.T) {
	// 2026-01-05 is a Monday, 2026-01-10 a Saturday.
	day := func(d, h, m int) time.Time {
		return time.Date(2026, time.January, d, h, m, 0, 0, time.UTC)
	}

	repo := &fakeRepo{
		employees: map[uint]models.Employee{
			7: {ID: 7, Name: "Dana", HourlyRate: 22},
		},
		shifts: []models.Shift{
			// Monday 09:00-17:00 → 8 regular
			{EmployeeID: 7, StartTime: day(5, 9, 0), EndTime: day(5, 17, 0)},
			// Saturday 10:00-14:00 → 4 overtime
			{EmployeeID: 7, StartTime: day(10, 10, 0), EndTime: day(10, 14, 0)},
			// outside the queried range
			{EmployeeID: 7, StartTime: day(20, 9, 0), EndTime: day(20, 17, 0)},
			// belongs to someone else
			{EmployeeID: 8, StartTime: day(5, 9, 0), EndTime: day(5, 17, 0)},
		},
	}

	uc := NewComputePayroll(repo, time.UTC)

	summary, err := uc.Execute(context.Background(), 7, day(5, 0, 0), day(12, 0, 0))
	require.NoError(t, err)

	assert.InDelta(t, 22.0, summary.HourlyRate, 1e-9)
	assert.InDelta(t, 33.0, summary.OvertimeRate, 1e-9)
	assert.InDelta(t, 8.0, summary.RegularHours, 1e-9)
	assert.InDelta(t, 4.0, summary.OvertimeHours, 1e-9)
	assert.InDelta(t, 176.0, summary.RegularPay, 1e-9)
	assert.InDelta(t, 132.0, summary.OvertimePay, 1e-9)
	assert.InDelta(t, 308.0, summary.TotalPay, 1e-9)
}
