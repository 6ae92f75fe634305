package payroll

import (
	"context"
	"time"

	domain "github.com/apexauto/garage-api/internal/domain/payroll"
	"github.com/apexauto/garage-api/internal/metrics"
)

// ComputePayroll derives an employee's pay summary for a date range. Nothing
// is persisted; the summary is recomputed from shift rows on every call.
type ComputePayroll struct {
	repo domain.Repository
	loc  *time.Location
}

func NewComputePayroll(repo domain.Repository, loc *time.Location) *ComputePayroll {
	if loc == nil {
		loc = time.Local
	}
	return &ComputePayroll{repo: repo, loc: loc}
}

func (uc *ComputePayroll) Execute(
	ctx context.Context,
	employeeID uint,
	from time.Time,
	to time.Time,
) (*domain.Summary, error) {

	emp, err := uc.repo.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	shifts, err := uc.repo.ListShiftsInRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	summary := domain.ComputeSummary(emp.HourlyRate, shifts, uc.loc)

	metrics.PayrollQueriesTotal.Inc()

	return &summary, nil
}
