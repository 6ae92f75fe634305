package payroll

import (
	"context"
	"time"

	"github.com/apexauto/garage-api/internal/models"
)

// Repository is the read-side contract of the payroll allocator. GetEmployee
// returns httperr.ErrBusiness(employee_not_found) for a missing row.
type Repository interface {
	GetEmployee(ctx context.Context, id uint) (*models.Employee, error)
	ListShiftsInRange(ctx context.Context, employeeID uint, from, to time.Time) ([]models.Shift, error)
}
