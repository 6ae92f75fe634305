package httperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Business error codes raised by the settlement and payroll cores.
const (
	CodeAppointmentNotFound = "appointment_not_found"
	CodeAlreadyCompleted    = "appointment_already_completed"
	CodeInvalidState        = "invalid_state"
	CodePartNotFound        = "part_not_found"
	CodeInsufficientStock   = "insufficient_stock"
	CodeInvalidQuantity     = "invalid_quantity"
	CodeEmployeeNotFound    = "employee_not_found"
	CodeShiftOverlap        = "shift_overlap"
	CodeInvalidShiftRange   = "invalid_shift_range"
	CodeShiftTooLong        = "shift_too_long"
)

// BusinessError is a rule violation detected by the domain or usecase layer.
// Handlers map codes to HTTP statuses; Detail carries the human message.
type BusinessError struct {
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return e.Code + ": " + e.Detail
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessf(code, format string, args ...any) error {
	return BusinessError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

// IsExclusionConflict reports whether err is a Postgres exclusion-constraint
// violation (SQLSTATE 23P01). The shifts table carries an exclusion
// constraint on (employee_id, time range), so an overlapping insert that
// slips past the in-transaction check still surfaces here.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}
