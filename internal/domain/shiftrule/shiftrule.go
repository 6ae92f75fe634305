package shiftrule

import (
	"time"

	"github.com/apexauto/garage-api/internal/httperr"
)

// MaxShiftDuration caps a single recorded shift.
const MaxShiftDuration = 24 * time.Hour

// Validate checks the interval invariants of a shift: start strictly before
// end and duration at most 24 hours. Overlap with other shifts is enforced
// at the storage layer.
func Validate(start, end time.Time) error {
	if !start.Before(end) {
		return httperr.ErrBusinessf(httperr.CodeInvalidShiftRange, "shift start must be before end")
	}
	if end.Sub(start) > MaxShiftDuration {
		return httperr.ErrBusinessf(httperr.CodeShiftTooLong, "shift may not exceed 24 hours")
	}
	return nil
}

// Overlaps reports whether two half-open intervals intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
