package appointment

import "github.com/apexauto/garage-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// transitions is the single source of truth for status changes. Completed
// and cancelled are terminal. A pending appointment may be settled directly
// (walk-in jobs that were never explicitly started).
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition validates from→to against the table. A second attempt to
// complete an already-completed appointment is distinguished so callers can
// answer 409 instead of a generic invalid state.
func Transition(from, to Status) error {
	if CanTransition(from, to) {
		return nil
	}
	if from == StatusCompleted && to == StatusCompleted {
		return httperr.ErrBusiness(httperr.CodeAlreadyCompleted)
	}
	return httperr.ErrBusiness(httperr.CodeInvalidState)
}

func InitialStatus() Status {
	return StatusPending
}
