package appointment

import (
	"time"

	"github.com/apexauto/garage-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Start(ap *models.Appointment) error {
	if err := Transition(Status(ap.Status), StatusInProgress); err != nil {
		return err
	}

	ap.Status = string(StatusInProgress)
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := Transition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := Transition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}
