package billing

import (
	"context"

	"github.com/apexauto/garage-api/internal/models"
)

// Repository is the persistence contract of the settlement engine. The
// ForUpdate reads take row locks that must hold for the duration of the
// surrounding transaction.
//
// Lookups on missing rows return httperr.BusinessError values
// (appointment_not_found, part_not_found) rather than driver errors.
type Repository interface {
	// InTx runs fn inside one atomic transaction. The Repository handed to
	// fn participates in that transaction; any error rolls everything back.
	InTx(ctx context.Context, fn func(Repository) error) error

	GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	GetInventoryItemForUpdate(ctx context.Context, id uint) (*models.InventoryItem, error)
	DecrementStock(ctx context.Context, itemID uint, quantity int) error

	CreateLineItem(ctx context.Context, item *models.AppointmentItem) error
	ListLineItems(ctx context.Context, appointmentID uint) ([]models.AppointmentItem, error)

	CreateTransaction(ctx context.Context, tx *models.Transaction) error
}
