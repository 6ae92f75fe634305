package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/apexauto/garage-api/internal/domain/billing"
	"github.com/apexauto/garage-api/internal/domain/payroll"
	"github.com/apexauto/garage-api/internal/httperr"
	"github.com/apexauto/garage-api/internal/models"
)

// GarageGormRepository backs both the settlement engine and the payroll
// allocator with one GORM handle. Inside InTx the handle is the transaction,
// so FOR UPDATE locks taken by the reads hold until commit or rollback.
type GarageGormRepository struct {
	db *gorm.DB
}

func NewGarageGormRepository(db *gorm.DB) *GarageGormRepository {
	return &GarageGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *GarageGormRepository) InTx(
	ctx context.Context,
	fn func(billing.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GarageGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *GarageGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, err
	}

	return &ap, nil
}

func (r *GarageGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Inventory
// --------------------------------------------------

func (r *GarageGormRepository) GetInventoryItemForUpdate(
	ctx context.Context,
	id uint,
) (*models.InventoryItem, error) {

	var item models.InventoryItem
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessf(httperr.CodePartNotFound, "inventory item %d not found", id)
		}
		return nil, err
	}

	return &item, nil
}

func (r *GarageGormRepository) DecrementStock(
	ctx context.Context,
	itemID uint,
	quantity int,
) error {
	return r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", itemID).
		Update("quantity", gorm.Expr("quantity - ?", quantity)).Error
}

// --------------------------------------------------
// Line items
// --------------------------------------------------

func (r *GarageGormRepository) CreateLineItem(
	ctx context.Context,
	item *models.AppointmentItem,
) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GarageGormRepository) ListLineItems(
	ctx context.Context,
	appointmentID uint,
) ([]models.AppointmentItem, error) {

	var items []models.AppointmentItem
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

// --------------------------------------------------
// Financial transactions
// --------------------------------------------------

func (r *GarageGormRepository) CreateTransaction(
	ctx context.Context,
	tx *models.Transaction,
) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// --------------------------------------------------
// Payroll reads
// --------------------------------------------------

func (r *GarageGormRepository) GetEmployee(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).First(&emp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeEmployeeNotFound)
		}
		return nil, err
	}

	return &emp, nil
}

func (r *GarageGormRepository) ListShiftsInRange(
	ctx context.Context,
	employeeID uint,
	from time.Time,
	to time.Time,
) ([]models.Shift, error) {

	var shifts []models.Shift
	if err := r.db.WithContext(ctx).
		Where(
			"employee_id = ? AND start_time >= ? AND start_time < ?",
			employeeID, from, to,
		).
		Order("start_time ASC").
		Find(&shifts).Error; err != nil {
		return nil, err
	}

	return shifts, nil
}

// Compile-time checks
var (
	_ billing.Repository = (*GarageGormRepository)(nil)
	_ payroll.Repository = (*GarageGormRepository)(nil)
)
