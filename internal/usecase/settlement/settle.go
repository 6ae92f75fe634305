package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apexauto/garage-api/internal/audit"
	domain "github.com/apexauto/garage-api/internal/domain/appointment"
	"github.com/apexauto/garage-api/internal/domain/billing"
	"github.com/apexauto/garage-api/internal/httperr"
	"github.com/apexauto/garage-api/internal/metrics"
	"github.com/apexauto/garage-api/internal/models"
)

type PartRequest struct {
	InventoryItemID uint `json:"inventory_item_id"`
	Quantity        int  `json:"quantity"`
}

type Input struct {
	AppointmentID uint
	LaborCost     float64
	ServiceCharge float64
	Parts         []PartRequest
}

type Result struct {
	AppointmentID uint    `json:"appointment_id"`
	Labor         float64 `json:"labor"`
	ServiceTotal  float64 `json:"service_total"`
	PartsTotal    float64 `json:"parts_total"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
}

// SettleAppointment finalizes an appointment's billing: consumes inventory,
// writes the line-item ledger, marks the appointment completed and records
// the income transaction. Everything happens in one transaction; any failure
// leaves no trace.
type SettleAppointment struct {
	repo  billing.Repository
	audit *audit.Dispatcher
	clock func() time.Time
}

func NewSettleAppointment(
	repo billing.Repository,
	auditDispatcher *audit.Dispatcher,
	clock func() time.Time,
) *SettleAppointment {
	if clock == nil {
		clock = time.Now
	}
	return &SettleAppointment{
		repo:  repo,
		audit: auditDispatcher,
		clock: clock,
	}
}

func (uc *SettleAppointment) Execute(
	ctx context.Context,
	actorID uint,
	in Input,
) (*Result, error) {

	if in.LaborCost < 0 || in.ServiceCharge < 0 {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidQuantity, "charges may not be negative")
	}
	for _, p := range in.Parts {
		if p.Quantity < 0 {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidQuantity, "part quantity may not be negative")
		}
	}

	var result Result

	err := uc.repo.InTx(ctx, func(tx billing.Repository) error {

		ap, err := tx.GetAppointmentForUpdate(ctx, in.AppointmentID)
		if err != nil {
			return err
		}

		// Refuse terminal states before anything is written.
		if domain.Status(ap.Status) == domain.StatusCompleted {
			return httperr.ErrBusiness(httperr.CodeAlreadyCompleted)
		}

		now := uc.clock()

		var partsTotal float64
		for _, p := range in.Parts {
			if p.Quantity == 0 {
				continue
			}

			item, err := tx.GetInventoryItemForUpdate(ctx, p.InventoryItemID)
			if err != nil {
				return err
			}

			if item.Quantity < p.Quantity {
				return httperr.ErrBusinessf(
					httperr.CodeInsufficientStock,
					"insufficient stock for %s", item.Name,
				)
			}

			lineTotal := billing.LineTotal(p.Quantity, item.UnitPrice)
			partsTotal += lineTotal

			if err := tx.CreateLineItem(ctx, &models.AppointmentItem{
				AppointmentID:   ap.ID,
				ItemType:        models.ItemTypePart,
				InventoryItemID: &item.ID,
				Description:     item.Name,
				Quantity:        p.Quantity,
				UnitPrice:       item.UnitPrice,
				TotalPrice:      lineTotal,
			}); err != nil {
				return err
			}

			if err := tx.DecrementStock(ctx, item.ID, p.Quantity); err != nil {
				return err
			}
		}

		if in.LaborCost > 0 {
			if err := tx.CreateLineItem(ctx, &models.AppointmentItem{
				AppointmentID: ap.ID,
				ItemType:      models.ItemTypeLabor,
				Description:   "Labor - " + ap.ServiceType,
				Quantity:      1,
				UnitPrice:     in.LaborCost,
				TotalPrice:    in.LaborCost,
			}); err != nil {
				return err
			}
		}

		if in.ServiceCharge > 0 {
			if err := tx.CreateLineItem(ctx, &models.AppointmentItem{
				AppointmentID: ap.ID,
				ItemType:      models.ItemTypeService,
				Description:   "Service charge",
				Quantity:      1,
				UnitPrice:     in.ServiceCharge,
				TotalPrice:    in.ServiceCharge,
			}); err != nil {
				return err
			}
		}

		totals := billing.ComputeTotals(in.LaborCost, partsTotal, in.ServiceCharge)

		if err := domain.Complete(ap, now); err != nil {
			return err
		}
		ap.LaborCost = in.LaborCost

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		if err := tx.CreateTransaction(ctx, &models.Transaction{
			Reference:     uuid.NewString(),
			AppointmentID: &ap.ID,
			Amount:        totals.Total,
			TxType:        models.TransactionTypeIncome,
			Category:      models.TransactionCategoryService,
			Note:          fmt.Sprintf("Settlement for appointment #%d", ap.ID),
			RecordedAt:    now,
		}); err != nil {
			return err
		}

		result = Result{
			AppointmentID: ap.ID,
			Labor:         totals.Labor,
			ServiceTotal:  totals.Service,
			PartsTotal:    totals.Parts,
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Total:         totals.Total,
		}
		return nil
	})

	if err != nil {
		reason := "internal"
		if be, ok := httperr.AsBusiness(err); ok {
			reason = be.Code
		}
		metrics.SettlementsFailedTotal.WithLabelValues(reason).Inc()
		return nil, err
	}

	metrics.SettlementsTotal.Inc()
	metrics.SettlementAmount.Observe(result.Total)

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			UserID:   &actorID,
			Action:   "appointment_settled",
			Entity:   "appointment",
			EntityID: &result.AppointmentID,
			Metadata: map[string]any{"total": result.Total},
		})
	}

	return &result, nil
}
