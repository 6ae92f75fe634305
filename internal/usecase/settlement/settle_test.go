package settlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/apexauto/garage-api/internal/domain/appointment"
	"github.com/apexauto/garage-api/internal/domain/billing"
	"github.com/apexauto/garage-api/internal/httperr"
	"github.com/apexauto/garage-api/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

// fakeRepo mimics the transactional store: InTx runs the callback against a
// deep copy and only adopts it on success, so a failed settlement leaves the
// original state untouched, exactly like a rolled-back transaction.
type fakeRepo struct {
	appointments map[uint]models.Appointment
	inventory    map[uint]models.InventoryItem
	items        []models.AppointmentItem
	txs          []models.Transaction

	failCreateTransaction bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		appointments: map[uint]models.Appointment{},
		inventory:    map[uint]models.InventoryItem{},
	}
}

func (r *fakeRepo) clone() *fakeRepo {
	c := &fakeRepo{
		appointments:          make(map[uint]models.Appointment, len(r.appointments)),
		inventory:             make(map[uint]models.InventoryItem, len(r.inventory)),
		items:                 append([]models.AppointmentItem(nil), r.items...),
		txs:                   append([]models.Transaction(nil), r.txs...),
		failCreateTransaction: r.failCreateTransaction,
	}
	for k, v := range r.appointments {
		c.appointments[k] = v
	}
	for k, v := range r.inventory {
		c.inventory[k] = v
	}
	return c
}

func (r *fakeRepo) InTx(ctx context.Context, fn func(billing.Repository) error) error {
	working := r.clone()
	if err := fn(working); err != nil {
		return err
	}

	r.appointments = working.appointments
	r.inventory = working.inventory
	r.items = working.items
	r.txs = working.txs
	return nil
}

func (r *fakeRepo) GetAppointmentForUpdate(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return &ap, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) GetInventoryItemForUpdate(_ context.Context, id uint) (*models.InventoryItem, error) {
	item, ok := r.inventory[id]
	if !ok {
		return nil, httperr.ErrBusinessf(httperr.CodePartNotFound, "inventory item %d not found", id)
	}
	return &item, nil
}

func (r *fakeRepo) DecrementStock(_ context.Context, itemID uint, quantity int) error {
	item := r.inventory[itemID]
	item.Quantity -= quantity
	r.inventory[itemID] = item
	return nil
}

func (r *fakeRepo) CreateLineItem(_ context.Context, item *models.AppointmentItem) error {
	item.ID = uint(len(r.items) + 1)
	r.items = append(r.items, *item)
	return nil
}

func (r *fakeRepo) ListLineItems(_ context.Context, appointmentID uint) ([]models.AppointmentItem, error) {
	var out []models.AppointmentItem
	for _, it := range r.items {
		if it.AppointmentID == appointmentID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateTransaction(_ context.Context, tx *models.Transaction) error {
	if r.failCreateTransaction {
		return errors.New("db connection lost")
	}
	tx.ID = uint(len(r.txs) + 1)
	r.txs = append(r.txs, *tx)
	return nil
}

var _ billing.Repository = (*fakeRepo)(nil)

// ======================================================
// FIXTURES
// ======================================================

func fixedClock() time.Time {
	return time.Date(2026, 4, 10, 16, 30, 0, 0, time.UTC)
}

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.appointments[1] = models.Appointment{
		ID:          1,
		ServiceType: "Brake Service",
		Status:      string(domain.StatusInProgress),
	}
	repo.inventory[10] = models.InventoryItem{
		ID:        10,
		Name:      "Brake Pad Set",
		Quantity:  4,
		UnitPrice: 25,
	}
	repo.inventory[11] = models.InventoryItem{
		ID:        11,
		Name:      "Oil Filter",
		Quantity:  1,
		UnitPrice: 12.50,
	}
	return repo
}

func newUC(repo *fakeRepo) *SettleAppointment {
	return NewSettleAppointment(repo, nil, fixedClock)
}

// ======================================================
// TESTS
// ======================================================

func TestSettleSuccess(t *testing.T) {
	repo := seededRepo()
	uc := newUC(repo)

	result, err := uc.Execute(context.Background(), 1, Input{
		AppointmentID: 1,
		LaborCost:     180,
		ServiceCharge: 40,
		Parts:         []PartRequest{{InventoryItemID: 10, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), result.AppointmentID)
	assert.InDelta(t, 180.0, result.Labor, 1e-9)
	assert.InDelta(t, 40.0, result.ServiceTotal, 1e-9)
	assert.InDelta(t, 50.0, result.PartsTotal, 1e-9)
	assert.InDelta(t, 270.0, result.Subtotal, 1e-9)
	assert.InDelta(t, 13.50, result.Tax, 1e-9)
	assert.InDelta(t, 283.50, result.Total, 1e-9)

	// appointment completed with labor cost and timestamp
	ap := repo.appointments[1]
	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, fixedClock(), *ap.CompletedAt)
	assert.InDelta(t, 180.0, ap.LaborCost, 1e-9)

	// stock decremented exactly once
	assert.Equal(t, 2, repo.inventory[10].Quantity)

	// one part, one labor, one service line item
	items, _ := repo.ListLineItems(context.Background(), 1)
	require.Len(t, items, 3)
	assert.Equal(t, models.ItemTypePart, items[0].ItemType)
	assert.Equal(t, "Brake Pad Set", items[0].Description)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 50.0, items[0].TotalPrice, 1e-9)
	assert.Equal(t, models.ItemTypeLabor, items[1].ItemType)
	assert.Equal(t, "Labor - Brake Service", items[1].Description)
	assert.Equal(t, models.ItemTypeService, items[2].ItemType)

	// one income transaction for the grand total
	require.Len(t, repo.txs, 1)
	tx := repo.txs[0]
	assert.Equal(t, models.TransactionTypeIncome, tx.TxType)
	assert.Equal(t, models.TransactionCategoryService, tx.Category)
	assert.InDelta(t, 283.50, tx.Amount, 1e-9)
	assert.NotEmpty(t, tx.Reference)
	require.NotNil(t, tx.AppointmentID)
	assert.Equal(t, uint(1), *tx.AppointmentID)
}

func TestSettleLaborOnly(t *testing.T) {
	repo := seededRepo()
	uc := newUC(repo)

	result, err := uc.Execute(context.Background(), 1, Input{
		AppointmentID: 1,
		LaborCost:     100,
	})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.Subtotal, 1e-9)
	assert.InDelta(t, 5.0, result.Tax, 1e-9)

	items, _ := repo.ListLineItems(context.Background(), 1)
	require.Len(t, items, 1)
	assert.Equal(t, models.ItemTypeLabor, items[0].ItemType)
}

func TestSettleZeroQuantityPartsSkipped(t *testing.T) {
	repo := seededRepo()
	uc := newUC(repo)

	_, err := uc.Execute(context.Background(), 1, Input{
		AppointmentID: 1,
		LaborCost:     50,
		Parts:         []PartRequest{{InventoryItemID: 10, Quantity: 0}},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, repo.inventory[10].Quantity)

	items, _ := repo.ListLineItems(context.Background(), 1)
	require.Len(t, items, 1)
}

func TestSettleTwiceConflicts(t *testing.T) {
	repo := seededRepo()
	uc := newUC(repo)

	in := Input{
		AppointmentID: 1,
		LaborCost:     100,
		Parts:         []PartRequest{{InventoryItemID: 10, Quantity: 1}},
	}

	_, err := uc.Execute(context.Background(), 1, in)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), 1, in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyCompleted))

	// inventory decremented exactly once
	assert.Equal(t, 3, repo.inventory[10].Quantity)
	assert.Len(t, repo.txs, 1)
}

func TestSettleCancelledAppointmentConflicts(t *testing.T) {
	repo := seededRepo()
	ap := repo.appointments[1]
	ap.Status = string(domain.StatusCancelled)
	repo.appointments[1] = ap

	uc := newUC(repo)

	_, err := uc.Execute(context.Background(), 1, Input{AppointmentID: 1, LaborCost: 100})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	assert.Empty(t, repo.txs)
}

func TestSettleAppointmentNotFound(t *testing.T) {
	repo := seededRepo()
	uc := newUC(repo)

	_, err := uc.Execute(context.Background(), 1, Input{AppointmentID: 999, LaborCost: 100})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

func TestSettlePartNotFound(t *testing.T) {
	repo := seededRepo()
	uc := newUC(repo)

	_, err := uc.Execute(context.Background(), 1, Input{
		AppointmentID: 1,
		LaborCost:     100,
		Parts:         []PartRequest{{InventoryItemID: 999, Quantity: 1}},
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodePartNotFound))

	// nothing committed
	assert.Equal(t, string(domain.StatusInProgress), repo.appointments[1].Status)
	assert.Empty(t, repo.items)
	assert.Empty(t, repo.txs)
}

func TestSettleInsufficientStockRollsBackEverything(t *testing.T) {
	repo := seededRepo()
	uc := newUC(repo)

	// first part is in stock, second is not: nothing may be committed
	_, err := uc.Execute(context.Background(), 1, Input{
		AppointmentID: 1,
		LaborCost:     100,
		Parts: []PartRequest{
			{InventoryItemID: 10, Quantity: 2},
			{InventoryItemID: 11, Quantity: 5},
		},
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInsufficientStock))

	be, _ := httperr.AsBusiness(err)
	assert.Contains(t, be.Detail, "Oil Filter")

	// pre-attempt state fully preserved
	assert.Equal(t, 4, repo.inventory[10].Quantity)
	assert.Equal(t, 1, repo.inventory[11].Quantity)
	assert.Equal(t, string(domain.StatusInProgress), repo.appointments[1].Status)
	assert.Empty(t, repo.items)
	assert.Empty(t, repo.txs)
}

func TestSettleNegativeQuantityRejected(t *testing.T) {
	repo := seededRepo()
	uc := newUC(repo)

	_, err := uc.Execute(context.Background(), 1, Input{
		AppointmentID: 1,
		LaborCost:     100,
		Parts:         []PartRequest{{InventoryItemID: 10, Quantity: -1}},
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidQuantity))
	assert.Equal(t, 4, repo.inventory[10].Quantity)
}

func TestSettleNegativeChargesRejected(t *testing.T) {
	repo := seededRepo()
	uc := newUC(repo)

	_, err := uc.Execute(context.Background(), 1, Input{AppointmentID: 1, LaborCost: -10})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidQuantity))

	_, err = uc.Execute(context.Background(), 1, Input{AppointmentID: 1, ServiceCharge: -1})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidQuantity))
}

func TestSettleMidTransactionFailureRollsBack(t *testing.T) {
	repo := seededRepo()
	repo.failCreateTransaction = true
	uc := newUC(repo)

	_, err := uc.Execute(context.Background(), 1, Input{
		AppointmentID: 1,
		LaborCost:     100,
		Parts:         []PartRequest{{InventoryItemID: 10, Quantity: 2}},
	})
	require.Error(t, err)
	assert.False(t, httperr.IsBusiness(err, httperr.CodeInsufficientStock))

	// the failure happened after the decrement and the status change, yet
	// nothing is visible afterwards
	assert.Equal(t, 4, repo.inventory[10].Quantity)
	assert.Equal(t, string(domain.StatusInProgress), repo.appointments[1].Status)
	assert.Empty(t, repo.items)
	assert.Empty(t, repo.txs)
}

func TestSettleLineItemsStableAcrossReads(t *testing.T) {
	repo := seededRepo()
	uc := newUC(repo)

	_, err := uc.Execute(context.Background(), 1, Input{
		AppointmentID: 1,
		LaborCost:     80,
		Parts:         []PartRequest{{InventoryItemID: 11, Quantity: 1}},
	})
	require.NoError(t, err)

	first, err := repo.ListLineItems(context.Background(), 1)
	require.NoError(t, err)
	second, err := repo.ListLineItems(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
