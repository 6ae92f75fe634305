package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/apexauto/garage-api/internal/cache"
	"github.com/apexauto/garage-api/internal/httperr"
	"github.com/apexauto/garage-api/internal/httpresp"
	"github.com/apexauto/garage-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type TransactionHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	loc   *time.Location
}

func NewTransactionHandler(db *gorm.DB, c *cache.Cache, loc *time.Location) *TransactionHandler {
	return &TransactionHandler{db: db, cache: c, loc: loc}
}

// ======================================================
// LIST
// ======================================================

func (h *TransactionHandler) List(c *gin.Context) {
	category := c.Query("category")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	q := h.db.Model(&models.Transaction{})

	if category != "" {
		q = q.Where("category = ?", category)
	}

	if fromStr != "" {
		if from, err := parseDateIn(fromStr, h.loc); err == nil {
			q = q.Where("recorded_at >= ?", from)
		}
	}

	if toStr != "" {
		if to, err := parseDateIn(toStr, h.loc); err == nil {
			q = q.Where("recorded_at < ?", to.Add(24*time.Hour))
		}
	}

	var txs []models.Transaction
	if err := q.Order("recorded_at DESC").Find(&txs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_transactions", "Failed to list transactions.")
		return
	}

	httpresp.List(c, txs)
}

// ======================================================
// FINANCE SUMMARY
// ======================================================

type FinanceSummary struct {
	TotalIncome  float64            `json:"total_income"`
	Transactions int64              `json:"transactions"`
	ByCategory   map[string]float64 `json:"by_category"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

// Summary aggregates the transaction ledger. The result is cached in redis
// for five minutes and dropped whenever a settlement writes a new
// transaction.
func (h *TransactionHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	var summary FinanceSummary
	if h.cache.Get(ctx, cache.KeyFinanceSummary, &summary) {
		httpresp.OK(c, summary)
		return
	}

	var total float64
	if err := h.db.Model(&models.Transaction{}).
		Where("tx_type = ?", models.TransactionTypeIncome).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {

		httperr.Internal(c, "failed_to_aggregate", "Failed to compute finance summary.")
		return
	}

	var count int64
	if err := h.db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_aggregate", "Failed to compute finance summary.")
		return
	}

	type categoryRow struct {
		Category string
		Total    float64
	}

	var rows []categoryRow
	if err := h.db.Model(&models.Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Group("category").
		Scan(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_aggregate", "Failed to compute finance summary.")
		return
	}

	byCategory := make(map[string]float64, len(rows))
	for _, r := range rows {
		byCategory[r.Category] = r.Total
	}

	summary = FinanceSummary{
		TotalIncome:  total,
		Transactions: count,
		ByCategory:   byCategory,
		GeneratedAt:  time.Now().In(h.loc),
	}

	h.cache.Set(ctx, cache.KeyFinanceSummary, summary, 5*time.Minute)

	httpresp.OK(c, summary)
}
