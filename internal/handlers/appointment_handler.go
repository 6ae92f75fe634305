package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/apexauto/garage-api/internal/audit"
	"github.com/apexauto/garage-api/internal/cache"
	domain "github.com/apexauto/garage-api/internal/domain/appointment"
	"github.com/apexauto/garage-api/internal/domain/billing"
	"github.com/apexauto/garage-api/internal/httperr"
	"github.com/apexauto/garage-api/internal/httpresp"
	"github.com/apexauto/garage-api/internal/metrics"
	"github.com/apexauto/garage-api/internal/middleware"
	"github.com/apexauto/garage-api/internal/models"
	"github.com/apexauto/garage-api/internal/usecase/settlement"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db       *gorm.DB
	settleUC *settlement.SettleAppointment
	repo     billing.Repository
	audit    *audit.Dispatcher
	cache    *cache.Cache
	loc      *time.Location
}

func NewAppointmentHandler(
	db *gorm.DB,
	settleUC *settlement.SettleAppointment,
	repo billing.Repository,
	auditDispatcher *audit.Dispatcher,
	c *cache.Cache,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		settleUC: settleUC,
		repo:     repo,
		audit:    auditDispatcher,
		cache:    c,
		loc:      loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`

	VehicleMake  string `json:"vehicle_make"`
	VehicleModel string `json:"vehicle_model"`
	VehicleYear  int    `json:"vehicle_year"`
	LicensePlate string `json:"license_plate"`

	ServiceType string `json:"service_type" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Description string `json:"description"`
}

type UpdateAppointmentRequest struct {
	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	VehicleMake   *string `json:"vehicle_make,omitempty"`
	VehicleModel  *string `json:"vehicle_model,omitempty"`
	VehicleYear   *int    `json:"vehicle_year,omitempty"`
	LicensePlate  *string `json:"license_plate,omitempty"`
	ServiceType   *string `json:"service_type,omitempty"`
	Description   *string `json:"description,omitempty"`
	EmployeeID    *uint   `json:"employee_id,omitempty"`
	ScheduledAt   *string `json:"scheduled_at,omitempty"` // "2006-01-02 15:04"
}

type CompleteAppointmentRequest struct {
	LaborCost     float64                  `json:"labor_cost"`
	ServiceCharge float64                  `json:"service_charge"`
	Parts         []settlement.PartRequest `json:"parts"`
}

// ======================================================
// BOOK (PUBLIC)
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	scheduledAt, err := parseDateTimeIn(req.Date, req.Time, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	if scheduledAt.Before(time.Now().In(h.loc)) {
		httperr.BadRequest(c, "date_in_past", "The requested slot is in the past.")
		return
	}

	ap := models.Appointment{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		VehicleMake:   req.VehicleMake,
		VehicleModel:  req.VehicleModel,
		VehicleYear:   req.VehicleYear,
		LicensePlate:  req.LicensePlate,
		ServiceType:   req.ServiceType,
		ScheduledAt:   scheduledAt,
		Description:   req.Description,
		Status:        string(domain.InitialStatus()),
	}

	if err := h.db.Create(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_create_appointment", "Failed to create appointment.")
		return
	}

	metrics.AppointmentsBookedTotal.Inc()

	h.audit.Dispatch(audit.Event{
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	httpresp.Created(c, ap)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	status := c.Query("status")
	dateStr := c.Query("date")

	q := h.db.Model(&models.Appointment{})

	if status != "" {
		if !domain.IsValid(domain.Status(status)) {
			httperr.BadRequest(c, "invalid_status", "Unknown appointment status.")
			return
		}
		q = q.Where("status = ?", status)
	}

	if dateStr != "" {
		date, err := parseDateIn(dateStr, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, h.loc)
		end := start.Add(24 * time.Hour)
		q = q.Where("scheduled_at >= ? AND scheduled_at < ?", start, end)
	}

	var aps []models.Appointment
	if err := q.
		Preload("Employee").
		Order("scheduled_at ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var ap models.Appointment
	if err := h.db.Preload("Employee").First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	items, err := h.repo.ListLineItems(c.Request.Context(), ap.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_items", "Failed to load line items.")
		return
	}

	httpresp.OK(c, gin.H{
		"appointment": ap,
		"items":       items,
	})
}

// ListItems returns the append-only line-item ledger of one appointment.
func (h *AppointmentHandler) ListItems(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	items, err := h.repo.ListLineItems(c.Request.Context(), uint(id))
	if err != nil {
		httperr.Internal(c, "failed_to_list_items", "Failed to load line items.")
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if domain.IsTerminal(domain.Status(ap.Status)) {
		httperr.Conflict(c, "invalid_state", "A finished appointment cannot be edited.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.CustomerName != nil {
		ap.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		ap.CustomerPhone = *req.CustomerPhone
	}
	if req.CustomerEmail != nil {
		ap.CustomerEmail = *req.CustomerEmail
	}
	if req.VehicleMake != nil {
		ap.VehicleMake = *req.VehicleMake
	}
	if req.VehicleModel != nil {
		ap.VehicleModel = *req.VehicleModel
	}
	if req.VehicleYear != nil {
		ap.VehicleYear = *req.VehicleYear
	}
	if req.LicensePlate != nil {
		ap.LicensePlate = *req.LicensePlate
	}
	if req.ServiceType != nil {
		ap.ServiceType = *req.ServiceType
	}
	if req.Description != nil {
		ap.Description = *req.Description
	}
	if req.EmployeeID != nil {
		var emp models.Employee
		if err := h.db.First(&emp, *req.EmployeeID).Error; err != nil {
			httperr.BadRequest(c, "employee_not_found", "Assigned employee does not exist.")
			return
		}
		ap.EmployeeID = req.EmployeeID
	}
	if req.ScheduledAt != nil {
		t, err := time.ParseInLocation("2006-01-02 15:04", *req.ScheduledAt, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
			return
		}
		ap.ScheduledAt = t
	}

	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_update_appointment", "Failed to update appointment.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if err := h.db.Delete(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_appointment", "Failed to delete appointment.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	httpresp.NoContent(c)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Start(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if err := domain.Start(&ap); err != nil {
		httperr.Conflict(c, "invalid_state", "Appointment cannot be started.")
		return
	}

	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_update_appointment", "Failed to update appointment.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_started",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	now := time.Now().In(h.loc)
	if err := domain.Cancel(&ap, now); err != nil {
		httperr.Conflict(c, "invalid_state", "Appointment cannot be cancelled.")
		return
	}

	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_update_appointment", "Failed to update appointment.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	httpresp.OK(c, ap)
}

// ======================================================
// COMPLETE (SETTLEMENT)
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid settlement payload.")
		return
	}

	result, err := h.settleUC.Execute(c.Request.Context(), userID, settlement.Input{
		AppointmentID: uint(id),
		LaborCost:     req.LaborCost,
		ServiceCharge: req.ServiceCharge,
		Parts:         req.Parts,
	})
	if err != nil {
		h.writeSettlementError(c, err)
		return
	}

	// The finance summary changed; drop the cached copy.
	h.cache.Invalidate(c.Request.Context(), cache.KeyFinanceSummary)

	httpresp.OK(c, result)
}

func (h *AppointmentHandler) writeSettlementError(c *gin.Context, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		httperr.Internal(c, "settlement_failed", "Settlement failed.")
		return
	}

	msg := be.Detail
	switch be.Code {
	case httperr.CodeAppointmentNotFound:
		httperr.NotFound(c, be.Code, "Appointment not found.")
	case httperr.CodeAlreadyCompleted:
		httperr.Conflict(c, be.Code, "Appointment has already been settled.")
	case httperr.CodeInvalidState:
		httperr.Conflict(c, be.Code, "Appointment cannot be settled from its current status.")
	case httperr.CodePartNotFound, httperr.CodeInsufficientStock, httperr.CodeInvalidQuantity:
		if msg == "" {
			msg = "Invalid settlement request."
		}
		httperr.BadRequest(c, be.Code, msg)
	default:
		httperr.Internal(c, "settlement_failed", "Settlement failed.")
	}
}
