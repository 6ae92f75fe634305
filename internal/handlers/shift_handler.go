package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/apexauto/garage-api/internal/domain/shiftrule"
	"github.com/apexauto/garage-api/internal/httperr"
	"github.com/apexauto/garage-api/internal/httpresp"
	"github.com/apexauto/garage-api/internal/metrics"
	"github.com/apexauto/garage-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ShiftHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewShiftHandler(db *gorm.DB, loc *time.Location) *ShiftHandler {
	return &ShiftHandler{db: db, loc: loc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateShiftRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"` // "2006-01-02 15:04"
	EndTime    string `json:"end_time" binding:"required"`
	Role       string `json:"role"`
	Notes      string `json:"notes"`
}

type UpdateShiftRequest struct {
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Role      *string `json:"role,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// overlappingShiftsQuery selects the employee's shifts intersecting
// [start, end) with a row lock. Postgres refuses FOR UPDATE on aggregate
// queries, so the rows are fetched and counted in Go rather than with a
// locked COUNT. excludeID skips the shift being updated.
func overlappingShiftsQuery(tx *gorm.DB, employeeID, excludeID uint, start, end time.Time) *gorm.DB {
	q := tx.
		Model(&models.Shift{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"employee_id = ? AND start_time < ? AND end_time > ?",
			employeeID, end, start,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	return q
}

// ======================================================
// LIST
// ======================================================

func (h *ShiftHandler) List(c *gin.Context) {
	employeeID := c.Query("employee_id")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	q := h.db.Model(&models.Shift{}).Preload("Employee")

	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}

	if fromStr != "" {
		if from, err := parseDateIn(fromStr, h.loc); err == nil {
			q = q.Where("start_time >= ?", from)
		}
	}

	if toStr != "" {
		if to, err := parseDateIn(toStr, h.loc); err == nil {
			q = q.Where("start_time < ?", to.Add(24*time.Hour))
		}
	}

	var shifts []models.Shift
	if err := q.Order("start_time ASC").Find(&shifts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_shifts", "Failed to list shifts.")
		return
	}

	httpresp.List(c, shifts)
}

// ======================================================
// CREATE
// ======================================================

// Create records a worked interval. The overlap check runs inside the same
// transaction as the insert, under a lock on the employee's existing shifts;
// the shifts_no_overlap exclusion constraint backs it up at the database
// level.
func (h *ShiftHandler) Create(c *gin.Context) {
	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", req.StartTime, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "Invalid start time.")
		return
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", req.EndTime, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_time", "Invalid end time.")
		return
	}

	if err := shiftrule.Validate(start, end); err != nil {
		be, _ := httperr.AsBusiness(err)
		httperr.BadRequest(c, be.Code, be.Detail)
		return
	}

	var emp models.Employee
	if err := h.db.First(&emp, req.EmployeeID).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	var created models.Shift

	err = h.db.Transaction(func(tx *gorm.DB) error {

		var existing []models.Shift
		if err := overlappingShiftsQuery(tx, req.EmployeeID, 0, start, end).
			Find(&existing).Error; err != nil {
			return err
		}

		if len(existing) > 0 {
			return httperr.ErrBusiness(httperr.CodeShiftOverlap)
		}

		shift := models.Shift{
			EmployeeID: req.EmployeeID,
			StartTime:  start,
			EndTime:    end,
			Role:       req.Role,
			Notes:      req.Notes,
		}

		if err := tx.Create(&shift).Error; err != nil {
			return err
		}

		created = shift
		return nil
	})

	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeShiftOverlap) || httperr.IsExclusionConflict(err) {
			metrics.ShiftOverlapRejectedTotal.Inc()
			httperr.Conflict(c, httperr.CodeShiftOverlap, "Shift overlaps an existing shift for this employee.")
			return
		}
		httperr.Internal(c, "failed_to_create_shift", "Failed to create shift.")
		return
	}

	httpresp.Created(c, created)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ShiftHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var shift models.Shift
	if err := h.db.First(&shift, id).Error; err != nil {
		httperr.NotFound(c, "shift_not_found", "Shift not found.")
		return
	}

	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	start := shift.StartTime
	end := shift.EndTime

	if req.StartTime != nil {
		t, err := time.ParseInLocation("2006-01-02 15:04", *req.StartTime, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_time", "Invalid start time.")
			return
		}
		start = t
	}
	if req.EndTime != nil {
		t, err := time.ParseInLocation("2006-01-02 15:04", *req.EndTime, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_end_time", "Invalid end time.")
			return
		}
		end = t
	}

	if err := shiftrule.Validate(start, end); err != nil {
		be, _ := httperr.AsBusiness(err)
		httperr.BadRequest(c, be.Code, be.Detail)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {

		var existing []models.Shift
		if err := overlappingShiftsQuery(tx, shift.EmployeeID, shift.ID, start, end).
			Find(&existing).Error; err != nil {
			return err
		}

		if len(existing) > 0 {
			return httperr.ErrBusiness(httperr.CodeShiftOverlap)
		}

		shift.StartTime = start
		shift.EndTime = end
		if req.Role != nil {
			shift.Role = *req.Role
		}
		if req.Notes != nil {
			shift.Notes = *req.Notes
		}

		return tx.Save(&shift).Error
	})

	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeShiftOverlap) || httperr.IsExclusionConflict(err) {
			metrics.ShiftOverlapRejectedTotal.Inc()
			httperr.Conflict(c, httperr.CodeShiftOverlap, "Shift overlaps an existing shift for this employee.")
			return
		}
		httperr.Internal(c, "failed_to_update_shift", "Failed to update shift.")
		return
	}

	httpresp.OK(c, shift)
}

// ======================================================
// DELETE
// ======================================================

func (h *ShiftHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.Shift{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_shift", "Failed to delete shift.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "shift_not_found", "Shift not found.")
		return
	}

	httpresp.NoContent(c)
}
