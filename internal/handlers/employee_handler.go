package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/apexauto/garage-api/internal/httperr"
	"github.com/apexauto/garage-api/internal/httpresp"
	"github.com/apexauto/garage-api/internal/models"
)

type EmployeeHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewEmployeeHandler(db *gorm.DB, loc *time.Location) *EmployeeHandler {
	return &EmployeeHandler{db: db, loc: loc}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name       string  `json:"name" binding:"required"`
	Position   string  `json:"position"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	HourlyRate float64 `json:"hourly_rate" binding:"required,min=0"`
	StartDate  string  `json:"start_date"` // "2006-01-02"
}

type UpdateEmployeeRequest struct {
	Name       *string  `json:"name,omitempty"`
	Position   *string  `json:"position,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Email      *string  `json:"email,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
}

// --------- Handlers ---------

func (h *EmployeeHandler) List(c *gin.Context) {
	var employees []models.Employee
	if err := h.db.Order("name ASC").Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Failed to list employees.")
		return
	}

	httpresp.List(c, employees)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var emp models.Employee
	if err := h.db.First(&emp, id).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	httpresp.OK(c, emp)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	emp := models.Employee{
		Name:       req.Name,
		Position:   req.Position,
		Phone:      req.Phone,
		Email:      req.Email,
		HourlyRate: req.HourlyRate,
	}

	if req.StartDate != "" {
		start, err := parseDateIn(req.StartDate, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_date", "Invalid start date.")
			return
		}
		emp.StartDate = &start
	}

	if err := h.db.Create(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_create_employee", "Failed to create employee.")
		return
	}

	httpresp.Created(c, emp)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var emp models.Employee
	if err := h.db.First(&emp, id).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			httperr.BadRequest(c, "invalid_hourly_rate", "Hourly rate may not be negative.")
			return
		}
		emp.HourlyRate = *req.HourlyRate
	}

	if err := h.db.Save(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Failed to update employee.")
		return
	}

	httpresp.OK(c, emp)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.Employee{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_employee", "Failed to delete employee.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	httpresp.NoContent(c)
}
