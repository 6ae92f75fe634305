package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/apexauto/garage-api/internal/httperr"
	"github.com/apexauto/garage-api/internal/httpresp"
	ucPayroll "github.com/apexauto/garage-api/internal/usecase/payroll"
)

type PayrollHandler struct {
	computeUC *ucPayroll.ComputePayroll
	loc       *time.Location
}

func NewPayrollHandler(computeUC *ucPayroll.ComputePayroll, loc *time.Location) *PayrollHandler {
	return &PayrollHandler{computeUC: computeUC, loc: loc}
}

// Summary answers GET /payroll?employee_id&start_date&end_date. The end date
// is inclusive: shifts starting on that day are counted.
func (h *PayrollHandler) Summary(c *gin.Context) {
	employeeIDStr := c.Query("employee_id")
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")

	if employeeIDStr == "" || startStr == "" || endStr == "" {
		httperr.BadRequest(c, "missing_parameters", "employee_id, start_date and end_date are required.")
		return
	}

	employeeID, err := strconv.ParseUint(employeeIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_employee_id", "Invalid employee id.")
		return
	}

	from, err := parseDateIn(startStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_date", "Invalid start date.")
		return
	}

	endDate, err := parseDateIn(endStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_date", "Invalid end date.")
		return
	}
	to := endDate.Add(24 * time.Hour)

	if !from.Before(to) {
		httperr.BadRequest(c, "invalid_date_range", "start_date must not be after end_date.")
		return
	}

	summary, err := h.computeUC.Execute(c.Request.Context(), uint(employeeID), from, to)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeEmployeeNotFound) {
			httperr.NotFound(c, httperr.CodeEmployeeNotFound, "Employee not found.")
			return
		}
		httperr.Internal(c, "payroll_failed", "Failed to compute payroll.")
		return
	}

	httpresp.OK(c, summary)
}
