package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/apexauto/garage-api/internal/audit"
	"github.com/apexauto/garage-api/internal/cache"
	"github.com/apexauto/garage-api/internal/config"
	"github.com/apexauto/garage-api/internal/handlers"
	infraRepo "github.com/apexauto/garage-api/internal/infra/repository"
	"github.com/apexauto/garage-api/internal/middleware"
	"github.com/apexauto/garage-api/internal/timezone"
	ucPayroll "github.com/apexauto/garage-api/internal/usecase/payroll"
	ucSettlement "github.com/apexauto/garage-api/internal/usecase/settlement"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	c *cache.Cache,
	auditDispatcher *audit.Dispatcher,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	garageRepo := infraRepo.NewGarageGormRepository(db)

	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// USE CASES
	// ======================================================
	settleUC := ucSettlement.NewSettleAppointment(garageRepo, auditDispatcher, nil)
	payrollUC := ucPayroll.NewComputePayroll(garageRepo, loc)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		settleUC,
		garageRepo,
		auditDispatcher,
		c,
		loc,
	)

	inventoryHandler := handlers.NewInventoryHandler(db)
	employeeHandler := handlers.NewEmployeeHandler(db, loc)
	customerHandler := handlers.NewCustomerHandler(db)
	shiftHandler := handlers.NewShiftHandler(db, loc)
	payrollHandler := handlers.NewPayrollHandler(payrollUC, loc)
	transactionHandler := handlers.NewTransactionHandler(db, c, loc)
	reviewHandler := handlers.NewReviewHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// METRICS
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (booking site)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.POST("/appointments", appointmentHandler.Book)
			publicAPI.GET("/reviews", reviewHandler.ListApproved)
			publicAPI.POST("/reviews", reviewHandler.Create)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN (back office)
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireAdmin())
		{
			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			admin.GET("/appointments", appointmentHandler.List)
			admin.GET("/appointments/:id", appointmentHandler.Get)
			admin.GET("/appointments/:id/items", appointmentHandler.ListItems)
			admin.PATCH("/appointments/:id", appointmentHandler.Update)
			admin.DELETE("/appointments/:id", appointmentHandler.Delete)
			admin.PATCH("/appointments/:id/start", appointmentHandler.Start)
			admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			admin.POST("/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// INVENTORY
			// ------------------------------
			admin.GET("/inventory", inventoryHandler.List)
			admin.POST("/inventory", inventoryHandler.Create)
			admin.PATCH("/inventory/:id", inventoryHandler.Update)
			admin.POST("/inventory/:id/restock", inventoryHandler.Restock)
			admin.DELETE("/inventory/:id", inventoryHandler.Delete)

			// ------------------------------
			// EMPLOYEES / SHIFTS / PAYROLL
			// ------------------------------
			admin.GET("/employees", employeeHandler.List)
			admin.GET("/employees/:id", employeeHandler.Get)
			admin.POST("/employees", employeeHandler.Create)
			admin.PATCH("/employees/:id", employeeHandler.Update)
			admin.DELETE("/employees/:id", employeeHandler.Delete)

			admin.GET("/shifts", shiftHandler.List)
			admin.POST("/shifts", shiftHandler.Create)
			admin.PATCH("/shifts/:id", shiftHandler.Update)
			admin.DELETE("/shifts/:id", shiftHandler.Delete)

			admin.GET("/payroll", payrollHandler.Summary)

			// ------------------------------
			// CUSTOMERS
			// ------------------------------
			admin.GET("/customers", customerHandler.List)
			admin.GET("/customers/:id", customerHandler.Get)
			admin.POST("/customers", customerHandler.Create)
			admin.PATCH("/customers/:id", customerHandler.Update)
			admin.DELETE("/customers/:id", customerHandler.Delete)

			// ------------------------------
			// FINANCE
			// ------------------------------
			admin.GET("/transactions", transactionHandler.List)
			admin.GET("/finance/summary", transactionHandler.Summary)

			// ------------------------------
			// REVIEWS / AUDIT
			// ------------------------------
			admin.GET("/reviews", reviewHandler.ListAll)
			admin.PATCH("/reviews/:id/approve", reviewHandler.Approve)
			admin.DELETE("/reviews/:id", reviewHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
