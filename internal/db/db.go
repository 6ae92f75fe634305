package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/apexauto/garage-api/internal/config"
	"github.com/apexauto/garage-api/internal/logger"
	"github.com/apexauto/garage-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logger.L().Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.L().Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Employee{},
		&models.InventoryItem{},
		&models.Appointment{},
		&models.AppointmentItem{},
		&models.Transaction{},
		&models.Shift{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		logger.L().Fatal("failed to migrate", zap.Error(err))
	}

	// Overlapping shifts for the same employee are rejected by the database
	// itself, not only by the in-transaction check.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE shifts ADD CONSTRAINT shifts_no_overlap
                EXCLUDE USING gist (
                    employee_id WITH =,
                    tsrange(start_time, end_time) WITH &&
                );
        EXCEPTION
            WHEN duplicate_object THEN NULL;
            WHEN duplicate_table THEN NULL;
        END $$
    `)

	return db
}
