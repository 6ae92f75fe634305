package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/apexauto/garage-api/internal/models"
)

// dryRunDB builds a gorm handle that renders SQL without touching a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=garage dbname=garage",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

// Postgres rejects FOR UPDATE on aggregate queries (SQLSTATE 0A000), so the
// overlap check must lock and fetch the rows themselves, never a COUNT.
func TestOverlappingShiftsQueryLocksRowsNotAggregates(t *testing.T) {
	db := dryRunDB(t)

	start := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	var shifts []models.Shift
	stmt := overlappingShiftsQuery(db, 7, 0, start, end).Find(&shifts).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "FOR UPDATE")
	assert.NotContains(t, strings.ToLower(sql), "count(")
	assert.Contains(t, sql, `FROM "shifts"`)
	assert.Contains(t, sql, "employee_id = $1 AND start_time < $2 AND end_time > $3")
}

func TestOverlappingShiftsQueryExcludesOwnRow(t *testing.T) {
	db := dryRunDB(t)

	start := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	var shifts []models.Shift
	stmt := overlappingShiftsQuery(db, 7, 42, start, end).Find(&shifts).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "id <> $4")
	assert.Contains(t, sql, "FOR UPDATE")
}
