package database

import (
	"testing"

	"hr_payroll/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestOpenSQLiteMigratesSchema(t *testing.T) {
	db, err := Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", "silent")
	require.NoError(t, err)

	for _, model := range models.All() {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Attendance{}, "idx_attendance_employee_date"))
}

func TestAttendanceUniquePerEmployeeAndDate(t *testing.T) {
	db, err := Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", "silent")
	require.NoError(t, err)

	first := models.Attendance{EmployeeID: 7, Date: "2024-03-01", Status: "Attended", Color: "#4CAF50"}
	require.NoError(t, db.Create(&first).Error)

	second := models.Attendance{EmployeeID: 7, Date: "2024-03-01", Status: "Absent", Color: "#F44336"}
	assert.Error(t, db.Create(&second).Error)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "", "")
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Info, parseLogLevel("INFO"))
	assert.Equal(t, logger.Warn, parseLogLevel("whatever"))
}
