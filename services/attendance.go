package services

import (
	"context"
	"errors"
	"time"

	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceInput is the body of both the insert and the update path.
type AttendanceInput struct {
	EmployeeID uint   `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Status     string `json:"status" validate:"required,max=32"`
	Color      string `json:"color" validate:"required,max=16"`
}

type CheckInResult struct {
	Attendance       *models.Attendance `json:"attendance"`
	AlreadyCheckedIn bool               `json:"already_checked_in"`
}

// ListingMode decides whether employees without attendance rows are listed.
type ListingMode int

const (
	// ListingAllEmployees lists every employee in scope, with an empty
	// attendance slice when they have no rows.
	ListingAllEmployees ListingMode = iota
	// ListingRecordedOnly omits employees that have no rows.
	ListingRecordedOnly
)

func ParseListingMode(s string) (ListingMode, error) {
	switch s {
	case "", "all":
		return ListingAllEmployees, nil
	case "recorded":
		return ListingRecordedOnly, nil
	default:
		return 0, types.NewValidationError("mode must be one of: all, recorded", nil)
	}
}

type AttendanceEntry struct {
	Status   string `json:"status"`
	Datetime string `json:"datetime"`
	Color    string `json:"color"`
}

type EmployeeAttendance struct {
	ID         uint              `json:"id"`
	Name       string            `json:"name"`
	Attendance []AttendanceEntry `json:"attendance"`
}

// AttendanceLedger keeps one attendance row per (employee, date).
//
// Insert paths (Insert, CheckIn, MarkAbsent) never overwrite: they use
// INSERT ... ON CONFLICT DO NOTHING and report what happened. Only Update
// changes the status and color of an existing row.
type AttendanceLedger struct {
	DB       *gorm.DB
	Location *time.Location
	Now      func() time.Time
}

func NewAttendanceLedger(db *gorm.DB, loc *time.Location) *AttendanceLedger {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceLedger{DB: db, Location: loc, Now: time.Now}
}

// Today is the current calendar day in the ledger's fixed offset.
func (l *AttendanceLedger) Today() string {
	return l.Now().In(l.Location).Format(models.DateLayout)
}

var attendanceConflictKey = []clause.Column{{Name: "employee_id"}, {Name: "date"}}

// Insert records a new attendance row and fails with ErrAttendanceExists when
// the (employee, date) key is taken.
func (l *AttendanceLedger) Insert(ctx context.Context, scope Scope, in AttendanceInput) (*models.Attendance, error) {
	if errs := utils.ValidateStruct(in); errs != nil {
		return nil, types.NewValidationError(types.ErrValidationFailed, errs)
	}

	db := l.DB.WithContext(ctx)
	if _, err := findEmployee(db, scope, in.EmployeeID); err != nil {
		return nil, err
	}

	record := models.Attendance{
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		Status:     in.Status,
		Color:      in.Color,
	}
	created, err := insertAttendance(db, &record)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrAttendanceExists
	}
	return &record, nil
}

// Update overwrites status and color of an existing row. Employee and date
// identify the row and are never changed.
func (l *AttendanceLedger) Update(ctx context.Context, scope Scope, in AttendanceInput) (*models.Attendance, error) {
	if errs := utils.ValidateStruct(in); errs != nil {
		return nil, types.NewValidationError(types.ErrValidationFailed, errs)
	}

	db := l.DB.WithContext(ctx)
	if _, err := findEmployee(db, scope, in.EmployeeID); err != nil {
		return nil, err
	}

	res := db.Model(&models.Attendance{}).
		Where("employee_id = ? AND date = ?", in.EmployeeID, in.Date).
		Updates(map[string]interface{}{
			"status":     in.Status,
			"color":      in.Color,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, types.NewStoreError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAttendanceNotFound
	}

	return findAttendance(db, in.EmployeeID, in.Date)
}

// CheckIn marks the employee present for today. A second call on the same day
// returns the first row unchanged.
func (l *AttendanceLedger) CheckIn(ctx context.Context, employeeID uint) (*CheckInResult, error) {
	db := l.DB.WithContext(ctx)
	employee, err := findEmployee(db, EmployeeScope(employeeID), employeeID)
	if err != nil {
		return nil, err
	}
	if employee.Status == models.EmployeeStatusBanned {
		return nil, ErrEmployeeBanned
	}

	today := l.Today()
	record := models.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		Status:     models.StatusPresent,
		Color:      models.ColorPresent,
	}
	created, err := insertAttendance(db, &record)
	if err != nil {
		return nil, err
	}
	if created {
		utils.Logger.Info("Employee checked in",
			zap.Uint("employee_id", employeeID), zap.String("date", today))
		return &CheckInResult{Attendance: &record}, nil
	}

	existing, err := findAttendance(db, employeeID, today)
	if err != nil {
		return nil, err
	}
	return &CheckInResult{Attendance: existing, AlreadyCheckedIn: true}, nil
}

// MarkAbsent writes an Absent row for every active employee that has no row
// for date yet and returns how many rows were created.
func (l *AttendanceLedger) MarkAbsent(ctx context.Context, date string) (int64, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return 0, types.NewValidationError("date must be YYYY-MM-DD", nil)
	}

	db := l.DB.WithContext(ctx)
	var ids []uint
	if err := db.Model(&models.Employee{}).
		Where("status = ?", models.EmployeeStatusActive).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return 0, types.NewStoreError(err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	records := make([]models.Attendance, 0, len(ids))
	for _, id := range ids {
		records = append(records, models.Attendance{
			EmployeeID: id,
			Date:       date,
			Status:     models.StatusAbsent,
			Color:      models.ColorAbsent,
		})
	}

	res := db.Clauses(clause.OnConflict{Columns: attendanceConflictKey, DoNothing: true}).Create(&records)
	if res.Error != nil {
		return 0, types.NewStoreError(res.Error)
	}
	utils.Logger.Info("Marked absent employees",
		zap.String("date", date),
		zap.Int64("created", res.RowsAffected),
		zap.Int("active_employees", len(ids)))
	return res.RowsAffected, nil
}

type attendanceRow struct {
	EmployeeID uint
	Name       string
	Date       *string
	Status     *string
	Color      *string
}

// FormattedAttendance groups attendance rows per employee, ordered by employee
// id and then by date.
func (l *AttendanceLedger) FormattedAttendance(ctx context.Context, scope Scope, mode ListingMode) ([]EmployeeAttendance, error) {
	join := "LEFT JOIN attendance ON attendance.employee_id = employees.id"
	if mode == ListingRecordedOnly {
		join = "JOIN attendance ON attendance.employee_id = employees.id"
	}

	query := l.DB.WithContext(ctx).
		Table("employees").
		Select("employees.id AS employee_id, employees.name AS name, " +
			"attendance.date AS date, attendance.status AS status, attendance.color AS color").
		Joins(join)

	var rows []attendanceRow
	if err := scope.apply(query, "employees").
		Order("employees.id").
		Order("attendance.date").
		Scan(&rows).Error; err != nil {
		return nil, types.NewStoreError(err)
	}

	return groupAttendance(rows), nil
}

func groupAttendance(rows []attendanceRow) []EmployeeAttendance {
	results := make([]EmployeeAttendance, 0)
	for _, row := range rows {
		if len(results) == 0 || results[len(results)-1].ID != row.EmployeeID {
			results = append(results, EmployeeAttendance{
				ID:         row.EmployeeID,
				Name:       row.Name,
				Attendance: []AttendanceEntry{},
			})
		}
		if row.Date == nil {
			continue
		}

		current := &results[len(results)-1]
		current.Attendance = append(current.Attendance, AttendanceEntry{
			Status:   deref(row.Status),
			Datetime: *row.Date,
			Color:    deref(row.Color),
		})
	}
	return results
}

// CountForDate counts attendance rows with status on date for employees in scope.
func (l *AttendanceLedger) CountForDate(ctx context.Context, scope Scope, date, status string) (int64, error) {
	query := l.DB.WithContext(ctx).
		Table("attendance").
		Joins("JOIN employees ON employees.id = attendance.employee_id").
		Where("attendance.date = ? AND attendance.status = ?", date, status)

	var count int64
	if err := scope.apply(query, "employees").Count(&count).Error; err != nil {
		return 0, types.NewStoreError(err)
	}
	return count, nil
}

// insertAttendance reports false when the (employee, date) key already exists.
func insertAttendance(db *gorm.DB, record *models.Attendance) (bool, error) {
	res := db.Clauses(clause.OnConflict{Columns: attendanceConflictKey, DoNothing: true}).Create(record)
	if res.Error != nil {
		return false, types.NewStoreError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func findAttendance(db *gorm.DB, employeeID uint, date string) (*models.Attendance, error) {
	var record models.Attendance
	err := db.Where("employee_id = ? AND date = ?", employeeID, date).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttendanceNotFound
	}
	if err != nil {
		return nil, types.NewStoreError(err)
	}
	return &record, nil
}

func findEmployee(db *gorm.DB, scope Scope, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := scope.apply(db.Model(&models.Employee{}), "employees").
		Where("employees.id = ?", id).
		First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, types.NewStoreError(err)
	}
	return &employee, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
