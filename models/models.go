package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EmployeeStatusActive = "active"
	EmployeeStatusBanned = "banned"
)

// Sentinel values written by check-in. Payroll counts only rows whose status is
// exactly StatusPresent.
const (
	StatusPresent = "Attended"
	ColorPresent  = "#4CAF50"

	StatusAbsent = "Absent"
	ColorAbsent  = "#F44336"
)

const (
	PaymentTypeDaily = "daily"

	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Admin owns a set of employees. Credentials are a local cache of the
// identity provider's state.
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `json:"-"`
	IdentityUID  string    `gorm:"index" json:"identity_uid"`
	Verified     bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

type Employee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `json:"-"`
	IDNumber     string    `gorm:"column:id_number" json:"id_number"`
	DateOfBirth  string    `gorm:"column:dob;type:varchar(10)" json:"dob"`
	Address      string    `json:"address"`
	Status       string    `gorm:"not null;default:'active';index" json:"status"` // active, banned
	AdminID      uint      `gorm:"not null;index" json:"admin_id"`
	Salary       *Salary   `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"salary,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// Salary is 1:1 with Employee; writes go through an upsert on employee_id.
type Salary struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	EmployeeID  uint            `gorm:"uniqueIndex;not null" json:"employee_id"`
	PaymentType string          `gorm:"not null;default:'daily'" json:"payment_type"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// Attendance is unique per (employee_id, date). Date is stored as YYYY-MM-DD
// so that substr(date, 1, 7) yields the month on every supported store.
type Attendance struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_attendance_employee_date" json:"employee_id"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Date       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_attendance_employee_date" json:"date"`
	Status     string    `gorm:"not null" json:"status"`
	Color      string    `gorm:"not null" json:"color"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}

// All returns every model for AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{&Admin{}, &Employee{}, &Salary{}, &Attendance{}}
}
