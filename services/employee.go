package services

import (
	"context"
	"errors"

	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddEmployeeRequest struct {
	Name        string          `json:"name" validate:"required"`
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=6"`
	Phone       string          `json:"phone" validate:"required"`
	IDNumber    string          `json:"id_number" validate:"required"`
	DateOfBirth string          `json:"dob" validate:"required,datetime=2006-01-02"`
	Address     string          `json:"address" validate:"required"`
	PaymentType string          `json:"payment_type" validate:"required,oneof=daily weekly monthly"`
	Amount      decimal.Decimal `json:"amount"`
}

type EditEmployeeRequest struct {
	Name        string          `json:"name" validate:"required"`
	Email       string          `json:"email" validate:"required,email"`
	Phone       string          `json:"phone" validate:"required"`
	IDNumber    string          `json:"id_number" validate:"required"`
	DateOfBirth string          `json:"dob" validate:"required,datetime=2006-01-02"`
	Address     string          `json:"address" validate:"required"`
	PaymentType string          `json:"payment_type" validate:"required,oneof=daily weekly monthly"`
	Amount      decimal.Decimal `json:"amount"`
}

type EmployeeService struct {
	DB *gorm.DB
}

func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{DB: db}
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return types.NewValidationError(types.ErrValidationFailed, []*utils.FieldError{{
			Field: "Amount",
			Tag:   "min",
			Msg:   "Field 'Amount' must be at least 0.",
		}})
	}
	return nil
}

func (s *EmployeeService) List(ctx context.Context, scope Scope) ([]models.Employee, error) {
	employees := make([]models.Employee, 0)
	err := scope.apply(s.DB.WithContext(ctx).Model(&models.Employee{}), "employees").
		Preload("Salary").
		Order("employees.id").
		Find(&employees).Error
	if err != nil {
		return nil, types.NewStoreError(err)
	}
	return employees, nil
}

func (s *EmployeeService) Get(ctx context.Context, scope Scope, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := scope.apply(s.DB.WithContext(ctx).Model(&models.Employee{}), "employees").
		Preload("Salary").
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

// Add creates the employee and its salary row in one transaction.
func (s *EmployeeService) Add(ctx context.Context, adminID uint, req AddEmployeeRequest) (*models.Employee, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, types.NewValidationError(types.ErrValidationFailed, errs)
	}
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, types.NewAppError(types.KindStore, types.ErrInternalError, err)
	}

	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, types.NewStoreError(tx.Error)
	}

	if err := ensureEmailFree(tx, req.Email, 0); err != nil {
		tx.Rollback()
		return nil, err
	}

	employee := models.Employee{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		IDNumber:     req.IDNumber,
		DateOfBirth:  req.DateOfBirth,
		Address:      req.Address,
		Status:       models.EmployeeStatusActive,
		AdminID:      adminID,
	}
	if err := tx.Create(&employee).Error; err != nil {
		tx.Rollback()
		return nil, mapWriteError(err)
	}

	salary := models.Salary{EmployeeID: employee.ID, PaymentType: req.PaymentType, Amount: req.Amount}
	if err := upsertSalary(tx, &salary, "payment_type", "amount"); err != nil {
		tx.Rollback()
		utils.Logger.Error("Failed to create salary, employee rolled back",
			zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, types.NewStoreError(err)
	}

	employee.Salary = &salary
	return &employee, nil
}

// Edit replaces the profile fields and salary of an employee in one transaction.
func (s *EmployeeService) Edit(ctx context.Context, scope Scope, id uint, req EditEmployeeRequest) (*models.Employee, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, types.NewValidationError(types.ErrValidationFailed, errs)
	}
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, types.NewStoreError(tx.Error)
	}

	employee, err := findEmployee(tx, scope, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := ensureEmailFree(tx, req.Email, employee.ID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Model(employee).Updates(map[string]interface{}{
		"name":      req.Name,
		"email":     req.Email,
		"phone":     req.Phone,
		"id_number": req.IDNumber,
		"dob":       req.DateOfBirth,
		"address":   req.Address,
	}).Error; err != nil {
		tx.Rollback()
		return nil, mapWriteError(err)
	}

	salary := models.Salary{EmployeeID: employee.ID, PaymentType: req.PaymentType, Amount: req.Amount}
	if err := upsertSalary(tx, &salary, "payment_type", "amount"); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, types.NewStoreError(err)
	}

	return s.Get(ctx, scope, id)
}

// SetStatus bans or unbans an employee.
func (s *EmployeeService) SetStatus(ctx context.Context, scope Scope, id uint, status string) (*models.Employee, error) {
	if status != models.EmployeeStatusActive && status != models.EmployeeStatusBanned {
		return nil, types.NewValidationError("status must be one of: active, banned", nil)
	}

	db := s.DB.WithContext(ctx)
	employee, err := findEmployee(db, scope, id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(employee).Update("status", status).Error; err != nil {
		return nil, types.NewStoreError(err)
	}
	employee.Status = status
	return employee, nil
}

// UpdateField applies one closed-set field update inside a transaction.
func (s *EmployeeService) UpdateField(ctx context.Context, scope Scope, id uint, update FieldUpdate) (*models.Employee, error) {
	if update == nil {
		return nil, types.NewValidationError("field update is required", nil)
	}
	if err := update.validate(); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employee, err := findEmployee(tx, scope, id)
		if err != nil {
			return err
		}
		return update.apply(tx, employee)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, scope, id)
}

// Counts returns active and banned employee counts for scope.
func (s *EmployeeService) Counts(ctx context.Context, scope Scope) (active, banned int64, err error) {
	type statusCount struct {
		Status string
		Total  int64
	}
	var counts []statusCount
	query := s.DB.WithContext(ctx).Model(&models.Employee{}).
		Select("employees.status AS status, COUNT(*) AS total").
		Group("employees.status")
	if err := scope.apply(query, "employees").Scan(&counts).Error; err != nil {
		return 0, 0, types.NewStoreError(err)
	}
	for _, c := range counts {
		switch c.Status {
		case models.EmployeeStatusActive:
			active = c.Total
		case models.EmployeeStatusBanned:
			banned = c.Total
		}
	}
	return active, banned, nil
}

// upsertSalary inserts the salary row or updates the listed columns of the
// existing row for the same employee.
func upsertSalary(tx *gorm.DB, salary *models.Salary, columns ...string) error {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
	}).Create(salary).Error
	if err != nil {
		return types.NewStoreError(err)
	}
	return nil
}

// ensureEmailFree fails with ErrEmailTaken when another employee uses email.
func ensureEmailFree(tx *gorm.DB, email string, exceptID uint) error {
	var count int64
	if err := tx.Model(&models.Employee{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error; err != nil {
		return types.NewStoreError(err)
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return nil
}

func mapWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken.Wrap(err)
	}
	return types.NewStoreError(err)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
