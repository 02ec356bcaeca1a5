package services

import (
	"encoding/json"
	"strings"
	"time"

	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FieldUpdate is a single-field change to an employee or its salary. The set
// of implementations is closed: every updatable field has its own type.
type FieldUpdate interface {
	Field() string
	validate() error
	apply(tx *gorm.DB, employee *models.Employee) error
}

type (
	NameUpdate        struct{ Name string }
	DOBUpdate         struct{ DateOfBirth string }
	AddressUpdate     struct{ Address string }
	IDNumberUpdate    struct{ IDNumber string }
	PhoneUpdate       struct{ Phone string }
	EmailUpdate       struct{ Email string }
	PasswordUpdate    struct{ Password string }
	PaymentTypeUpdate struct{ PaymentType string }
	AmountUpdate      struct{ Amount decimal.Decimal }
)

// FieldUpdateRequest is the wire form: {"field": "phone", "value": "..."}.
type FieldUpdateRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

// ParseFieldUpdate maps a field name onto its update type. Unknown names are
// validation errors.
func ParseFieldUpdate(req FieldUpdateRequest) (FieldUpdate, error) {
	if req.Field == "amount" {
		var amount decimal.Decimal
		if err := json.Unmarshal(req.Value, &amount); err != nil {
			return nil, types.NewValidationError("amount must be a decimal number", nil)
		}
		return AmountUpdate{Amount: amount}, nil
	}

	var value string
	if err := json.Unmarshal(req.Value, &value); err != nil {
		return nil, types.NewValidationError("value must be a string", nil)
	}

	switch req.Field {
	case "name":
		return NameUpdate{Name: value}, nil
	case "dob":
		return DOBUpdate{DateOfBirth: value}, nil
	case "address":
		return AddressUpdate{Address: value}, nil
	case "idNumber":
		return IDNumberUpdate{IDNumber: value}, nil
	case "phone":
		return PhoneUpdate{Phone: value}, nil
	case "email":
		return EmailUpdate{Email: value}, nil
	case "password":
		return PasswordUpdate{Password: value}, nil
	case "paymentType":
		return PaymentTypeUpdate{PaymentType: value}, nil
	default:
		return nil, types.NewValidationError("unknown field: "+req.Field, nil)
	}
}

func requireNonBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return types.NewValidationError(field+" must not be empty", nil)
	}
	return nil
}

func updateColumn(tx *gorm.DB, employee *models.Employee, column string, value interface{}) error {
	if err := tx.Model(employee).Update(column, value).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (NameUpdate) Field() string { return "name" }
func (u NameUpdate) validate() error { return requireNonBlank("name", u.Name) }
func (u NameUpdate) apply(tx *gorm.DB, e *models.Employee) error {
	return updateColumn(tx, e, "name", u.Name)
}

func (DOBUpdate) Field() string { return "dob" }
func (u DOBUpdate) validate() error {
	if _, err := time.Parse(models.DateLayout, u.DateOfBirth); err != nil {
		return types.NewValidationError("dob must be YYYY-MM-DD", nil)
	}
	return nil
}
func (u DOBUpdate) apply(tx *gorm.DB, e *models.Employee) error {
	return updateColumn(tx, e, "dob", u.DateOfBirth)
}

func (AddressUpdate) Field() string { return "address" }
func (u AddressUpdate) validate() error { return requireNonBlank("address", u.Address) }
func (u AddressUpdate) apply(tx *gorm.DB, e *models.Employee) error {
	return updateColumn(tx, e, "address", u.Address)
}

func (IDNumberUpdate) Field() string { return "idNumber" }
func (u IDNumberUpdate) validate() error { return requireNonBlank("idNumber", u.IDNumber) }
func (u IDNumberUpdate) apply(tx *gorm.DB, e *models.Employee) error {
	return updateColumn(tx, e, "id_number", u.IDNumber)
}

func (PhoneUpdate) Field() string { return "phone" }
func (u PhoneUpdate) validate() error { return requireNonBlank("phone", u.Phone) }
func (u PhoneUpdate) apply(tx *gorm.DB, e *models.Employee) error {
	return updateColumn(tx, e, "phone", u.Phone)
}

func (EmailUpdate) Field() string { return "email" }
func (u EmailUpdate) validate() error {
	if err := utils.Validate.Var(u.Email, "required,email"); err != nil {
		return types.NewValidationError("email must be a valid address", nil)
	}
	return nil
}
func (u EmailUpdate) apply(tx *gorm.DB, e *models.Employee) error {
	if err := ensureEmailFree(tx, u.Email, e.ID); err != nil {
		return err
	}
	return updateColumn(tx, e, "email", u.Email)
}

func (PasswordUpdate) Field() string { return "password" }
func (u PasswordUpdate) validate() error {
	if len(u.Password) < 6 {
		return types.NewValidationError("password must be at least 6 characters", nil)
	}
	return nil
}
func (u PasswordUpdate) apply(tx *gorm.DB, e *models.Employee) error {
	hash, err := hashPassword(u.Password)
	if err != nil {
		return types.NewAppError(types.KindStore, types.ErrInternalError, err)
	}
	return updateColumn(tx, e, "password_hash", hash)
}

func (PaymentTypeUpdate) Field() string { return "paymentType" }
func (u PaymentTypeUpdate) validate() error {
	if err := utils.Validate.Var(u.PaymentType, "required,oneof=daily weekly monthly"); err != nil {
		return types.NewValidationError("paymentType must be one of: daily, weekly, monthly", nil)
	}
	return nil
}
func (u PaymentTypeUpdate) apply(tx *gorm.DB, e *models.Employee) error {
	salary := models.Salary{EmployeeID: e.ID, PaymentType: u.PaymentType, Amount: decimal.Zero}
	return upsertSalary(tx, &salary, "payment_type")
}

func (AmountUpdate) Field() string { return "amount" }
func (u AmountUpdate) validate() error { return validateAmount(u.Amount) }
func (u AmountUpdate) apply(tx *gorm.DB, e *models.Employee) error {
	salary := models.Salary{EmployeeID: e.ID, PaymentType: models.PaymentTypeDaily, Amount: u.Amount}
	return upsertSalary(tx, &salary, "amount")
}
