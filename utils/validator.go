package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	Validate.RegisterValidation("yearmonth", validateYearMonth)
}

func validateYearMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}

type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Msg   string `json:"message"`
}

// ValidateStruct runs the validate tags of s and returns one FieldError per
// failing field, or nil when s is valid.
func ValidateStruct(s interface{}) []*FieldError {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []*FieldError{{Tag: "invalid", Msg: err.Error()}}
	}

	var fieldErrors []*FieldError
	for _, fe := range validationErrors {
		element := FieldError{Field: fe.Field(), Tag: fe.Tag()}

		switch fe.Tag() {
		case "required":
			element.Msg = fmt.Sprintf("Field '%s' is required.", element.Field)
		case "email":
			element.Msg = "Invalid email format."
		case "min":
			element.Msg = fmt.Sprintf("Field '%s' must be at least %s.", element.Field, fe.Param())
		case "max":
			element.Msg = fmt.Sprintf("Field '%s' must be at most %s.", element.Field, fe.Param())
		case "oneof":
			element.Msg = fmt.Sprintf("Field '%s' must be one of: %s.", element.Field, fe.Param())
		case "datetime":
			element.Msg = fmt.Sprintf("Field '%s' must match the layout %s.", element.Field, fe.Param())
		case "yearmonth":
			element.Msg = fmt.Sprintf("Field '%s' must be a YYYY-MM month.", element.Field)
		default:
			element.Msg = fmt.Sprintf("Field '%s' failed validation '%s'.", element.Field, element.Tag)
		}
		fieldErrors = append(fieldErrors, &element)
	}
	return fieldErrors
}
