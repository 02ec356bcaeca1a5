package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Month string `json:"month" validate:"omitempty,yearmonth"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(sampleRequest{Email: "a@b.co", Date: "2024-03-01", Month: "2024-03"}))

	errs := ValidateStruct(sampleRequest{Email: "nope", Month: "2024-13"})
	require.Len(t, errs, 3)

	byField := map[string]*FieldError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "email", byField["Email"].Tag)
	assert.Equal(t, "required", byField["Date"].Tag)
	assert.Equal(t, "yearmonth", byField["Month"].Tag)
	assert.Equal(t, "Field 'Date' is required.", byField["Date"].Msg)
}

func TestNamedWithoutInit(t *testing.T) {
	assert.NotNil(t, Named("test"))
}
