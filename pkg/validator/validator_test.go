package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type orderRequest struct {
	Items    []lineRequest `json:"items" validate:"required,min=1,dive"`
	Email    string        `json:"email,omitempty" validate:"omitempty,email"`
	Currency string        `json:"currency" validate:"required,len=3,alpha"`
	Internal string        `json:"-"`
}

func TestValidate_Success(t *testing.T) {
	req := orderRequest{Items: []lineRequest{{ProductID: "p1"}}, Currency: "htg"}
	assert.NoError(t, Validate(req))
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	req := orderRequest{Items: []lineRequest{{ProductID: ""}}, Email: "nope", Currency: "htg"}

	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["items[0].productId"])
	assert.Equal(t, "must be a valid email address", fields["email"])
}

func TestValidate_EmptySlice(t *testing.T) {
	req := orderRequest{Items: []lineRequest{}, Currency: "usd"}

	err := Validate(req)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must contain at least 1 item(s)", valErr.Fields()["items"])
}

func TestValidate_CurrencyShape(t *testing.T) {
	req := orderRequest{Items: []lineRequest{{ProductID: "p1"}}, Currency: "dollars"}

	err := Validate(req)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be exactly 3 characters", valErr.Fields()["currency"])
}

func TestValidationError_Message(t *testing.T) {
	err := Validate(orderRequest{Currency: "htg"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items is required")
}

func TestValidate_NonStruct(t *testing.T) {
	err := Validate("not a struct")
	require.Error(t, err)

	var valErr *ValidationError
	assert.NotErrorAs(t, err, &valErr)
}
