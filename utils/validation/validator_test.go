package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type basket struct {
	Number string  `json:"order_number" validate:"required,max=5"`
	Price  *int    `json:"price" validate:"required,gte=0"`
	Lines  []line  `json:"items" validate:"required,min=1,dive"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=3"`
}

func TestValidateStructOK(t *testing.T) {
	price := 3
	v := NewValidator()
	err := v.ValidateStruct(basket{Number: "A1", Price: &price, Lines: []line{{ProductID: 1, Quantity: 2}}})
	assert.NoError(t, err)
}

func TestFormatValidationErrorsUsesJSONNames(t *testing.T) {
	note := "too long"
	v := NewValidator()
	err := v.ValidateStruct(basket{Number: "TOO-LONG", Lines: []line{{ProductID: 0, Quantity: 0}}, Note: &note})
	require.Error(t, err)

	fields := FormatValidationErrors(err)
	assert.Contains(t, fields, "order_number")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "items[0].product_id")
	assert.Contains(t, fields, "items[0].quantity")
	assert.Contains(t, fields, "note")
	assert.Equal(t, "price is required", fields["price"])
}

func TestFormatValidationErrorsEmptySlice(t *testing.T) {
	price := 1
	err := NewValidator().ValidateStruct(basket{Number: "A", Price: &price, Lines: []line{}})
	require.Error(t, err)
	assert.Contains(t, FormatValidationErrors(err), "items")
}

func TestFormatValidationErrorsOtherError(t *testing.T) {
	assert.Empty(t, FormatValidationErrors(assert.AnError))
}
