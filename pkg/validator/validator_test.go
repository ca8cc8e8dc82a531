package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/pkg/validator"
)

type line struct {
	SKU      string `json:"sku" validate:"notblank"`
	Quantity int64  `json:"quantity" validate:"gt=0"`
}

type request struct {
	Name  string `json:"name" validate:"required,max=5"`
	Kind  string `json:"kind" validate:"omitempty,oneof=received shipped adjusted"`
	Lines []line `json:"lines" validate:"required,min=1,dive"`
}

func TestValidateStruct_Valido(t *testing.T) {
	assert.Nil(t, validator.ValidateStruct(&request{Name: "ok", Lines: []line{{SKU: "A", Quantity: 1}}}))
}

func TestValidateStruct_NombresJSONYRutas(t *testing.T) {
	errs := validator.ValidateStruct(&request{
		Name:  "demasiado largo",
		Kind:  "stolen",
		Lines: []line{{SKU: "   ", Quantity: 0}},
	})
	require.Len(t, errs, 4)

	byField := make(map[string]validator.FieldError, len(errs))
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "max", byField["name"].Tag)
	assert.Equal(t, "5", byField["name"].Param)
	assert.Equal(t, "oneof", byField["kind"].Tag)
	assert.Equal(t, "notblank", byField["lines[0].sku"].Tag)
	assert.Equal(t, "gt", byField["lines[0].quantity"].Tag)
}
