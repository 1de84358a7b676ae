package handlers

import (
	"reflect"
	"sync"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator about decimal amounts and units.
// Decimals are validated as float64 so tags like gt=0 and gte=0 apply to them.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("unit", validUnit)
	})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validUnit(fl validator.FieldLevel) bool {
	return domain.Unit(fl.Field().String()).IsValid()
}
