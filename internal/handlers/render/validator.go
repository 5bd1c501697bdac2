package render

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func configureValidator(validate *validator.Validate) {
	validate.RegisterTagNameFunc(useJSONTagNames)
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	// Errors only come from tag names clashing with builtins, so panic like validator.New does
	for tag, fn := range map[string]validator.Func{
		"decimal_gte":        decimalGte,
		"decimal_scale":      decimalScale,
		"decimal_int_digits": decimalIntDigits,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

func useJSONTagNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	// skip if tag key says it should be ignored
	if name == "-" {
		return ""
	}
	return name
}

// Decimals are validated as their exact string form. Float64 would turn 1e400 into +Inf and -1e-400 into -0.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

// decimal_gte=N: value >= N
func decimalGte(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	bound, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}
	return d.GreaterThanOrEqual(bound)
}

// decimal_scale=N: at most N fractional digits
func decimalScale(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	scale, err := strconv.ParseInt(fl.Param(), 10, 32)
	if err != nil {
		return false
	}
	return d.Truncate(int32(scale)).Equal(d)
}

// decimal_int_digits=N: at most N digits before the decimal point
func decimalIntDigits(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	digits, err := strconv.ParseInt(fl.Param(), 10, 32)
	if err != nil {
		return false
	}
	return d.Abs().LessThan(decimal.New(1, int32(digits)))
}
