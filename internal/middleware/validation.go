package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators wires custom validators into gin's binding engine and
// makes validation errors report JSON field names.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("rut", validRUT); err != nil {
		panic(err)
	}
}

// validRUT checks a Chilean RUT with its mod-11 verifier digit. Accepts
// "12345678-5" and the dotted form "12.345.678-5".
func validRUT(fl validator.FieldLevel) bool {
	raw := strings.ToUpper(strings.ReplaceAll(fl.Field().String(), ".", ""))
	parts := strings.Split(raw, "-")
	if len(parts) != 2 || len(parts[0]) < 1 || len(parts[1]) != 1 {
		return false
	}

	body, verifier := parts[0], parts[1]
	sum := 0
	factor := 2
	for i := len(body) - 1; i >= 0; i-- {
		d := body[i]
		if d < '0' || d > '9' {
			return false
		}
		sum += int(d-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}

	expected := 11 - sum%11
	switch expected {
	case 11:
		return verifier == "0"
	case 10:
		return verifier == "K"
	default:
		return verifier == string(rune('0'+expected))
	}
}
