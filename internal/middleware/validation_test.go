package middleware

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestValidRUT(t *testing.T) {
	v := validator.New()
	err := v.RegisterValidation("rut", validRUT)
	assert.NoError(t, err)

	tests := []struct {
		name  string
		rut   string
		valid bool
	}{
		{"valid plain", "12345678-5", true},
		{"valid dotted", "12.345.678-5", true},
		{"valid verifier k", "12345670-K", true},
		{"valid lowercase k", "12345670-k", true},
		{"wrong verifier", "12345678-9", false},
		{"missing verifier", "12345678", false},
		{"letters in body", "1234A678-5", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.rut, "rut")
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
