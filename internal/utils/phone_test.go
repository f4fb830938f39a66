package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"national format", "07911 123456", "+447911123456"},
		{"already e164", "+447911123456", "+447911123456"},
		{"international", "+353 85 123 4567", "+353851234567"},
		{"unparseable passes through", "not a number", "not a number"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.phone))
		})
	}
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("07911 123456"))
	assert.True(t, ValidatePhone("+447911123456"))
	assert.False(t, ValidatePhone("123"))
	assert.False(t, ValidatePhone("not a number"))
}
