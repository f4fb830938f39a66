package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePostcode(t *testing.T) {
	tests := []struct {
		name     string
		postcode string
		want     bool
	}{
		{"standard", "GU1 4QT", true},
		{"no space", "GU14QT", true},
		{"lowercase", "gu1 4qt", true},
		{"london district", "SW1A 1AA", true},
		{"single letter area", "N1 9GU", true},
		{"surrounding whitespace", "  GU1 4QT  ", true},
		{"too short", "G1", false},
		{"not a postcode", "12345", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePostcode(tt.postcode))
		})
	}
}

func TestNormalizePostcode(t *testing.T) {
	assert.Equal(t, "GU1 4QT", NormalizePostcode("gu14qt"))
	assert.Equal(t, "SW1A 1AA", NormalizePostcode("SW1A1AA"))
	assert.Equal(t, "GU1 4QT", NormalizePostcode("  GU1 4QT "))
	// Invalid input passes through trimmed.
	assert.Equal(t, "not a postcode", NormalizePostcode(" not a postcode "))
}
