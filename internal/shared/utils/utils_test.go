package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Marine Engine Filter", "marine-engine-filter"},
		{"punctuation stripped", "Pump, 12V (OEM)", "pump-12v-oem"},
		{"leading and trailing junk", "  --Hello World--  ", "hello-world"},
		{"already a slug", "fuel-injector", "fuel-injector"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0c7b9bd8-6a8e-4b66-9a5e-5b2f6f4f6d2e"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeSpace("  a \t b \n c  "))
}
