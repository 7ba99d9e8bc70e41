package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCountry(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain name", "España", "España"},
		{"Apostrophe kept", "Côte d'Ivoire", "Côte d'Ivoire"},
		{"Hyphen kept", "Guinea-Bissau", "Guinea-Bissau"},
		{"Digits stripped", "China 2024", "China"},
		{"Symbols stripped", "U.S.A.!", "USA"},
		{"Whitespace trimmed", "  México  ", "México"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeCountry(tt.input))
		})
	}
}

func TestRandomHex(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := RandomHex(4)
		assert.Len(t, s, 4)
		assert.Regexp(t, "^[0-9A-F]{4}$", s)
		seen[s] = true
	}
	// 100 draws from 65536 values collide rarely enough
	assert.Greater(t, len(seen), 90)
}
