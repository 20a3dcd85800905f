package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already safe", "m2b__weekday-1", "m2b__weekday-1"},
		{"spaces and commas", "m2b__Dilluns a divendres, excepte agost", "m2b__Dilluns_a_divendres__excepte_agost"},
		{"one underscore per rune", "Manresa → Barcelona", "Manresa___Barcelona"},
		{"accented letters", "Diumenges, excepte festiu", "Diumenges__excepte_festiu"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"m2b__Dilluns a divendres feiners, excepte agost",
		"b2o__Dissabtes i Festius",
		"o2b__Diumenges, excepte festiu",
		"<script>alert(1)</script>",
		"çàèéíòóú·l",
	}

	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once), input)
		assert.Regexp(t, `^[A-Za-z0-9_-]*$`, once)
	}
}

func TestSanitizeCollidesOnlyOnStrippedCharacters(t *testing.T) {
	assert.Equal(t, Sanitize("a.b"), Sanitize("a,b"))
	assert.NotEqual(t, Sanitize("a.b"), Sanitize("a.c"))
}
