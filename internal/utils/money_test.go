package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEuroCents(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{input: "20", want: 2000},
		{input: "20.5", want: 2050},
		{input: "20,50", want: 2050},
		{input: "€ 15", want: 1500},
		{input: " 0.05 ", want: 5},
		{input: ".5", want: 50},
	}
	for _, tt := range tests {
		got, err := ParseEuroCents(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	for _, bad := range []string{"", "abc", "-5", "1.234", "1.-5", "€"} {
		_, err := ParseEuroCents(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

func TestOptionalHelpers(t *testing.T) {
	assert.Equal(t, 3, *Ptr(3))
	assert.Equal(t, "", Deref[string](nil))
	assert.Nil(t, NonBlank("  "))
	assert.Equal(t, "x", *NonBlank(" x "))
	assert.Equal(t, "Bea", FirstNonBlank("", " ", " Bea "))
	assert.Equal(t, "", FirstNonBlank())
}
