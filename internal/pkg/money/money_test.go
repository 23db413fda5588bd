package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{4990, "R$ 49,90"},
		{12990, "R$ 129,90"},
		{145780, "R$ 1.457,80"},
		{123456789, "R$ 1.234.567,89"},
		{-250, "-R$ 2,50"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.cents))
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 4990, 8990, 145780, 123456789, -250} {
		got, err := Parse(Format(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, got)
	}
}

func TestParseVariants(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"R$ 49,90", 4990},
		{"R$ 49,90", 4990},
		{"49,9", 4990},
		{"1.000", 100000},
		{"  R$ 7 ", 700},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "R$", "abc", "10,999", "10,", "1,2,3"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestFromReais(t *testing.T) {
	assert.Equal(t, int64(4990), FromReais(49.90))
	assert.Equal(t, int64(1999), FromReais(19.99))
	assert.Equal(t, int64(30), FromReais(0.3))
	assert.InDelta(t, 49.9, ToReais(4990), 1e-9)
}
