package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"1234.5", "EUR", "€1,234.50"},
		{"0", "USD", "$0.00"},
		{"1000000", "USD", "$1,000,000.00"},
		{"99.999", "EUR", "€100.00"},
		{"250", "SEK", "250.00 kr"},
		{"-42.1", "EUR", "-€42.10"},
		{"-1500", "SEK", "-1,500.00 kr"},
		{"12", "GBP", "12.00 GBP"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"150", "150", false},
		{"1,250.50", "1250.5", false},
		{"$20", "20", false},
		{"€ 3.5", "3.5", false},
		{"100 kr", "100", false},
		{"0.001", "0.001", false},
		{"", "", true},
		{"abc", "", true},
		{"0", "", true},
		{"-5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a long ...", Truncate("a long sentence", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}
