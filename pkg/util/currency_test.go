package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name          string
		amount        float64
		symbol        string
		decimalPlaces int
		want          string
	}{
		{name: "Zero", amount: 0, symbol: "$", decimalPlaces: 2, want: "$0.00"},
		{name: "Small amount", amount: 25, symbol: "$", decimalPlaces: 2, want: "$25.00"},
		{name: "Cents", amount: 19.99, symbol: "$", decimalPlaces: 2, want: "$19.99"},
		{name: "Thousands separator", amount: 1350, symbol: "$", decimalPlaces: 2, want: "$1,350.00"},
		{name: "Millions", amount: 1234567.89, symbol: "$", decimalPlaces: 2, want: "$1,234,567.89"},
		{name: "Exactly one thousand", amount: 1000, symbol: "$", decimalPlaces: 2, want: "$1,000.00"},
		{name: "No decimals", amount: 1350, symbol: "$", decimalPlaces: 0, want: "$1,350"},
		{name: "Rounds to nearest cent", amount: 10.996, symbol: "$", decimalPlaces: 2, want: "$11.00"},
		{name: "Negative amount", amount: -1350.5, symbol: "$", decimalPlaces: 2, want: "$-1,350.50"},
		{name: "Other symbol", amount: 99.9, symbol: "€", decimalPlaces: 2, want: "€99.90"},
		{name: "Zero-decimal currency", amount: 125000, symbol: "₩", decimalPlaces: 0, want: "₩125,000"},
		{name: "Negative decimal places clamps", amount: 42.7, symbol: "$", decimalPlaces: -1, want: "$43"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(tt.amount, tt.symbol, tt.decimalPlaces)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmountDeterministic(t *testing.T) {
	first := FormatAmount(1234.56, "$", 2)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, FormatAmount(1234.56, "$", 2))
	}
}
