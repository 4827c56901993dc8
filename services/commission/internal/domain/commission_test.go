package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRateFor(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"electronics", "0.03"},
		{"fashion", "0.08"},
		{"beauty", "0.1"},
		{"digital", "0.15"},
		{"courses", "0.2"},
		{"services", "0.1"},
		{"real_estate", "0.02"},
		{"vehicles", "0.02"},
		{"food", "0.05"},
		{" Digital ", "0.15"},
		{"real estate", "0.02"},
		{"Real-Estate", "0.02"},
		{"  real   estate ", "0.02"},
		{"toys", "0.05"},
		{"", "0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.True(t, RateFor(tt.category).Equal(decimal.RequireFromString(tt.want)),
				"got %s", RateFor(tt.category))
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "real_estate", NormalizeCategory("Real Estate"))
	assert.Equal(t, "real_estate", NormalizeCategory("real-estate"))
	assert.Equal(t, "real_estate", NormalizeCategory("real_estate"))
	assert.Equal(t, "digital", NormalizeCategory(" DIGITAL "))
	assert.Equal(t, "", NormalizeCategory("  "))
}

func TestCalculate(t *testing.T) {
	hundred := decimal.NewFromInt(100)

	assert.True(t, Calculate("digital", hundred).Equal(decimal.NewFromInt(15)))
	assert.True(t, Calculate("toys", hundred).Equal(decimal.NewFromInt(5)))
	assert.True(t, Calculate("electronics", decimal.RequireFromString("19.99")).Equal(decimal.RequireFromString("0.5997")))
	assert.True(t, Calculate("fashion", decimal.Zero).IsZero())
}

func TestRates_ReturnsCopy(t *testing.T) {
	r := Rates()
	r["digital"] = decimal.NewFromInt(1)

	assert.True(t, RateFor("digital").Equal(decimal.RequireFromString("0.15")))
	assert.Len(t, Rates(), 10)
}
