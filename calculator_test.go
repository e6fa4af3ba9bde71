package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"20", 20},
		{"  500", 500},
		{"18000.50", 18000.5},
		{"12abc", 12},
		{"3.5 calls", 3.5},
		{".5", 0.5},
		{"5.", 5},
		{"-40", -40},
		{"1e3", 1000},
		{"2e", 2},
		{"", 0},
		{"abc", 0},
		{".", 0},
		{"-", 0},
		{"Infinity", 0},
		{"NaN", 0},
		{"0x10", 0},
		{"1e999", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMetric(tt.in))
		})
	}
}

func TestComputeSavings(t *testing.T) {
	record := BusinessRecord{
		RestaurantName:       "Spice Garden",
		AvgMissedCallsPerDay: "20",
		AvgOrderValue:        "500",
		StaffSalaryPerMonth:  "18000",
	}
	s := ComputeSavings(record, PricingTier{Name: "Standard", MonthlyPrice: 1200})

	assert.Equal(t, 16800.0, s.MonthlySalarySavings)
	assert.Equal(t, 300000.0, s.MonthlyCallRevenue)
	assert.Equal(t, 316800.0, s.TotalMonthlyBenefit)
	assert.Equal(t, 201600.0, s.YearlySalarySavings)
	assert.Equal(t, 3650000.0, s.YearlyCallRevenue)
	assert.Equal(t, 3851600.0, s.TotalYearlyBenefit)
	assert.InDelta(t, 1760.0, s.BenefitPercent, 1e-9)
	assert.Equal(t, "1760.0", s.BenefitPercentText())
}

func TestComputeSavingsNonNumericInputs(t *testing.T) {
	record := BusinessRecord{
		RestaurantName:       "Blank",
		AvgMissedCallsPerDay: "lots",
		AvgOrderValue:        "",
		StaffSalaryPerMonth:  "n/a",
	}
	s := ComputeSavings(record, PricingTier{Name: "Basic", MonthlyPrice: 900})

	assert.Equal(t, -900.0, s.MonthlySalarySavings)
	assert.Zero(t, s.MonthlyCallRevenue)
	assert.Equal(t, -900.0, s.TotalMonthlyBenefit)
	assert.Equal(t, -10800.0, s.YearlySalarySavings)
	assert.Zero(t, s.BenefitPercent)
	assert.Equal(t, "0", s.BenefitPercentText())
}

func TestBenefitPercentTextZeroBenefitWithSalary(t *testing.T) {
	record := BusinessRecord{StaffSalaryPerMonth: "1200"}
	s := ComputeSavings(record, PricingTier{MonthlyPrice: 1200})

	assert.Zero(t, s.TotalMonthlyBenefit)
	assert.Equal(t, "0.0", s.BenefitPercentText())
}

func TestTierSet(t *testing.T) {
	tiers := TierSet{
		{Name: "Basic", MonthlyPrice: 900},
		{Name: "Standard", MonthlyPrice: 1200},
	}

	tier, ok := tiers.Find("Standard")
	require.True(t, ok)
	assert.Equal(t, 1200.0, tier.MonthlyPrice)

	_, ok = tiers.Find("Gold")
	assert.False(t, ok)

	assert.Equal(t, "Basic", tiers.Resolve("Gold").Name)
	assert.Equal(t, "Standard", tiers.Resolve("Standard").Name)
	assert.Equal(t, PricingTier{Name: "Basic"}, TierSet(nil).Resolve("Basic"))
}
