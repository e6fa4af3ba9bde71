package main

import (
	"math"
	"strconv"
	"strings"
)

// Days used to project missed-call revenue
const (
	daysPerMonth = 30
	daysPerYear  = 365
)

// ParseMetric reads a numeric form field the way a browser's parseFloat does:
// leading whitespace is skipped and the longest numeric prefix is used.
// Anything unparsable, empty or non-finite yields 0 so partial input never
// blocks the calculator.
func ParseMetric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	prefix := numericPrefix(s)
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// numericPrefix returns the longest leading substring of s shaped like
// [sign] digits [. digits] [e [sign] digits]
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digitsStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - digitsStart
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracDigits = j - i - 1
		if intDigits > 0 || fracDigits > 0 {
			i = j
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return ""
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			end = j
		}
	}
	return s[:end]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// ComputeSavings derives monthly and yearly savings for a record on a tier.
func ComputeSavings(record BusinessRecord, tier PricingTier) DerivedSavings {
	missed := ParseMetric(record.AvgMissedCallsPerDay)
	orderValue := ParseMetric(record.AvgOrderValue)
	staffSalary := ParseMetric(record.StaffSalaryPerMonth)
	planPrice := tier.MonthlyPrice

	var s DerivedSavings
	s.MonthlySalarySavings = staffSalary - planPrice
	s.MonthlyCallRevenue = missed * orderValue * daysPerMonth
	s.TotalMonthlyBenefit = s.MonthlySalarySavings + s.MonthlyCallRevenue

	s.YearlySalarySavings = staffSalary*12 - planPrice*12
	s.YearlyCallRevenue = missed * orderValue * daysPerYear
	s.TotalYearlyBenefit = s.YearlySalarySavings + s.YearlyCallRevenue

	if staffSalary > 0 {
		s.BenefitPercent = s.TotalMonthlyBenefit / staffSalary * 100
		s.salaryKnown = true
	}
	return s
}

// BenefitPercentText formats the benefit ratio with one decimal place,
// or "0" when there is no salary to compare against.
func (s DerivedSavings) BenefitPercentText() string {
	if !s.salaryKnown {
		return "0"
	}
	return strconv.FormatFloat(s.BenefitPercent, 'f', 1, 64)
}

// TierSet is the fixed list of plans offered by the calculator
type TierSet []PricingTier

// Find returns the tier with the given name (exact match)
func (ts TierSet) Find(name string) (PricingTier, bool) {
	for _, t := range ts {
		if t.Name == name {
			return t, true
		}
	}
	return PricingTier{}, false
}

// Resolve returns the named tier, falling back to the first tier when the
// name is unknown. An empty set resolves to a zero-priced tier.
func (ts TierSet) Resolve(name string) PricingTier {
	if t, ok := ts.Find(name); ok {
		return t
	}
	if len(ts) > 0 {
		return ts[0]
	}
	return PricingTier{Name: name}
}
