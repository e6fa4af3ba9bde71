package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Report is the layout-neutral savings document handed to a Renderer
type Report struct {
	ID          string
	GeneratedAt time.Time

	HeaderTitle   string
	HeaderTagline string
	Title         string
	Metadata      string
	Sections      []ReportSection
	Callout       string
	Footer        string
}

// ReportSection is a headed two-column table
type ReportSection struct {
	Heading string
	Columns [2]string
	Rows    []ReportRow
}

// ReportRow is one table row; Highlight rows are drawn bold on a tinted fill
type ReportRow struct {
	Label     string
	Value     string
	Highlight bool
}

// Renderer turns a Report into a downloadable document
type Renderer interface {
	Render(r Report) ([]byte, error)
	Extension() string
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount formats an amount with thousands separators and at most
// three fraction digits (316800 -> "316,800").
func FormatAmount(v float64) string {
	return amountPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// ReportFilename is the download name of a restaurant's report
func ReportFilename(restaurantName, ext string) string {
	if ext == "" {
		ext = "pdf"
	}
	return fmt.Sprintf("%s-savings-report.%s", restaurantName, ext)
}

// BuildReport lays out the savings report for a record on a plan. It fails
// with ErrNoActiveRecord when the record has no name.
func BuildReport(record BusinessRecord, tier PricingTier, savings DerivedSavings, brand BrandConfig, currency string) (Report, error) {
	if !record.HasName() {
		return Report{}, ErrNoActiveRecord
	}

	amountCol := fmt.Sprintf("Amount (%s)", currency)
	return Report{
		ID:            uuid.NewString(),
		GeneratedAt:   time.Now(),
		HeaderTitle:   brand.Name + " - Savings Report",
		HeaderTagline: brand.Tagline,
		Title:         "Savings Analysis for " + record.RestaurantName,
		Metadata:      fmt.Sprintf("Plan: %s | Phone: %s", tier.Name, record.PhoneNumber),
		Sections: []ReportSection{
			{
				Heading: "Monthly Benefits",
				Columns: [2]string{"Category", amountCol},
				Rows: []ReportRow{
					{Label: "Salary Savings", Value: FormatAmount(savings.MonthlySalarySavings)},
					{Label: "Missed Call Revenue", Value: FormatAmount(savings.MonthlyCallRevenue)},
					{Label: "Total Monthly Savings", Value: FormatAmount(savings.TotalMonthlyBenefit), Highlight: true},
				},
			},
			{
				Heading: "Yearly Benefits",
				Columns: [2]string{"Category", amountCol},
				Rows: []ReportRow{
					{Label: "Salary Savings", Value: FormatAmount(savings.YearlySalarySavings)},
					{Label: "Missed Call Revenue", Value: FormatAmount(savings.YearlyCallRevenue)},
					{Label: "Total Yearly Savings", Value: FormatAmount(savings.TotalYearlyBenefit), Highlight: true},
				},
			},
		},
		Callout: fmt.Sprintf("Monthly Benefit vs Salary: %s%%", savings.BenefitPercentText()),
		Footer:  fmt.Sprintf("Generated by %s - %s", brand.Name, brand.Site),
	}, nil
}
