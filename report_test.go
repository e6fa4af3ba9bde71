package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBrand = BrandConfig{Name: "InfoAIOS Voice", Tagline: "AI-Powered Restaurant Solutions", Site: "infoaios.ai", Sender: "InfoAIOS"}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{316800, "316,800"},
		{3851600, "3,851,600"},
		{900, "900"},
		{0, "0"},
		{-900, "-900"},
		{1234.5, "1,234.5"},
		{0.12345, "0.123"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.in))
		})
	}
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "Spice Garden-savings-report.pdf", ReportFilename("Spice Garden", "pdf"))
	assert.Equal(t, "X-savings-report.pdf", ReportFilename("X", ""))
}

func TestBuildReport(t *testing.T) {
	savings := ComputeSavings(spiceGarden, standardTier)
	rep, err := BuildReport(spiceGarden, standardTier, savings, testBrand, "Rs.")
	require.NoError(t, err)

	assert.NotEmpty(t, rep.ID)
	assert.False(t, rep.GeneratedAt.IsZero())
	assert.Equal(t, "InfoAIOS Voice - Savings Report", rep.HeaderTitle)
	assert.Equal(t, "Savings Analysis for Spice Garden", rep.Title)
	assert.Equal(t, "Plan: Standard | Phone: 98765-43210", rep.Metadata)
	assert.Equal(t, "Monthly Benefit vs Salary: 1760.0%", rep.Callout)
	assert.Equal(t, "Generated by InfoAIOS Voice - infoaios.ai", rep.Footer)

	require.Len(t, rep.Sections, 2)
	monthly := rep.Sections[0]
	assert.Equal(t, [2]string{"Category", "Amount (Rs.)"}, monthly.Columns)
	assert.Equal(t, []ReportRow{
		{Label: "Salary Savings", Value: "16,800"},
		{Label: "Missed Call Revenue", Value: "300,000"},
		{Label: "Total Monthly Savings", Value: "316,800", Highlight: true},
	}, monthly.Rows)

	yearly := rep.Sections[1]
	assert.Equal(t, "Yearly Benefits", yearly.Heading)
	assert.Equal(t, "3,851,600", yearly.Rows[2].Value)
	assert.True(t, yearly.Rows[2].Highlight)
}

func TestBuildReportWithoutName(t *testing.T) {
	_, err := BuildReport(BusinessRecord{}, standardTier, DerivedSavings{}, testBrand, "Rs.")
	assert.ErrorIs(t, err, ErrNoActiveRecord)
}

func TestPDFRendererProducesDocument(t *testing.T) {
	record := spiceGarden
	record.RestaurantName = "Café “Rāga” – ₹ Special"
	rep, err := BuildReport(record, standardTier, ComputeSavings(record, standardTier), testBrand, "₹")
	require.NoError(t, err)

	data, err := PDFRenderer{}.Render(rep)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Greater(t, len(data), 1000)
	assert.Equal(t, "pdf", PDFRenderer{}.Extension())
}

func TestHTMLRenderer(t *testing.T) {
	record := spiceGarden
	record.RestaurantName = "Tom & Jerry's <Diner>"
	rep, err := BuildReport(record, standardTier, ComputeSavings(record, standardTier), testBrand, "Rs.")
	require.NoError(t, err)

	data, err := HTMLRenderer{}.Render(rep)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Savings Analysis for Tom &amp; Jerry&#39;s &lt;Diner&gt;")
	assert.Contains(t, out, `<tr class="total"><td>Total Monthly Savings</td><td>316,800</td></tr>`)
	assert.Contains(t, out, "Ref: "+rep.ID)
	assert.NotContains(t, out, "%!")
	assert.Equal(t, "html", HTMLRenderer{}.Extension())
}

func TestRendererFor(t *testing.T) {
	r, err := RendererFor("")
	require.NoError(t, err)
	assert.IsType(t, PDFRenderer{}, r)

	r, err = RendererFor("HTML")
	require.NoError(t, err)
	assert.IsType(t, HTMLRenderer{}, r)

	_, err = RendererFor("docx")
	assert.Error(t, err)
}

func TestPDFAccentedNames(t *testing.T) {
	record := spiceGarden
	record.RestaurantName = "Café Délice"
	rep, err := BuildReport(record, standardTier, ComputeSavings(record, standardTier), testBrand, "₹")
	require.NoError(t, err)

	doc := newPDFReport(rep)
	assert.Equal(t, "Caf\xe9 D\xe9lice", doc.text("Café Délice"))
	assert.Equal(t, "Amount (Rs.)", doc.text("Amount (₹)"))

	doc.pdf.SetCompression(false)
	data, err := doc.output()
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("Savings Analysis for Caf\xe9 D\xe9lice")))
	assert.False(t, bytes.Contains(data, []byte("Caf\xc3\xa9")), "raw UTF-8 must not reach the content stream")
}

func TestPDFText(t *testing.T) {
	assert.Equal(t, `Rs. 900 - "Let's" -> go`, pdfText("₹ 900 – “Let’s” → go"))
}
