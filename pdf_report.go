package main

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight

	headerBandHeight = 25.0
	tableRowHeight   = 10.0
)

// brand blue used for the header band, headings and table heads
var reportBlue = [3]int{0, 102, 204}

// pdfText spells out what the core fonts have no glyph for. The rupee sign
// and arrows are missing from cp1252 and typographic punctuation is flattened
// to ASCII; everything else goes through the document's cp1252 translator.
var pdfText = strings.NewReplacer(
	"₹", "Rs.",
	"’", "'",
	"‘", "'",
	"“", "\"",
	"”", "\"",
	"–", "-",
	"—", "-",
	"→", "->",
).Replace

// PDFRenderer draws a Report onto an A4 page with fpdf
type PDFRenderer struct{}

// Extension returns the file extension of rendered documents
func (PDFRenderer) Extension() string {
	return "pdf"
}

// pdfReport holds the document being drawn
type pdfReport struct {
	pdf *fpdf.Fpdf
	rep Report
	tr  func(string) string
}

// Render produces the PDF bytes for r
func (PDFRenderer) Render(r Report) ([]byte, error) {
	return newPDFReport(r).output()
}

func newPDFReport(r Report) *pdfReport {
	pdf := fpdf.New("P", "mm", "A4", "")
	return &pdfReport{
		pdf: pdf,
		rep: r,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// text encodes s for the core fonts
func (d *pdfReport) text(s string) string {
	return d.tr(pdfText(s))
}

func (d *pdfReport) output() ([]byte, error) {
	r := d.rep
	d.pdf.SetMargins(marginLeft, marginTop, marginRight)
	d.pdf.SetAutoPageBreak(true, marginBottom)
	d.pdf.SetTitle(r.Title, true)
	d.pdf.SetCreator(r.HeaderTitle, true)
	d.pdf.AddPage()

	d.drawHeaderBand()
	d.drawTitle()
	for _, section := range r.Sections {
		d.drawSection(section)
	}
	d.drawCallout()
	d.drawFooter()

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *pdfReport) setBlueText() {
	d.pdf.SetTextColor(reportBlue[0], reportBlue[1], reportBlue[2])
}

func (d *pdfReport) drawHeaderBand() {
	d.pdf.SetFillColor(reportBlue[0], reportBlue[1], reportBlue[2])
	d.pdf.Rect(0, 0, pageWidth, headerBandHeight, "F")

	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.Text(marginLeft, 15, d.text(d.rep.HeaderTitle))

	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.Text(marginLeft, 22, d.text(d.rep.HeaderTagline))
}

func (d *pdfReport) drawTitle() {
	d.setBlueText()
	d.pdf.SetFont("Helvetica", "B", 20)
	d.pdf.Text(marginLeft, 45, d.text(d.rep.Title))

	d.pdf.SetFont("Helvetica", "", 12)
	d.pdf.SetTextColor(100, 100, 100)
	d.pdf.Text(marginLeft, 55, d.text(d.rep.Metadata))

	d.pdf.SetDrawColor(reportBlue[0], reportBlue[1], reportBlue[2])
	d.pdf.SetLineWidth(0.5)
	d.pdf.Line(marginLeft, 60, pageWidth-marginRight, 60)

	d.pdf.SetY(67)
}

func (d *pdfReport) drawSection(s ReportSection) {
	d.pdf.Ln(3)
	d.setBlueText()
	d.pdf.SetFont("Helvetica", "B", 16)
	d.pdf.CellFormat(contentWidth, 8, d.text(s.Heading), "", 1, "L", false, 0, "")
	d.pdf.Ln(2)

	d.drawTableHeader(s.Columns)
	for i, row := range s.Rows {
		d.drawTableRow(row, i%2 == 1)
	}
	d.pdf.Ln(5)
}

func (d *pdfReport) drawTableHeader(columns [2]string) {
	col := contentWidth / 2
	d.pdf.SetFillColor(reportBlue[0], reportBlue[1], reportBlue[2])
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetDrawColor(200, 200, 200)
	d.pdf.SetLineWidth(0.1)
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.CellFormat(col, tableRowHeight, d.text(columns[0]), "1", 0, "C", true, 0, "")
	d.pdf.CellFormat(col, tableRowHeight, d.text(columns[1]), "1", 1, "C", true, 0, "")
}

func (d *pdfReport) drawTableRow(row ReportRow, alternate bool) {
	col := contentWidth / 2
	d.pdf.SetTextColor(50, 50, 50)
	fill := false
	switch {
	case row.Highlight:
		d.pdf.SetFont("Helvetica", "B", 11)
		d.pdf.SetFillColor(240, 248, 255)
		fill = true
	case alternate:
		d.pdf.SetFont("Helvetica", "", 11)
		d.pdf.SetFillColor(245, 245, 245)
		fill = true
	default:
		d.pdf.SetFont("Helvetica", "", 11)
	}
	d.pdf.CellFormat(col, tableRowHeight, d.text(row.Label), "1", 0, "C", fill, 0, "")
	d.pdf.CellFormat(col, tableRowHeight, d.text(row.Value), "1", 1, "C", fill, 0, "")
}

func (d *pdfReport) drawCallout() {
	d.pdf.Ln(5)
	d.setBlueText()
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.CellFormat(contentWidth, 8, d.text(d.rep.Callout), "", 1, "L", false, 0, "")
}

func (d *pdfReport) drawFooter() {
	d.pdf.SetTextColor(150, 150, 150)
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.Text(marginLeft, pageHeight-10, d.text(d.rep.Footer))

	if d.rep.ID != "" {
		d.pdf.SetFont("Helvetica", "", 8)
		ref := "Ref: " + d.rep.ID
		d.pdf.Text(pageWidth-marginRight-d.pdf.GetStringWidth(ref), pageHeight-10, ref)
	}
}
