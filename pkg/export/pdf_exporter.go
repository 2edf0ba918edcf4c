package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			value := row[header]
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// PaperDocument carries the fields rendered onto a placeholder exam paper.
// Paper files are mocked, so downloads stream a generated cover sheet instead
// of stored content.
type PaperDocument struct {
	Title       string
	Description string
	Category    string
	Subject     string
	Grade       string
	UploadedBy  string
	UploadDate  string
}

// RenderPaper produces a single-page placeholder PDF for a catalog entry.
func (e *PDFExporter) RenderPaper(doc PaperDocument) ([]byte, error) {
	if doc.Title == "" {
		return nil, fmt.Errorf("paper title required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 25, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 9, doc.Title, "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, doc.Description, "", "L", false)
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	rows := [][2]string{
		{"Category", strings.ReplaceAll(doc.Category, "_", " ")},
		{"Subject", doc.Subject},
		{"Grade", doc.Grade},
		{"Uploaded by", doc.UploadedBy},
		{"Upload date", doc.UploadDate},
	}
	for _, row := range rows {
		pdf.CellFormat(40, 7, row[0], "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(130, 7, row[1], "1", 1, "", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render paper pdf: %w", err)
	}
	return buf.Bytes(), nil
}
