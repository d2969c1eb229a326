package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// KeyValue is a single labelled line in a receipt-style document.
type KeyValue struct {
	Key   string
	Value string
}

// Section groups receipt lines under a heading.
type Section struct {
	Title string
	Lines []KeyValue
}

// PDFExporter renders application receipts into PDF bytes.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RenderReceipt creates a sectioned key/value PDF, used for application receipts.
func (e *PDFExporter) RenderReceipt(title string, sections []Section) ([]byte, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("receipt requires at least one section")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 15)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	for _, section := range sections {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, section.Title, "B", 1, "", false, 0, "")
		pdf.Ln(1)

		pdf.SetFont("Arial", "", 10)
		for _, line := range section.Lines {
			pdf.CellFormat(60, 7, line.Key, "", 0, "", false, 0, "")
			pdf.CellFormat(0, 7, line.Value, "", 1, "", false, 0, "")
		}
		pdf.Ln(4)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
