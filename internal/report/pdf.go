package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/spigell/ats-checker/internal/analysis"
)

const (
	pdfBarWidth  = 120.0
	pdfBarHeight = 5.0
)

// PDF writes an A4 report with the score bar and the three finding blocks.
func PDF(w io.Writer, res *analysis.Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("ATS Resume Report", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr("ATS Resume Report"), "", "L", false)
	pdf.Ln(2)

	if res.Path != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr(res.Path), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 7, fmt.Sprintf("ATS Score: %d/100", res.Score), "", "L", false)
	renderBar(pdf, res.Score)
	pdf.Ln(6)

	if res.LoadError != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr("Load error: "+res.LoadError), "", "L", false)
		pdf.Ln(4)
	}

	for _, block := range Blocks {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, block.Title(), "", "L", false)
		pdf.Ln(1)

		pdf.SetFont("Helvetica", "", 10)
		items := block.items(res)
		if len(items) == 0 {
			pdf.MultiCell(0, 5, tr(block.placeholder()), "", "L", false)
		}
		for _, item := range items {
			pdf.MultiCell(0, 5, tr("- "+item), "", "L", false)
		}
		pdf.Ln(4)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering pdf report: %w", err)
	}
	return pdf.Output(w)
}

func renderBar(pdf *gofpdf.Fpdf, score int) {
	x, y := pdf.GetX(), pdf.GetY()+1

	pdf.SetFillColor(230, 230, 230)
	pdf.Rect(x, y, pdfBarWidth, pdfBarHeight, "F")

	filled := pdfBarWidth * float64(score) / float64(analysis.MaxScore)
	if filled > 0 {
		pdf.SetFillColor(46, 160, 67)
		pdf.Rect(x, y, filled, pdfBarHeight, "F")
	}

	pdf.SetY(y + pdfBarHeight)
}
