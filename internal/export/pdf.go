package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/rafabene/usermanager/internal/domain/entities"
)

const (
	pdfMargin    = 14.0
	pdfRowHeight = 6.0
	pdfTableTop  = 50.0
)

var (
	pdfHeader  = []string{"Name", "Email", "Phone", "Company", "Role", "City", "Created"}
	pdfWidths  = []float64{30, 42, 24, 28, 16, 22, 20}
	headerFill = [3]int{37, 99, 235}
	zebraFill  = [3]int{245, 245, 245}
)

// WritePDF gera o relatório tabular de users em A4 retrato
func WritePDF(w io.Writer, users []*entities.User, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(pdfMargin, 22, "User Management Report")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(pdfMargin, 32, "Generated on: "+now.Format(dateLayout))
	pdf.Text(pdfMargin, 40, fmt.Sprintf("Total Users: %d", len(users)))

	pdf.SetY(pdfTableTop)
	drawHeader(pdf)

	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "", 8)
	for i, u := range users {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfMargin {
			pdf.AddPage()
			drawHeader(pdf)
			pdf.SetFont("Helvetica", "", 8)
		}

		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(zebraFill[0], zebraFill[1], zebraFill[2])
		}
		pdf.SetTextColor(0, 0, 0)
		for col, value := range row(u) {
			text := fit(pdf, tr(value), pdfWidths[col]-2)
			pdf.CellFormat(pdfWidths[col], pdfRowHeight, text, "", 0, "L", fill, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func drawHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(255, 255, 255)
	for col, title := range pdfHeader {
		pdf.CellFormat(pdfWidths[col], pdfRowHeight+1, title, "", 0, "L", true, 0, "")
	}
	pdf.Ln(pdfRowHeight + 1)
}

// fit corta text até caber em width, terminando com "..."
func fit(pdf *fpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
