package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	qrSize       = 35.0
)

// ExportQuotePDF writes the quote as a PDF: a header with the container and
// insulation, a table of priced lines, the totals per family, and a QR code
// encoding the quote summary as JSON.
func ExportQuotePDF(path string, q Quote) error {
	if len(q.Lines) == 0 {
		return fmt.Errorf("nothing placed to quote")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	if err := renderQR(pdf, q); err != nil {
		return err
	}
	y := renderHeader(pdf, q)
	y = renderLines(pdf, q, y+6)
	renderTotals(pdf, q, y+6)
	renderFooter(pdf)

	return pdf.OutputFileAndClose(path)
}

func renderHeader(pdf *fpdf.Fpdf, q Quote) float64 {
	textW := pageWidth - marginLeft - marginRight - qrSize - 5

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(textW, headerHeight, q.Title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	y := marginTop + headerHeight
	info := []string{
		fmt.Sprintf("Container: %s (%d x %d x %d units)", q.Container.SizeID, q.Container.Length, q.Container.Width, q.Container.Height),
		fmt.Sprintf("Insulation: %s (%g units)", q.Insulation.Label, q.Insulation.Thickness),
		fmt.Sprintf("Walls: %d | Windows: %d | Items: %d", q.Counts.Walls, q.Counts.Windows, q.Counts.Items),
	}
	for _, line := range info {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(textW, 5, line, "", 0, "L", false, 0, "")
		y += 6
	}
	if bottom := marginTop + qrSize; y < bottom {
		y = bottom
	}
	return y
}

func renderLines(pdf *fpdf.Fpdf, q Quote, y float64) float64 {
	colWidths := []float64{12, 30, 98, 40}
	headers := []string{"#", "Kind", "Name", "Price"}
	aligns := []string{"C", "L", "L", "R"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += rowHeight

	pdf.SetFont("Helvetica", "", 9)
	for i, line := range q.Lines {
		if y+rowHeight > pageHeight-marginBottom-40 {
			pdf.AddPage()
			y = marginTop
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			line.Kind,
			line.Name,
			FormatPrice(line.Price, q.Currency),
		}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, aligns[j], true, 0, "")
			x += colWidths[j]
		}
		y += rowHeight
	}
	return y
}

func renderTotals(pdf *fpdf.Fpdf, q Quote, y float64) {
	rows := []struct {
		label string
		value float64
	}{
		{"Walls", q.Totals.Walls},
		{"Windows", q.Totals.Windows},
		{"Items", q.Totals.Items},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.SetXY(pageWidth-marginRight-90, y)
		pdf.CellFormat(50, 6, r.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, FormatPrice(r.value, q.Currency), "", 0, "R", false, 0, "")
		y += 6
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(pageWidth-marginRight-90, y+2)
	pdf.CellFormat(50, 8, "Total:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, FormatPrice(q.Totals.Total, q.Currency), "T", 0, "R", false, 0, "")
}

// renderQR places the summary QR code in the top-right corner.
func renderQR(pdf *fpdf.Fpdf, q Quote) error {
	payload, err := json.Marshal(q.Summary())
	if err != nil {
		return fmt.Errorf("failed to marshal quote summary: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("quote_qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("quote_qr", pageWidth-marginRight-qrSize, marginTop, qrSize, qrSize, false, opts, 0, "")
	return nil
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by ContainerPlan - container layout planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
