package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	frontHeight  = 8.0
	summaryLines = 18.0
	drawAreaTop  = marginTop + headerHeight + 5.0 + frontHeight + 3.0
	maxCellSize  = 30.0
)

// ExportPDF writes the chart to path as a one-page A4 landscape PDF.
func ExportPDF(path string, c Chart) error {
	pdf, err := renderPDF(c)
	if err != nil {
		return err
	}
	return renderErr("pdf", pdf.OutputFileAndClose(path))
}

// WritePDF writes the chart as PDF to w.
func WritePDF(w io.Writer, c Chart) error {
	pdf, err := renderPDF(c)
	if err != nil {
		return err
	}
	return renderErr("pdf", pdf.Output(w))
}

func renderPDF(c Chart) (*fpdf.Fpdf, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()
	renderChartPage(pdf, c)

	if err := pdf.Error(); err != nil {
		return nil, renderErr("pdf", err)
	}
	return pdf, nil
}

// renderChartPage draws the title, the seating grid and the summary.
func renderChartPage(pdf *fpdf.Fpdf, c Chart) {
	contentW := pageWidth - marginLeft - marginRight

	// Title
	title := c.Title
	if title == "" {
		title = "Seating Chart"
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentW, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Rows: %d | Seats per row: %d | Seated: %d of %d | Overflow: %d",
		c.Seating.Rows(), c.Seating.Cols(), c.Seated(), c.Capacity(), len(c.Overflow))
	pdf.CellFormat(contentW, 5, stats, "", 0, "L", false, 0, "")

	rows, cols := float64(c.Seating.Rows()), float64(c.Seating.Cols())
	drawWidth := contentW
	drawHeight := pageHeight - drawAreaTop - marginBottom - summaryLines

	// Square seats, scaled to fit
	cell := math.Min(maxCellSize, math.Min(drawWidth/cols, drawHeight/rows))
	canvasW := cell * cols
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Front of room marker
	pdf.SetFillColor(220, 220, 220)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(offsetX, offsetY-frontHeight-3, canvasW, frontHeight, "FD")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(60, 60, 60)
	pdf.SetXY(offsetX, offsetY-frontHeight-3)
	pdf.CellFormat(canvasW, frontHeight, "FRONT OF ROOM", "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", labelFontSize(cell))
	for r, row := range c.Seating {
		for col, s := range row {
			x := offsetX + float64(col)*cell
			y := offsetY + float64(r)*cell
			if s != 0 {
				pdf.SetFillColor(int(seatColor.R), int(seatColor.G), int(seatColor.B))
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			pdf.SetDrawColor(30, 30, 30)
			pdf.Rect(x, y, cell, cell, "FD")

			if label := cellText(s); label != "" {
				pdf.SetTextColor(255, 255, 255)
				pdf.SetXY(x, y)
				pdf.CellFormat(cell, cell, label, "", 0, "CM", false, 0, "")
			}
		}
	}
	pdf.SetTextColor(0, 0, 0)

	drawSummary(pdf, c, offsetY+cell*rows+5)

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.SetXY(marginLeft, pageHeight-marginBottom+3)
	pdf.CellFormat(contentW, 4, "Generated by SeatShuffle", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawSummary lists the overflow students below the grid.
func drawSummary(pdf *fpdf.Fpdf, c Chart, y float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	if len(c.Overflow) == 0 {
		pdf.CellFormat(100, 6, "Every student has a seat.", "", 0, "L", false, 0, "")
		return
	}
	pdf.SetTextColor(200, 0, 0)
	pdf.CellFormat(100, 6, fmt.Sprintf("Without a seat (%d):", len(c.Overflow)), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, y+6)
	pdf.MultiCell(pageWidth-marginLeft-marginRight, 4.5, overflowText(c.Overflow), "", "L", false)
}

// labelFontSize picks a font size that fits a seat label in a cell of the
// given size in mm.
func labelFontSize(cell float64) float64 {
	size := cell * 1.25
	if size > 14 {
		return 14
	}
	if size < 5 {
		return 5
	}
	return size
}
