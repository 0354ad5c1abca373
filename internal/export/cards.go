package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// SeatCard holds the data encoded into each seat card's QR code. Row and Col
// are zero-based like the seating grid.
type SeatCard struct {
	Student int `json:"student"`
	Row     int `json:"row"`
	Col     int `json:"col"`
}

// Card layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectSeatCards lists one card per seated student in row-major order.
func CollectSeatCards(c Chart) []SeatCard {
	var cards []SeatCard
	for r, row := range c.Seating {
		for col, s := range row {
			if s != 0 {
				cards = append(cards, SeatCard{Student: s, Row: r, Col: col})
			}
		}
	}
	return cards
}

// ExportSeatCards generates a PDF of QR-coded seat cards, one per seated
// student, laid out on a standard label sheet (Avery 5160 / 3 columns x 10
// rows on US Letter).
func ExportSeatCards(path string, c Chart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	cards := CollectSeatCards(c)
	if len(cards) == 0 {
		return renderErr("cards", fmt.Errorf("no seated students to make cards for"))
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, card := range cards {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		x := labelMarginLeft + float64(posOnPage%labelCols)*labelWidth
		y := labelMarginTop + float64(posOnPage/labelCols)*labelHeight

		if err := renderSeatCard(pdf, x, y, c.Title, card); err != nil {
			return renderErr("cards", fmt.Errorf("card for student %d: %w", card.Student, err))
		}
	}

	return renderErr("cards", pdf.OutputFileAndClose(path))
}

// renderSeatCard draws a single card at the given position.
func renderSeatCard(pdf *fpdf.Fpdf, x, y float64, title string, card SeatCard) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal seat card: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", card.Student)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 6, fmt.Sprintf("Student %d", card.Student), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(textX, y+labelPadding+7)
	pdf.CellFormat(textW, 4, fmt.Sprintf("Row %d, Seat %d", card.Row+1, card.Col+1), "", 1, "L", false, 0, "")

	if title != "" {
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(100, 100, 100)
		pdf.SetXY(textX, y+labelPadding+12)
		// Truncate title if too long
		label := title
		if pdf.GetStringWidth(label) > textW {
			for len(label) > 0 && pdf.GetStringWidth(label+"...") > textW {
				label = label[:len(label)-1]
			}
			label += "..."
		}
		pdf.CellFormat(textW, 3, label, "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	return pdf.Error()
}
