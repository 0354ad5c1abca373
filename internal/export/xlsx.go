package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names used by ExportXLSX.
const (
	SeatingSheet  = "Seating"
	OverflowSheet = "Overflow"
)

// ExportXLSX writes the chart to an Excel workbook. The seating sheet has the
// title in A1, seat numbers in row 2, row numbers in column A and one student
// id per seat cell; the overflow sheet lists unseated students.
func ExportXLSX(path string, c Chart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := buildWorkbook(c)
	if err != nil {
		return renderErr("xlsx", err)
	}
	defer f.Close()
	return renderErr("xlsx", f.SaveAs(path))
}

func buildWorkbook(c Chart) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SeatingSheet); err != nil {
		return nil, err
	}

	seatStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fmt.Sprintf("%02X%02X%02X", seatColor.R, seatColor.G, seatColor.B)}},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorders(),
	})
	if err != nil {
		return nil, err
	}
	emptyStyle, err := f.NewStyle(&excelize.Style{Border: cellBorders()})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	title := c.Title
	if title == "" {
		title = "Seating Chart"
	}
	if err := f.SetCellValue(SeatingSheet, "A1", title); err != nil {
		return nil, err
	}

	for col := range c.Seating.Cols() {
		ref, _ := excelize.CoordinatesToCellName(col+2, 2)
		if err := f.SetCellValue(SeatingSheet, ref, fmt.Sprintf("Seat %d", col+1)); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(SeatingSheet, ref, ref, headerStyle); err != nil {
			return nil, err
		}
	}

	for r, row := range c.Seating {
		labelRef, _ := excelize.CoordinatesToCellName(1, r+3)
		if err := f.SetCellValue(SeatingSheet, labelRef, fmt.Sprintf("Row %d", r+1)); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(SeatingSheet, labelRef, labelRef, headerStyle); err != nil {
			return nil, err
		}
		for col, s := range row {
			ref, _ := excelize.CoordinatesToCellName(col+2, r+3)
			style := emptyStyle
			if s != 0 {
				if err := f.SetCellValue(SeatingSheet, ref, s); err != nil {
					return nil, err
				}
				style = seatStyle
			}
			if err := f.SetCellStyle(SeatingSheet, ref, ref, style); err != nil {
				return nil, err
			}
		}
	}

	if _, err := f.NewSheet(OverflowSheet); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(OverflowSheet, "A1", "Student"); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(OverflowSheet, "A1", "A1", headerStyle); err != nil {
		return nil, err
	}
	for i, s := range c.Overflow {
		ref, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(OverflowSheet, ref, s); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func cellBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}
