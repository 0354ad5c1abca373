package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// CellPixels is the edge length of one seat in PNG charts.
const CellPixels = 100

var (
	pngSeat   = color.RGBA{R: seatColor.R, G: seatColor.G, B: seatColor.B, A: 255}
	pngEmpty  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	pngStroke = color.RGBA{A: 255}
)

// RenderImage draws the chart as a grid of CellPixels squares: occupied seats
// are filled blue, empty seats white, and each id is centered in its seat.
func RenderImage(c Chart) (*image.RGBA, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rows, cols := c.Seating.Rows(), c.Seating.Cols()
	img := image.NewRGBA(image.Rect(0, 0, cols*CellPixels, rows*CellPixels))

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(pngStroke), Face: face}
	ascent := face.Metrics().Ascent.Ceil()

	for r, row := range c.Seating {
		for col, s := range row {
			cell := image.Rect(col*CellPixels, r*CellPixels, (col+1)*CellPixels, (r+1)*CellPixels)
			fill := pngEmpty
			if s != 0 {
				fill = pngSeat
			}
			draw.Draw(img, cell, image.NewUniform(fill), image.Point{}, draw.Src)
			strokeRect(img, cell)

			label := cellText(s)
			if label == "" {
				continue
			}
			w := d.MeasureString(label).Ceil()
			x := cell.Min.X + (CellPixels-w)/2
			y := cell.Min.Y + (CellPixels+ascent)/2
			d.Dot = fixed.P(x, y)
			d.DrawString(label)
		}
	}
	return img, nil
}

// strokeRect draws a one-pixel outline just inside r.
func strokeRect(img *image.RGBA, r image.Rectangle) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, pngStroke)
		img.SetRGBA(x, r.Max.Y-1, pngStroke)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, pngStroke)
		img.SetRGBA(r.Max.X-1, y, pngStroke)
	}
}

// ExportPNG writes the chart to w as a PNG image.
func ExportPNG(w io.Writer, c Chart) error {
	img, err := RenderImage(c)
	if err != nil {
		return err
	}
	return renderErr("png", png.Encode(w, img))
}
