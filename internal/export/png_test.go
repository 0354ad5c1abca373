package export

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportPNG(&buf, buildTestChart()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")), "output should be a PNG")

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8*CellPixels, img.Bounds().Dx())
	assert.Equal(t, 4*CellPixels, img.Bounds().Dy())
}

func TestRenderImage_Colors(t *testing.T) {
	img, err := RenderImage(Chart{Seating: model.Grid{{7, 0}}})
	require.NoError(t, err)

	// Near the corner of each cell, away from the outline and the label.
	assert.Equal(t, pngSeat, img.RGBAAt(5, 5), "occupied seat should be blue")
	assert.Equal(t, pngEmpty, img.RGBAAt(CellPixels+5, 5), "empty seat should be white")
	assert.Equal(t, pngStroke, img.RGBAAt(0, 50), "cells are outlined")
	assert.Equal(t, pngStroke, img.RGBAAt(CellPixels-1, 50))
}

func TestRenderImage_DrawsLabels(t *testing.T) {
	img, err := RenderImage(Chart{Seating: model.Grid{{88}}})
	require.NoError(t, err)

	dark := 0
	for y := 35; y < 65; y++ {
		for x := 35; x < 65; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{A: 255}) {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 10, "the student id should be drawn in the middle of the seat")
}

func TestExportPNG_InvalidChart(t *testing.T) {
	var buf bytes.Buffer
	err := ExportPNG(&buf, Chart{})
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
	assert.Zero(t, buf.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestExportPNG_WriteFailure(t *testing.T) {
	err := ExportPNG(failingWriter{}, buildTestChart())
	assert.True(t, errors.Is(err, ErrRenderingFailure))
}
