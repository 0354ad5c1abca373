package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SeatShuffle/internal/model"
)

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.pdf")

	if err := ExportPDF(path, buildTestChart()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("file does not start with a PDF header")
	}
}

func TestWritePDF_NoOverflow(t *testing.T) {
	var buf bytes.Buffer
	chart := Chart{Seating: model.Grid{{1, 2, 3}, {4, 5, 0}}}

	if err := WritePDF(&buf, chart); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestExportPDF_LargeRoom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hall.pdf")

	g := model.NewGrid(20, 40)
	for r := range g {
		for c := range g[r] {
			g[r][c] = r*40 + c + 1
		}
	}
	if err := ExportPDF(path, Chart{Title: "Exam hall", Seating: g}); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestExportPDF_InvalidChart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.pdf")

	err := ExportPDF(path, Chart{Seating: model.Grid{{1, 2}, {3}}})
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written for an invalid chart")
	}
}

func TestExportPDF_UnwritablePath(t *testing.T) {
	err := ExportPDF(filepath.Join(t.TempDir(), "missing", "chart.pdf"), buildTestChart())
	if !errors.Is(err, ErrRenderingFailure) {
		t.Errorf("expected rendering failure, got %v", err)
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		cell float64
		want float64
	}{
		{30, 14},
		{10, 12.5},
		{2, 5},
	}
	for _, tt := range tests {
		if got := labelFontSize(tt.cell); got != tt.want {
			t.Errorf("labelFontSize(%v) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}
