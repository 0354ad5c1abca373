package cli

import (
	"fmt"
	"os"

	"github.com/piwi3910/SeatShuffle/internal/export"
	"github.com/piwi3910/SeatShuffle/internal/telemetry"
)

// writtenFile records one rendered output.
type writtenFile struct {
	Format string `json:"format"`
	Path   string `json:"path"`
}

// writeCharts renders the chart into every file named by rf. It stops at the
// first failure.
func (s *session) writeCharts(c export.Chart, rf *renderFlags, metrics *telemetry.Metrics) ([]writtenFile, error) {
	outputs := []struct {
		format string
		path   string
		write  func(path string) error
	}{
		{"png", rf.png, func(path string) error { return writePNG(path, c) }},
		{"pdf", rf.pdf, func(path string) error { return export.ExportPDF(path, c) }},
		{"xlsx", rf.xlsx, func(path string) error { return export.ExportXLSX(path, c) }},
		{"cards", rf.cards, func(path string) error { return export.ExportSeatCards(path, c) }},
	}

	var written []writtenFile
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		path := s.outputPath(o.path)
		err := o.write(path)
		if metrics != nil {
			metrics.ObserveRender(o.format, err)
		}
		if err != nil {
			return written, err
		}
		s.log.WithField("path", path).Infof("wrote %s chart", o.format)
		written = append(written, writtenFile{Format: o.format, Path: path})
	}
	return written, nil
}

func writePNG(path string, c export.Chart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return &export.RenderError{Format: "png", Err: err}
	}
	if err := export.ExportPNG(f, c); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &export.RenderError{Format: "png", Err: fmt.Errorf("close %s: %w", path, err)}
	}
	return nil
}
