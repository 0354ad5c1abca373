// Package export renders seating charts to PDF, PNG, Excel, plain text and
// QR-coded seat cards.
package export

import (
	"errors"
	"fmt"

	"github.com/piwi3910/SeatShuffle/internal/model"
)

// ErrRenderingFailure is matched by every *RenderError.
var ErrRenderingFailure = errors.New("rendering failure")

// RenderError wraps a failure of the underlying rendering library.
type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrRenderingFailure) match.
func (e *RenderError) Is(target error) bool {
	return target == ErrRenderingFailure
}

func renderErr(format string, err error) error {
	if err == nil {
		return nil
	}
	return &RenderError{Format: format, Err: err}
}

// Chart is a seating grid ready for rendering.
type Chart struct {
	Title    string     `json:"title,omitempty"`
	Seating  model.Grid `json:"seating"`
	Overflow []int      `json:"overflow"`
}

// NewChart builds a chart from an engine result.
func NewChart(title string, res model.Result) Chart {
	return Chart{Title: title, Seating: res.Seating, Overflow: res.Overflow}
}

// seatColor is the fill of an occupied seat.
var seatColor = struct{ R, G, B uint8 }{R: 33, G: 150, B: 243}

// Validate checks that the seating is a non-empty rectangular grid of
// non-negative ids.
func (c Chart) Validate() error {
	var fields []model.FieldError
	switch {
	case len(c.Seating) == 0:
		fields = append(fields, model.FieldError{Field: "seating", Message: "must have at least one row"})
	case len(c.Seating[0]) == 0:
		fields = append(fields, model.FieldError{Field: "seating", Message: "rows must have at least one seat"})
	default:
		cols := len(c.Seating[0])
		for r, row := range c.Seating {
			if len(row) != cols {
				fields = append(fields, model.FieldError{
					Field:   fmt.Sprintf("seating[%d]", r),
					Message: fmt.Sprintf("has %d seats, expected %d", len(row), cols),
				})
			}
			for col, s := range row {
				if s < 0 {
					fields = append(fields, model.FieldError{
						Field:   fmt.Sprintf("seating[%d][%d]", r, col),
						Message: fmt.Sprintf("student id must not be negative, got %d", s),
					})
				}
			}
		}
	}
	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}

// Seated returns the number of occupied seats.
func (c Chart) Seated() int {
	return len(c.Seating.Occupants())
}

// Capacity returns the number of seats.
func (c Chart) Capacity() int {
	return c.Seating.Rows() * c.Seating.Cols()
}

// cellText is the label drawn in a seat; empty seats have none.
func cellText(id int) string {
	if id == 0 {
		return ""
	}
	return fmt.Sprint(id)
}
