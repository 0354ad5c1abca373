package model

import (
	"encoding/json"
	"fmt"
)

// Pair is an unordered pair of students that must not sit in 4-adjacent seats.
// It encodes as a two-element array, e.g. [3, 7].
type Pair [2]int

// Normalize returns the pair with the smaller id first.
func (p Pair) Normalize() Pair {
	if p[0] > p[1] {
		return Pair{p[1], p[0]}
	}
	return p
}

// Has reports whether the student is one of the pair's members.
func (p Pair) Has(student int) bool {
	return p[0] == student || p[1] == student
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p[0], p[1])
}

// FixedSeat pins a student to one cell for every arrangement of a request.
// Row and Col are zero-based.
type FixedSeat struct {
	Student int `json:"student" yaml:"student" validate:"gte=1"`
	Row     int `json:"row" yaml:"row" validate:"gte=0"`
	Col     int `json:"col" yaml:"col" validate:"gte=0"`
}

// Grid is a rows x cols seating chart. A zero cell is empty; in JSON empty
// cells are written as null.
type Grid [][]int

// NewGrid returns an empty rows x cols grid.
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]int, cols)
	}
	return g
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the width of the first row, or 0 for an empty grid.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Occupants returns every seated student in row-major order.
func (g Grid) Occupants() []int {
	var out []int
	for _, row := range g {
		for _, s := range row {
			if s != 0 {
				out = append(out, s)
			}
		}
	}
	return out
}

// Find returns the seat of a student.
func (g Grid) Find(student int) (row, col int, ok bool) {
	for r, cells := range g {
		for c, s := range cells {
			if s == student {
				return r, c, true
			}
		}
	}
	return -1, -1, false
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	cp := make(Grid, len(g))
	for r, row := range g {
		cp[r] = make([]int, len(row))
		copy(cp[r], row)
	}
	return cp
}

// MarshalJSON writes empty cells as null.
func (g Grid) MarshalJSON() ([]byte, error) {
	rows := make([][]*int, len(g))
	for r, cells := range g {
		rows[r] = make([]*int, len(cells))
		for c := range cells {
			if cells[c] != 0 {
				rows[r][c] = &cells[c]
			}
		}
	}
	return json.Marshal(rows)
}

// UnmarshalJSON reads null cells back as empty.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows [][]*int
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if rows == nil {
		*g = nil
		return nil
	}
	out := make(Grid, len(rows))
	for r, cells := range rows {
		out[r] = make([]int, len(cells))
		for c, v := range cells {
			if v != nil {
				out[r][c] = *v
			}
		}
	}
	*g = out
	return nil
}

// Request describes one seating computation. Students are numbered 1..Students.
type Request struct {
	Students       int         `json:"students" yaml:"students" validate:"gte=0,lte=1000000"`
	Rows           int         `json:"rows" yaml:"rows" validate:"gte=1,lte=1000"`
	Cols           int         `json:"cols" yaml:"cols" validate:"gte=1,lte=1000"`
	ForbiddenPairs []Pair      `json:"forbiddenPairs,omitempty" yaml:"forbiddenPairs,omitempty"`
	FixedSeats     []FixedSeat `json:"fixedSeats,omitempty" yaml:"fixedSeats,omitempty" validate:"dive"`
	MaxRetries     int         `json:"maxRetries,omitempty" yaml:"maxRetries,omitempty" validate:"gte=0"`
}

// Capacity returns the number of seats in the room.
func (r Request) Capacity() int {
	return r.Rows * r.Cols
}

// OverflowCount returns how many students cannot be seated.
func (r Request) OverflowCount() int {
	if n := r.Students - r.Capacity(); n > 0 {
		return n
	}
	return 0
}

// Result is a successful seating. PairwiseConflict is always false for results
// produced by the retry engine; it is kept for wire compatibility.
type Result struct {
	Seating          Grid  `json:"seating"`
	Overflow         []int `json:"overflow"`
	PairwiseConflict bool  `json:"pairwiseConflict"`
	Attempts         int   `json:"attempts,omitempty"`
}

// OverflowMode selects how overflow students are chosen when the roster is
// larger than the room.
type OverflowMode string

const (
	// OverflowAnalytic seats fixed students plus the lowest-numbered others and
	// reports the highest-numbered remainder.
	OverflowAnalytic OverflowMode = "analytic"
	// OverflowShuffle reports whichever students the shuffle left unseated.
	OverflowShuffle OverflowMode = "shuffle"
)

// ParseOverflowMode converts a flag or config value to an OverflowMode.
func ParseOverflowMode(s string) (OverflowMode, error) {
	switch OverflowMode(s) {
	case "", OverflowAnalytic:
		return OverflowAnalytic, nil
	case OverflowShuffle:
		return OverflowShuffle, nil
	default:
		return "", fmt.Errorf("%w: unknown overflow mode %q (want analytic or shuffle)", ErrInvalidInput, s)
	}
}

// DefaultMaxRetries is the retry budget used when neither the request nor the
// settings name one.
const DefaultMaxRetries = 1000

// Settings holds engine configuration.
type Settings struct {
	MaxRetries   int          `json:"max_retries"`
	OverflowMode OverflowMode `json:"overflow_mode"`
	Seed         *uint64      `json:"seed,omitempty"` // nil = nondeterministic
}

// DefaultSettings returns the engine settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		MaxRetries:   DefaultMaxRetries,
		OverflowMode: OverflowAnalytic,
	}
}
