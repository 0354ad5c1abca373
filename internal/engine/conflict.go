package engine

import (
	"fmt"

	"github.com/piwi3910/SeatShuffle/internal/model"
)

// Cell is a zero-based grid position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Conflict is a forbidden pair found in 4-adjacent cells.
type Conflict struct {
	Pair model.Pair `json:"pair"`
	A    Cell       `json:"a"`
	B    Cell       `json:"b"`
}

// pairSet is a lookup of normalized forbidden pairs.
type pairSet map[model.Pair]struct{}

func newPairSet(pairs []model.Pair) pairSet {
	set := make(pairSet, len(pairs))
	for _, p := range pairs {
		set[p.Normalize()] = struct{}{}
	}
	return set
}

func (s pairSet) has(a, b int) bool {
	if a == 0 || b == 0 || len(s) == 0 {
		return false
	}
	_, ok := s[model.Pair{a, b}.Normalize()]
	return ok
}

// scan visits every horizontally and vertically adjacent cell pair whose
// occupants form a forbidden pair. It stops as soon as visit returns false.
func (s pairSet) scan(g model.Grid, visit func(Conflict) bool) {
	if len(s) == 0 {
		return
	}
	for r, row := range g {
		for c, a := range row {
			if a == 0 {
				continue
			}
			if c+1 < len(row) && s.has(a, row[c+1]) {
				if !visit(Conflict{Pair: model.Pair{a, row[c+1]}.Normalize(), A: Cell{r, c}, B: Cell{r, c + 1}}) {
					return
				}
			}
			if r+1 < len(g) && c < len(g[r+1]) && s.has(a, g[r+1][c]) {
				if !visit(Conflict{Pair: model.Pair{a, g[r+1][c]}.Normalize(), A: Cell{r, c}, B: Cell{r + 1, c}}) {
					return
				}
			}
		}
	}
}

func (s pairSet) any(g model.Grid) bool {
	found := false
	s.scan(g, func(Conflict) bool {
		found = true
		return false
	})
	return found
}

// HasConflict reports whether any forbidden pair occupies 4-adjacent cells.
// Diagonal neighbours never conflict and empty cells are ignored.
func HasConflict(g model.Grid, pairs []model.Pair) bool {
	return newPairSet(pairs).any(g)
}

// Conflicts lists every forbidden adjacency in row-major order of the first cell.
func Conflicts(g model.Grid, pairs []model.Pair) []Conflict {
	var out []Conflict
	newPairSet(pairs).scan(g, func(c Conflict) bool {
		out = append(out, c)
		return true
	})
	return out
}
