package engine

import (
	"math/rand/v2"

	"github.com/piwi3910/SeatShuffle/internal/model"
)

// Shuffle returns a uniformly random permutation of in (Fisher-Yates). The
// input slice is not modified.
func Shuffle(rng *rand.Rand, in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Roster returns the student ids 1..n.
func Roster(n int) []int {
	if n <= 0 {
		return []int{}
	}
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

// PlaceFixedSeats writes every fixed seat into the grid and returns the pool
// without the fixed students, keeping pool order.
func PlaceFixedSeats(g model.Grid, fixed []model.FixedSeat, pool []int) []int {
	if len(fixed) == 0 {
		return pool
	}
	pinned := make(map[int]bool, len(fixed))
	for _, fs := range fixed {
		g[fs.Row][fs.Col] = fs.Student
		pinned[fs.Student] = true
	}
	rest := make([]int, 0, len(pool))
	for _, s := range pool {
		if !pinned[s] {
			rest = append(rest, s)
		}
	}
	return rest
}

// FillRowMajor fills the empty cells of g row by row, left to right, with pool
// students in pool order. Students that did not fit are returned.
func FillRowMajor(g model.Grid, pool []int) []int {
	next := 0
	for r := range g {
		for c := range g[r] {
			if next == len(pool) {
				return pool[next:]
			}
			if g[r][c] == 0 {
				g[r][c] = pool[next]
				next++
			}
		}
	}
	return pool[next:]
}
