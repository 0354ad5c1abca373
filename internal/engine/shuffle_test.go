package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffle_IsPermutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for n := 0; n <= 50; n++ {
		in := Roster(n)
		orig := slices.Clone(in)

		out := Shuffle(rng, in)

		assert.Len(t, out, n)
		assert.Equal(t, orig, in, "input must not be modified")
		sorted := slices.Clone(out)
		slices.Sort(sorted)
		assert.Equal(t, orig, sorted, "n=%d: output must contain the same elements", n)
	}
}

func TestShuffle_Duplicates(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	in := []int{4, 4, 2, 2, 2, 9}
	out := Shuffle(rng, in)
	slices.Sort(out)
	assert.Equal(t, []int{2, 2, 2, 4, 4, 9}, out)
}

// Every permutation of four elements should appear about equally often.
func TestShuffle_Uniform(t *testing.T) {
	const trials = 48000
	rng := rand.New(rand.NewPCG(42, 1042))
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		counts[fmt.Sprint(Shuffle(rng, []int{1, 2, 3, 4}))]++
	}
	require.Len(t, counts, 24, "every permutation must be reachable")

	expected := float64(trials) / 24
	chi := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi += d * d / expected
	}
	// 23 degrees of freedom; the 99.99th percentile is about 55.
	assert.Less(t, chi, 60.0, "chi-square statistic too large: %v", counts)
}

func TestRoster(t *testing.T) {
	assert.Equal(t, []int{}, Roster(0))
	assert.Equal(t, []int{}, Roster(-3))
	assert.Equal(t, []int{1, 2, 3}, Roster(3))
}

func TestPlaceFixedSeats(t *testing.T) {
	g := model.NewGrid(2, 2)
	rest := PlaceFixedSeats(g, []model.FixedSeat{{Student: 3, Row: 1, Col: 0}}, []int{4, 3, 1, 2})

	assert.Equal(t, model.Grid{{0, 0}, {3, 0}}, g)
	assert.Equal(t, []int{4, 1, 2}, rest, "pool order is kept")
}

func TestFillRowMajor(t *testing.T) {
	t.Run("skips occupied cells", func(t *testing.T) {
		g := model.Grid{{0, 9, 0}, {0, 0, 0}}
		rest := FillRowMajor(g, []int{5, 6, 7})
		assert.Equal(t, model.Grid{{5, 9, 6}, {7, 0, 0}}, g)
		assert.Empty(t, rest)
	})

	t.Run("returns what did not fit", func(t *testing.T) {
		g := model.NewGrid(1, 2)
		rest := FillRowMajor(g, []int{5, 6, 7, 8})
		assert.Equal(t, model.Grid{{5, 6}}, g)
		assert.Equal(t, []int{7, 8}, rest)
	})

	t.Run("empty pool", func(t *testing.T) {
		g := model.NewGrid(1, 2)
		assert.Empty(t, FillRowMajor(g, nil))
		assert.Equal(t, model.Grid{{0, 0}}, g)
	})
}
