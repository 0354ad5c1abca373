package export

import (
	"errors"
	"testing"

	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatText_Golden(t *testing.T) {
	tests := []struct {
		name  string
		chart Chart
	}{
		{
			name: "chart_with_overflow",
			chart: Chart{
				Title:    "Room 204",
				Seating:  model.Grid{{3, 1, 12}, {2, 0, 5}},
				Overflow: []int{13, 14},
			},
		},
		{
			name:  "chart_wide_ids",
			chart: Chart{Seating: model.Grid{{100, 7}, {42, 1000}}},
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := FormatText(tt.chart)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(out))
		})
	}
}

func TestFormatText_InvalidChart(t *testing.T) {
	_, err := FormatText(Chart{Seating: model.Grid{{1}, {2, 3}}})
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}
