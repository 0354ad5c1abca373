package cli

import (
	"errors"
	"testing"

	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePair(t *testing.T) {
	p, err := parsePair("3:7")
	require.NoError(t, err)
	assert.Equal(t, model.Pair{3, 7}, p)

	p, err = parsePair(" 12 - 4 ")
	require.NoError(t, err)
	assert.Equal(t, model.Pair{12, 4}, p)

	for _, bad := range []string{"3", "a:b", "1:", ""} {
		_, err := parsePair(bad)
		assert.True(t, errors.Is(err, model.ErrInvalidInput), bad)
	}
}

func TestParseFixedSeat(t *testing.T) {
	fs, err := parseFixedSeat("7@0:3")
	require.NoError(t, err)
	assert.Equal(t, model.FixedSeat{Student: 7, Row: 0, Col: 3}, fs)

	for _, bad := range []string{"7", "7@0", "7@x:1", "@0:1"} {
		_, err := parseFixedSeat(bad)
		assert.True(t, errors.Is(err, model.ErrInvalidInput), bad)
	}
}
