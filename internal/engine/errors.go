package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/SeatShuffle/internal/model"
)

// CodePlacementExhausted identifies a failed seating in machine-readable output.
const CodePlacementExhausted = "PLACEMENT_EXHAUSTED"

// ErrPlacementExhausted is matched by every *PlacementError.
var ErrPlacementExhausted = errors.New("placement exhausted")

// PlacementError reports that no arrangement avoiding the forbidden
// adjacencies was found. Attempts is 0 when fixed seats alone already put a
// forbidden pair side by side; Pair is set in that case.
type PlacementError struct {
	Code     string      `json:"code"`
	Message  string      `json:"message"`
	Attempts int         `json:"attempts"`
	Budget   int         `json:"budget"`
	Pair     *model.Pair `json:"pair,omitempty"`
}

func (e *PlacementError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrPlacementExhausted) match.
func (e *PlacementError) Is(target error) bool {
	return target == ErrPlacementExhausted
}

func exhausted(budget int) *PlacementError {
	return &PlacementError{
		Code:     CodePlacementExhausted,
		Message:  fmt.Sprintf("retry budget of %d attempts exceeded: no arrangement avoiding the forbidden adjacencies was found", budget),
		Attempts: budget,
		Budget:   budget,
	}
}

func fixedConflict(c Conflict, budget int) *PlacementError {
	pair := c.Pair
	return &PlacementError{
		Code: CodePlacementExhausted,
		Message: fmt.Sprintf("no arrangement avoiding the forbidden adjacencies exists: fixed seats put pair %s in adjacent cells %s and %s",
			pair, c.A, c.B),
		Budget: budget,
		Pair:   &pair,
	}
}
