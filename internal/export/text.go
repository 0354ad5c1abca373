package export

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatText renders the chart as a fixed-width table for terminals. The
// front of the room is the top row.
func FormatText(c Chart) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	width := 2
	for _, s := range c.Seating.Occupants() {
		if n := len(strconv.Itoa(s)); n > width {
			width = n
		}
	}

	border := "+" + strings.Repeat(strings.Repeat("-", width+2)+"+", c.Seating.Cols()) + "\n"

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(c.Title + "\n")
	}
	b.WriteString(border)
	for _, row := range c.Seating {
		b.WriteString("|")
		for _, s := range row {
			fmt.Fprintf(&b, " %*s |", width, cellText(s))
		}
		b.WriteString("\n")
		b.WriteString(border)
	}

	fmt.Fprintf(&b, "Seated: %d of %d seats\n", c.Seated(), c.Capacity())
	b.WriteString("Overflow: " + overflowText(c.Overflow) + "\n")
	return b.String(), nil
}

func overflowText(overflow []int) string {
	if len(overflow) == 0 {
		return "none"
	}
	ids := make([]string, len(overflow))
	for i, s := range overflow {
		ids[i] = strconv.Itoa(s)
	}
	return strings.Join(ids, ", ")
}
