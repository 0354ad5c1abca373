package cli

import (
	"fmt"

	"github.com/piwi3910/SeatShuffle/internal/export"
	"github.com/piwi3910/SeatShuffle/internal/project"
	"github.com/spf13/cobra"
)

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	rf := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <result.json>",
		Short: "Render an existing seating result",
		Long: `Render a seating result ({"seating": [[...]], "overflow": [...]}) as a text
table and, optionally, as PNG, PDF, Excel or seat cards. Empty seats are null.`,
		Example: `  seatshuffle render result.json --png chart.png --title "Room 204"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, rf, args[0], cmd)
		},
	}
	rf.register(cmd)
	return cmd
}

func runRender(rootOpts *RootOptions, rf *renderFlags, path string, cmd *cobra.Command) error {
	s, err := newSession(rootOpts, cmd, "render")
	if err != nil {
		return err
	}

	res, err := project.LoadResult(path)
	if err != nil {
		return s.out.Fail(err)
	}
	chart := export.NewChart(rf.title, res)
	if err := chart.Validate(); err != nil {
		return s.out.Fail(err)
	}

	files, err := s.writeCharts(chart, rf, nil)
	if err != nil {
		return s.out.Fail(err)
	}

	if s.out.JSON() {
		return s.out.Success(map[string]any{
			"seated":   chart.Seated(),
			"capacity": chart.Capacity(),
			"overflow": chart.Overflow,
			"files":    files,
		})
	}
	text, err := export.FormatText(chart)
	if err != nil {
		return s.out.Fail(err)
	}
	fmt.Fprint(s.out.Writer, text)
	for _, f := range files {
		fmt.Fprintf(s.out.Writer, "Wrote %s: %s\n", f.Format, f.Path)
	}
	return nil
}
