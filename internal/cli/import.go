package cli

import (
	"fmt"
	"strings"

	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/piwi3910/SeatShuffle/internal/project"
	"github.com/spf13/cobra"
)

// ImportSummary is the JSON payload of the import command.
type ImportSummary struct {
	Request model.Request `json:"request"`
	Path    string        `json:"path,omitempty"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		rf      requestFlags
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "import <sheet.csv|sheet.xlsx>",
		Short: "Convert a constraint sheet into a request file",
		Long: `Read fixed seats and forbidden pairs from a CSV or Excel sheet and write
them, together with the class size and room dimensions, as a request file.

Each sheet row is either a fixed seat (kind "fixed", student, row, col) or a
forbidden pair (kind "apart", student, partner). Rows and columns are
numbered from 1 unless --zero-based is given.`,
		Example: `  seatshuffle import rules.csv -n 30 --rows 5 --cols 6 -o class.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "import")
			if err != nil {
				return err
			}

			rf.constraintsPath = args[0]
			req, err := rf.build(cmd, s)
			if err != nil {
				return s.out.Fail(err)
			}
			if err := req.Validate(); err != nil {
				return s.out.Fail(err)
			}

			if outPath != "" {
				if err := project.SaveRequest(s.outputPath(outPath), req); err != nil {
					return s.out.Fail(err)
				}
				s.rememberRequest(s.outputPath(outPath))
			}

			if s.out.JSON() {
				return s.out.Success(ImportSummary{Request: req, Path: outPath})
			}
			fmt.Fprintf(s.out.Writer, "Imported %d fixed seat(s) and %d forbidden pair(s)\n",
				len(req.FixedSeats), len(req.ForbiddenPairs))
			if outPath != "" {
				fmt.Fprintf(s.out.Writer, "Wrote request: %s\n", s.outputPath(outPath))
			} else {
				fmt.Fprintln(s.out.Writer, strings.Repeat("-", 20))
				fmt.Fprint(s.out.Writer, describeRequest(req))
			}
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the request to a file (.yaml or .json)")
	// The sheet is the positional argument here.
	_ = cmd.Flags().MarkHidden("constraints")
	return cmd
}

// describeRequest renders a request for terminal output.
func describeRequest(req model.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Students: %d\n", req.Students)
	fmt.Fprintf(&b, "Room: %d rows x %d seats (%d seats)\n", req.Rows, req.Cols, req.Capacity())
	if n := req.OverflowCount(); n > 0 {
		fmt.Fprintf(&b, "Overflow: %d student(s) will not be seated\n", n)
	}
	if req.MaxRetries > 0 {
		fmt.Fprintf(&b, "Retry budget: %d\n", req.MaxRetries)
	}
	if len(req.ForbiddenPairs) > 0 {
		pairs := make([]string, len(req.ForbiddenPairs))
		for i, p := range req.ForbiddenPairs {
			pairs[i] = p.String()
		}
		fmt.Fprintf(&b, "Forbidden pairs: %s\n", strings.Join(pairs, ", "))
	}
	for _, fs := range req.FixedSeats {
		fmt.Fprintf(&b, "Fixed: student %d at row %d, seat %d\n", fs.Student, fs.Row, fs.Col)
	}
	return b.String()
}
