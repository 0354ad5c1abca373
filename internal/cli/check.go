package cli

import (
	"fmt"

	"github.com/piwi3910/SeatShuffle/internal/engine"
	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/piwi3910/SeatShuffle/internal/project"
	"github.com/spf13/cobra"
)

// ConflictView is one forbidden adjacency in check output.
type ConflictView struct {
	Pair model.Pair `json:"pair"`
	A    [2]int     `json:"a"`
	B    [2]int     `json:"b"`
}

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Clean     bool           `json:"clean"`
	Conflicts []ConflictView `json:"conflicts"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		requestPath string
		forbid      []string
	)

	cmd := &cobra.Command{
		Use:   "check <result.json>",
		Short: "Report forbidden pairs seated next to each other",
		Long: `Check a seating result against forbidden pairs taken from a request file
and/or --forbid flags. Only left/right and front/back neighbors count.
Exits with status 1 when a conflict is found.`,
		Example: `  seatshuffle check result.json -r class.yaml
  seatshuffle check result.json --forbid 1:2 --forbid 3:4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "check")
			if err != nil {
				return err
			}

			var pairs []model.Pair
			if requestPath != "" {
				req, err := project.LoadRequest(requestPath)
				if err != nil {
					return s.out.Fail(err)
				}
				pairs = append(pairs, req.ForbiddenPairs...)
			}
			for _, v := range forbid {
				p, err := parsePair(v)
				if err != nil {
					return s.out.Fail(err)
				}
				pairs = append(pairs, p)
			}
			if len(pairs) == 0 {
				return s.out.Fail(fmt.Errorf("%w: no forbidden pairs given (use --request or --forbid)", model.ErrInvalidInput))
			}

			res, err := project.LoadResult(args[0])
			if err != nil {
				return s.out.Fail(err)
			}
			return reportConflicts(s, engine.Conflicts(res.Seating, pairs))
		},
	}

	cmd.Flags().StringVarP(&requestPath, "request", "r", "", "request file providing forbidden pairs")
	cmd.Flags().StringSliceVar(&forbid, "forbid", nil, "forbidden pair A:B, repeatable")
	return cmd
}

func reportConflicts(s *session, conflicts []engine.Conflict) error {
	out := CheckResult{Clean: len(conflicts) == 0, Conflicts: make([]ConflictView, len(conflicts))}
	for i, c := range conflicts {
		out.Conflicts[i] = ConflictView{
			Pair: c.Pair,
			A:    [2]int{c.A.Row, c.A.Col},
			B:    [2]int{c.B.Row, c.B.Col},
		}
	}

	if s.out.JSON() {
		if err := s.out.Success(out); err != nil {
			return err
		}
	} else if out.Clean {
		fmt.Fprintln(s.out.Writer, "✓ No forbidden pairs are adjacent")
	} else {
		fmt.Fprintf(s.out.Writer, "✗ %d conflict(s) found\n", len(conflicts))
		for _, c := range conflicts {
			fmt.Fprintf(s.out.Writer, "  pair %s at %s and %s\n", c.Pair, c.A, c.B)
		}
	}

	if !out.Clean {
		return WrapExitError(ExitFailure, ErrCodeConflicts, fmt.Errorf("%d forbidden adjacencies", len(conflicts)))
	}
	return nil
}
