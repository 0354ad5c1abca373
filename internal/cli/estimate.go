package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/piwi3910/SeatShuffle/internal/engine"
	"github.com/spf13/cobra"
)

// NewEstimateCommand creates the estimate command.
func NewEstimateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		rf      requestFlags
		ef      engineFlags
		trials  int
		budgets []int
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate how often a retry budget succeeds",
		Long: `Run the same request many times under several retry budgets and report
the success rate and the number of shuffles consumed. Use it to pick a
--max-retries value for tight rooms.`,
		Example: `  seatshuffle estimate -r class.yaml --trials 200
  seatshuffle estimate -n 30 --rows 5 --cols 6 --forbid 1:2 --budgets 10,100,1000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "estimate")
			if err != nil {
				return err
			}
			req, err := rf.build(cmd, s)
			if err != nil {
				return s.out.Fail(err)
			}
			eng, err := s.engine(cmd, &ef)
			if err != nil {
				return s.out.Fail(err)
			}

			scenarios := engine.BuildDefaultBudgets(eng.Budget(req))
			if len(budgets) > 0 {
				scenarios = make([]engine.BudgetScenario, len(budgets))
				for i, b := range budgets {
					scenarios[i] = engine.BudgetScenario{Name: fmt.Sprintf("Budget %d", b), Budget: b}
				}
			}

			s.log.Debugf("estimating %d budgets with %d trials each", len(scenarios), trials)
			results, err := eng.EstimateBudget(req, scenarios, trials)
			if err != nil {
				return s.out.Fail(err)
			}

			if s.out.JSON() {
				return s.out.Success(results)
			}
			tw := tabwriter.NewWriter(s.out.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tBUDGET\tSUCCESS\tMEAN ATTEMPTS\tMAX ATTEMPTS")
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%d\t%.1f%%\t%.1f\t%d\n",
					r.Scenario.Name, r.Scenario.Budget, r.SuccessRate*100, r.MeanAttempts, r.MaxAttempts)
			}
			return tw.Flush()
		},
	}

	rf.register(cmd)
	ef.register(cmd)
	cmd.Flags().IntVar(&trials, "trials", 100, "runs per budget")
	cmd.Flags().IntSliceVar(&budgets, "budgets", nil, "budgets to try (default: current, minimal, tenth and tenfold)")
	return cmd
}
