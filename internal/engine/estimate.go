package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/SeatShuffle/internal/model"
)

// BudgetScenario is a named retry budget to try against a request.
type BudgetScenario struct {
	Name   string
	Budget int
}

// BudgetEstimate holds the outcome statistics of running one request many
// times under a single retry budget.
type BudgetEstimate struct {
	Scenario     BudgetScenario `json:"scenario"`
	Trials       int            `json:"trials"`
	Successes    int            `json:"successes"`
	SuccessRate  float64        `json:"success_rate"`
	MeanAttempts float64        `json:"mean_attempts"`
	MaxAttempts  int            `json:"max_attempts"`
}

// EstimateBudget runs req trials times for each scenario and reports how often
// the budget sufficed and how many shuffles were consumed. Failed trials count
// their whole budget towards the attempt statistics. Invalid requests return
// an error before any trial runs.
func (e *Engine) EstimateBudget(req model.Request, scenarios []BudgetScenario, trials int) ([]BudgetEstimate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", model.ErrInvalidInput, trials)
	}

	results := make([]BudgetEstimate, 0, len(scenarios))
	for _, sc := range scenarios {
		if sc.Budget <= 0 {
			return nil, fmt.Errorf("%w: scenario %q has budget %d", model.ErrInvalidInput, sc.Name, sc.Budget)
		}
		r := req
		r.MaxRetries = sc.Budget

		est := BudgetEstimate{Scenario: sc, Trials: trials}
		total := 0
		for i := 0; i < trials; i++ {
			attempts := 0
			res, err := e.Generate(r)
			if err != nil {
				var perr *PlacementError
				if !errors.As(err, &perr) {
					return nil, err
				}
				// A fixed-seat conflict fails before any shuffle; it still
				// costs the caller the whole budget.
				attempts = sc.Budget
			} else {
				attempts = res.Attempts
				est.Successes++
			}
			total += attempts
			if attempts > est.MaxAttempts {
				est.MaxAttempts = attempts
			}
		}
		est.SuccessRate = float64(est.Successes) / float64(trials)
		est.MeanAttempts = float64(total) / float64(trials)
		results = append(results, est)
	}
	return results, nil
}

// BuildDefaultBudgets generates what-if scenarios around a base budget,
// from a minimal budget of 10 up to ten times the base.
func BuildDefaultBudgets(base int) []BudgetScenario {
	if base <= 0 {
		base = model.DefaultMaxRetries
	}
	scenarios := []BudgetScenario{
		{Name: "Current Budget", Budget: base},
	}

	if base != 10 {
		scenarios = append(scenarios, BudgetScenario{Name: "Minimal (10)", Budget: 10})
	}

	if tenth := base / 10; tenth > 10 {
		scenarios = append(scenarios, BudgetScenario{
			Name:   fmt.Sprintf("Tenth (%d)", tenth),
			Budget: tenth,
		})
	}

	scenarios = append(scenarios, BudgetScenario{
		Name:   fmt.Sprintf("Tenfold (%d)", base*10),
		Budget: base * 10,
	})

	return scenarios
}
