package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/SeatShuffle/internal/importer"
	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/piwi3910/SeatShuffle/internal/project"
	"github.com/spf13/cobra"
)

// requestFlags are the flags that describe a seating request. A request is
// assembled from a template, a request file or the configured room size, then
// flag overrides, then a constraint sheet.
type requestFlags struct {
	requestPath     string
	templateName    string
	constraintsPath string
	zeroBased       bool

	students   int
	rows       int
	cols       int
	maxRetries int
	forbid     []string
	fix        []string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.requestPath, "request", "r", "", "request file (.yaml, .yml or .json)")
	fl.StringVarP(&f.templateName, "template", "t", "", "start from a saved class template (name or ID)")
	fl.StringVar(&f.constraintsPath, "constraints", "", "constraint sheet (.csv or .xlsx) with fixed seats and forbidden pairs")
	fl.BoolVar(&f.zeroBased, "zero-based", false, "constraint sheet numbers rows and columns from 0")
	fl.IntVarP(&f.students, "students", "n", 0, "number of students")
	fl.IntVar(&f.rows, "rows", 0, "number of seat rows (default from config)")
	fl.IntVar(&f.cols, "cols", 0, "number of seats per row (default from config)")
	fl.IntVar(&f.maxRetries, "max-retries", 0, "retry budget (default from config)")
	fl.StringSliceVar(&f.forbid, "forbid", nil, "forbidden pair A:B, repeatable")
	fl.StringSliceVar(&f.fix, "fix", nil, "fixed seat STUDENT@ROW:COL (0-based), repeatable")
	cmd.MarkFlagsMutuallyExclusive("request", "template")
}

// build assembles the request. It does not validate it; the engine does.
func (f *requestFlags) build(cmd *cobra.Command, s *session) (model.Request, error) {
	var req model.Request

	switch {
	case f.templateName != "":
		store, err := project.LoadDefaultTemplates()
		if err != nil {
			return req, err
		}
		tmpl := store.FindByName(f.templateName)
		if tmpl == nil {
			tmpl = store.FindByID(f.templateName)
		}
		if tmpl == nil {
			return req, fmt.Errorf("%w: unknown template %q", model.ErrInvalidInput, f.templateName)
		}
		req = tmpl.ToRequest()
		s.log.Debugf("using template %s (%s)", tmpl.Name, tmpl.ID)
	case f.requestPath != "":
		loaded, err := project.LoadRequest(f.requestPath)
		if err != nil {
			return req, err
		}
		req = loaded
	default:
		s.cfg.ApplyToRequest(&req)
	}

	fl := cmd.Flags()
	if fl.Changed("students") {
		req.Students = f.students
	}
	if fl.Changed("rows") {
		req.Rows = f.rows
	}
	if fl.Changed("cols") {
		req.Cols = f.cols
	}
	if fl.Changed("max-retries") {
		req.MaxRetries = f.maxRetries
	}

	for _, v := range f.forbid {
		p, err := parsePair(v)
		if err != nil {
			return req, err
		}
		req.ForbiddenPairs = append(req.ForbiddenPairs, p)
	}
	for _, v := range f.fix {
		fs, err := parseFixedSeat(v)
		if err != nil {
			return req, err
		}
		req.FixedSeats = append(req.FixedSeats, fs)
	}

	if f.constraintsPath != "" {
		res := importer.Import(f.constraintsPath, importer.Options{ZeroBased: f.zeroBased})
		for _, w := range res.Warnings {
			s.log.Warn(w)
		}
		if res.HasErrors() {
			return req, fmt.Errorf("%w: constraint sheet %s: %s",
				model.ErrInvalidInput, f.constraintsPath, strings.Join(res.Errors, "; "))
		}
		res.Apply(&req)
		s.log.Debugf("imported %d fixed seats and %d forbidden pairs from %s",
			len(res.FixedSeats), len(res.ForbiddenPairs), f.constraintsPath)
	}

	return req, nil
}

// engineFlags select engine behavior that is not part of the request.
type engineFlags struct {
	overflow string
	seed     uint64
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.overflow, "overflow", "", "overflow selection: analytic or shuffle (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for a reproducible shuffle")
}

// parsePair reads "A:B" (also "A-B").
func parsePair(s string) (model.Pair, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		a, b, ok = strings.Cut(s, "-")
	}
	if !ok {
		return model.Pair{}, fmt.Errorf("%w: forbidden pair %q: want A:B", model.ErrInvalidInput, s)
	}
	x, err1 := strconv.Atoi(strings.TrimSpace(a))
	y, err2 := strconv.Atoi(strings.TrimSpace(b))
	if err1 != nil || err2 != nil {
		return model.Pair{}, fmt.Errorf("%w: forbidden pair %q: students must be numbers", model.ErrInvalidInput, s)
	}
	return model.Pair{x, y}, nil
}

// parseFixedSeat reads "STUDENT@ROW:COL".
func parseFixedSeat(s string) (model.FixedSeat, error) {
	student, cell, ok := strings.Cut(s, "@")
	row, col, ok2 := strings.Cut(cell, ":")
	if !ok || !ok2 {
		return model.FixedSeat{}, fmt.Errorf("%w: fixed seat %q: want STUDENT@ROW:COL", model.ErrInvalidInput, s)
	}
	var nums [3]int
	for i, part := range []string{student, row, col} {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return model.FixedSeat{}, fmt.Errorf("%w: fixed seat %q: %q is not a number", model.ErrInvalidInput, s, part)
		}
		nums[i] = n
	}
	return model.FixedSeat{Student: nums[0], Row: nums[1], Col: nums[2]}, nil
}

// renderFlags name the chart files to write.
type renderFlags struct {
	title string
	png   string
	pdf   string
	xlsx  string
	cards string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "chart title")
	fl.StringVar(&f.png, "png", "", "write the chart as PNG")
	fl.StringVar(&f.pdf, "pdf", "", "write the chart as PDF")
	fl.StringVar(&f.xlsx, "xlsx", "", "write the chart as an Excel workbook")
	fl.StringVar(&f.cards, "cards", "", "write printable seat cards (PDF)")
}
