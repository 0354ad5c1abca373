package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/piwi3910/SeatShuffle/internal/engine"
	"github.com/piwi3910/SeatShuffle/internal/export"
	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/piwi3910/SeatShuffle/internal/project"
	"github.com/piwi3910/SeatShuffle/internal/telemetry"
	"github.com/spf13/cobra"
)

// ShuffleOptions holds the flags of the shuffle command.
type ShuffleOptions struct {
	request requestFlags
	engine  engineFlags
	render  renderFlags

	resultPath      string
	saveRequestPath string
	metricsPath     string
	tracePath       string
}

// ShuffleResult is the JSON payload of a successful shuffle.
type ShuffleResult struct {
	model.Result
	Files []writtenFile `json:"files,omitempty"`
}

// NewShuffleCommand creates the shuffle command.
func NewShuffleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShuffleOptions{}

	cmd := &cobra.Command{
		Use:   "shuffle",
		Short: "Generate a random seating chart",
		Long: `Generate a random seating chart for a class.

The request comes from --request, --template or flags, optionally extended
with a constraint sheet. Students are shuffled into the room row by row until
no forbidden pair sits side by side (left/right or front/back) or the retry
budget runs out. Students that do not fit are reported as overflow.`,
		Example: `  seatshuffle shuffle -n 30 --rows 4 --cols 8 --forbid 1:2 --forbid 5:9
  seatshuffle shuffle -r class.yaml --pdf chart.pdf --seed 42
  seatshuffle shuffle -t 3B --constraints rules.xlsx --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShuffle(rootOpts, opts, cmd)
		},
	}

	opts.request.register(cmd)
	opts.engine.register(cmd)
	opts.render.register(cmd)
	cmd.Flags().StringVarP(&opts.resultPath, "out", "o", "", "write the result JSON ({seating, overflow, pairwiseConflict}) to a file")
	cmd.Flags().StringVar(&opts.saveRequestPath, "save-request", "", "write the assembled request to a file")
	cmd.Flags().StringVar(&opts.metricsPath, "metrics-file", "", "write Prometheus metrics in text format to a file")
	cmd.Flags().StringVar(&opts.tracePath, "trace-file", "", "write OpenTelemetry spans as JSON to a file")

	return cmd
}

func runShuffle(rootOpts *RootOptions, opts *ShuffleOptions, cmd *cobra.Command) error {
	s, err := newSession(rootOpts, cmd, "shuffle")
	if err != nil {
		return err
	}

	req, err := opts.request.build(cmd, s)
	if err != nil {
		return s.out.Fail(err)
	}
	eng, err := s.engine(cmd, &opts.engine)
	if err != nil {
		return s.out.Fail(err)
	}

	tracer := telemetry.NoopTracer()
	if opts.tracePath != "" {
		tracer, err = telemetry.NewFileTracer(s.outputPath(opts.tracePath), rootOpts.Version)
		if err != nil {
			return s.out.Fail(err)
		}
	}
	defer func() {
		if err := tracer.Shutdown(cmd.Context()); err != nil {
			s.log.WithError(err).Warn("failed to flush traces")
		}
	}()

	metrics := telemetry.NewMetrics()
	defer func() {
		if opts.metricsPath == "" {
			return
		}
		if err := metrics.WriteToTextfile(s.outputPath(opts.metricsPath)); err != nil {
			s.log.WithError(err).Warn("failed to write metrics")
		}
	}()

	runID := uuid.New().String()[:8]
	log := s.log.WithRunID(runID).WithFields(map[string]any{
		"students": req.Students,
		"rows":     req.Rows,
		"cols":     req.Cols,
	})

	_, span := tracer.StartGenerateSpan(cmd.Context(), runID, req)
	defer span.End()

	timer := telemetry.NewTimer()
	res, err := eng.Generate(req)
	elapsed := timer.Duration()

	attempts := res.Attempts
	var pe *engine.PlacementError
	if errors.As(err, &pe) {
		attempts = pe.Attempts
	}
	metrics.ObserveGenerate(telemetry.OutcomeOf(err), attempts, elapsed)

	if err != nil {
		telemetry.RecordError(span, err)
		log.WithError(err).WithFields(map[string]any{
			"attempts": attempts,
			"duration": elapsed.String(),
		}).Warn("seating generation failed")
		return s.out.Fail(err)
	}
	telemetry.RecordResult(span, res)
	log.WithFields(map[string]any{
		"attempts": res.Attempts,
		"overflow": len(res.Overflow),
		"duration": elapsed.String(),
	}).Info("seating generated")

	if opts.request.requestPath != "" {
		s.rememberRequest(opts.request.requestPath)
	}
	if opts.saveRequestPath != "" {
		if err := project.SaveRequest(s.outputPath(opts.saveRequestPath), req); err != nil {
			return s.out.Fail(err)
		}
	}
	if opts.resultPath != "" {
		if err := project.SaveResult(s.outputPath(opts.resultPath), res); err != nil {
			return s.out.Fail(err)
		}
	}

	chart := export.NewChart(opts.render.title, res)
	files, err := s.writeCharts(chart, &opts.render, metrics)
	if err != nil {
		telemetry.RecordError(span, err)
		return s.out.Fail(err)
	}

	if s.out.JSON() {
		return s.out.SuccessWithRun(runID, ShuffleResult{Result: res, Files: files})
	}
	text, err := export.FormatText(chart)
	if err != nil {
		return s.out.Fail(err)
	}
	w := s.out.Writer
	fmt.Fprint(w, text)
	fmt.Fprintf(w, "Attempts: %d\n", res.Attempts)
	for _, f := range files {
		fmt.Fprintf(w, "Wrote %s: %s\n", f.Format, f.Path)
	}
	return nil
}
