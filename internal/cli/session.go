package cli

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/SeatShuffle/internal/engine"
	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/piwi3910/SeatShuffle/internal/project"
	"github.com/piwi3910/SeatShuffle/internal/telemetry"
	"github.com/spf13/cobra"
)

// maxRecentRequests bounds AppConfig.RecentRequests.
const maxRecentRequests = 10

// session is the per-invocation state shared by every command: the loaded
// config, a logger writing to stderr and the output formatter.
type session struct {
	opts       *RootOptions
	configPath string
	cfg        model.AppConfig
	log        *telemetry.Logger
	out        *OutputFormatter
}

func newSession(opts *RootOptions, cmd *cobra.Command, component string) (*session, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	path := opts.ConfigPath
	if path == "" {
		path = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(path)
	if err != nil {
		return nil, out.Fail(err)
	}

	level := cfg.LogLevel
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	if opts.Verbose {
		level = "debug"
	}
	logger, err := telemetry.NewLogger(telemetry.LoggingConfig{
		Level:  level,
		Format: cfg.LogFormat,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, out.Fail(err)
	}

	return &session{
		opts:       opts,
		configPath: path,
		cfg:        cfg,
		log:        logger.NewComponentLogger(component),
		out:        out,
	}, nil
}

// settings returns engine settings from the config defaults.
func (s *session) settings() model.Settings {
	settings := model.DefaultSettings()
	s.cfg.ApplyToSettings(&settings)
	return settings
}

// engine builds an engine from the config defaults and any --overflow and
// --seed flags registered on cmd.
func (s *session) engine(cmd *cobra.Command, ef *engineFlags) (*engine.Engine, error) {
	settings := s.settings()
	if cmd.Flags().Changed("overflow") {
		mode, err := model.ParseOverflowMode(ef.overflow)
		if err != nil {
			return nil, err
		}
		settings.OverflowMode = mode
	}
	if cmd.Flags().Changed("seed") {
		seed := ef.seed
		settings.Seed = &seed
	}
	return engine.New(settings), nil
}

// outputPath resolves a relative output file against the configured output
// directory.
func (s *session) outputPath(path string) string {
	if path == "" || filepath.IsAbs(path) || s.cfg.OutputDir == "" {
		return path
	}
	return filepath.Join(s.cfg.OutputDir, path)
}

// rememberRequest records a request file in the recent list. Failures only
// warn; the command itself already succeeded.
func (s *session) rememberRequest(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	s.cfg.AddRecentRequest(path, maxRecentRequests)
	if err := project.SaveAppConfig(s.configPath, s.cfg); err != nil {
		s.log.WithError(err).Warn("could not update recent requests")
	}
}
