// SeatShuffle - random classroom seating charts with forbidden neighbors
// and fixed seats.
//
// Build:
//
//	go build -o seatshuffle ./cmd/seatshuffle
//
// Example:
//
//	seatshuffle shuffle -n 30 --rows 4 --cols 8 --forbid 1:2 --pdf chart.pdf
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/SeatShuffle/internal/cli"
	"github.com/piwi3910/SeatShuffle/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Version information (set via ldflags during build)
var Version = "dev"

func main() {
	setupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, Version); err != nil {
		log.Debug().Err(err).Msg("command failed")
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}

// setupLogging configures the global zerolog logger used outside commands.
// Commands build their own loggers from the config file and flags.
func setupLogging() {
	level := telemetry.ParseLogLevel(os.Getenv("LOG_LEVEL"))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}
