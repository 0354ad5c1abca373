// Package telemetry provides the observability plumbing for SeatShuffle.
//
// It wraps three libraries behind small types:
//
//  1. Logger - structured logging with zerolog
//  2. Metrics - Prometheus counters and histograms on a private registry
//  3. Tracer - OpenTelemetry spans exported as JSON to a file or writer
//
// The seating engine itself never logs or records anything. Callers (the CLI)
// time each engine call and report the outcome here:
//
//	m := telemetry.NewMetrics()
//	timer := telemetry.NewTimer()
//	res, err := eng.Generate(req)
//	m.ObserveGenerate(telemetry.OutcomeOf(err), res.Attempts, timer.Duration())
//	_ = m.WriteToTextfile("/var/lib/node_exporter/seatshuffle.prom")
package telemetry
