package report

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for exercise runs
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

// Metrics are boring counters plus one histogram.
// Every sample is explainable by a single timer report or command run.
type Metrics struct {
	registry *prometheus.Registry

	timerReports  *prometheus.CounterVec
	elapsed       *prometheus.HistogramVec
	exerciseRuns  *prometheus.CounterVec
	commandsTotal *prometheus.CounterVec
}

// NewMetrics creates metrics registered on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		timerReports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "es123_timer_reports_total",
				Help: "Elapsed-time reports emitted, by clock",
			},
			[]string{"clock"},
		),
		elapsed: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "es123_timer_elapsed_seconds",
				Help:    "Reported elapsed time in seconds, by clock",
				Buckets: prometheus.ExponentialBuckets(0.0001, 10, 8),
			},
			[]string{"clock"},
		),
		exerciseRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "es123_exercise_runs_total",
				Help: "Exercise program runs, by exercise and outcome",
			},
			[]string{"exercise", "outcome"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "es123_commands_total",
				Help: "Timed child commands, by exit class",
			},
			[]string{"exit"},
		),
	}

	m.registry.MustRegister(m.timerReports, m.elapsed, m.exerciseRuns, m.commandsTotal)
	return m
}

// Registry returns the registry metrics are gathered from
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordReport counts one timer report
func (m *Metrics) RecordReport(clock string, seconds float64) {
	m.timerReports.WithLabelValues(clock).Inc()
	m.elapsed.WithLabelValues(clock).Observe(seconds)
}

// RecordExercise counts one exercise run by outcome
func (m *Metrics) RecordExercise(exercise, outcome string) {
	m.exerciseRuns.WithLabelValues(exercise, outcome).Inc()
}

// RecordResult counts one timed command from its immutable result
func (m *Metrics) RecordResult(r *Result) {
	exit := "zero"
	if r.ExitCode != 0 {
		exit = "non_zero"
	}
	m.commandsTotal.WithLabelValues(exit).Inc()
	m.RecordReport(r.Clock, r.ElapsedSeconds)
}
