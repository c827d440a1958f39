// Package metrics records command and phase metrics in a Prometheus
// registry. The CLI is short-lived, so metrics are written to a textfile for
// the node exporter instead of being served.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Command results.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Recorder holds the metrics of one CLI run.
type Recorder struct {
	registry *prometheus.Registry

	commandTotal    *prometheus.CounterVec
	phaseDuration   *prometheus.HistogramVec
	phaseFailures   *prometheus.CounterVec
	dnsRecordsTotal *prometheus.GaugeVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		commandTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "slsfw",
				Name:      "command_total",
				Help:      "Total number of commands by result",
			},
			[]string{"command", "result"},
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "slsfw",
				Name:      "phase_duration_seconds",
				Help:      "Duration of provisioning phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~51s
			},
			[]string{"phase"},
		),
		phaseFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "slsfw",
				Name:      "phase_failures_total",
				Help:      "Total number of failed provisioning phases",
			},
			[]string{"phase"},
		),
		dnsRecordsTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "slsfw",
				Name:      "dns_records_total",
				Help:      "Number of DNS records bound per domain",
			},
			[]string{"domain"},
		),
	}

	r.registry.MustRegister(r.commandTotal, r.phaseDuration, r.phaseFailures, r.dnsRecordsTotal)
	return r
}

// Registry returns the registry the metrics are registered with.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// RecordCommand counts a finished command.
func (r *Recorder) RecordCommand(command string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	r.commandTotal.WithLabelValues(command, result).Inc()
}

// ObservePhase implements provisioning.PhaseRecorder.
func (r *Recorder) ObservePhase(phase string, seconds float64, err error) {
	r.phaseDuration.WithLabelValues(phase).Observe(seconds)
	if err != nil {
		r.phaseFailures.WithLabelValues(phase).Inc()
	}
}

// RecordDNSRecords sets the number of records bound for domain.
func (r *Recorder) RecordDNSRecords(domain string, count int) {
	r.dnsRecordsTotal.WithLabelValues(domain).Set(float64(count))
}

// WriteTextfile writes every metric to path in the text exposition format.
// An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
