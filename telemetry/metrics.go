// Package telemetry holds the Prometheus collectors and the OpenTelemetry tracer setup of the crawler.
package telemetry

import (
	"net/http"
	"time"

	"electrumcrawler/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "electrum_crawler"

// Probe results used as the "result" label.
const (
	ResultOK       = "ok"
	ResultConnect  = "connect_error"
	ResultProtocol = "protocol_error"
	ResultRejected = "rejected"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	probes        *prometheus.CounterVec
	probeDuration *prometheus.HistogramVec
	cycles        *prometheus.CounterVec
	cycleDuration *prometheus.HistogramVec
	cycleItems    *prometheus.CounterVec
	cycleSkipped  *prometheus.CounterVec
	servers       *prometheus.GaugeVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		probes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "probes_total",
				Help:      "Feature probes by result.",
			},
			[]string{"result"}),
		probeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "probe_duration_seconds",
				Help:      "Duration of feature probes.",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"result"}),
		cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cycles_total",
				Help:      "Finished registry workflows by task.",
			},
			[]string{"task"}),
		cycleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "cycle_duration_seconds",
				Help:      "Duration of registry workflows.",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 14),
			},
			[]string{"task"}),
		cycleItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cycle_items_total",
				Help:      "Servers handled by registry workflows, by task and outcome.",
			},
			[]string{"task", "outcome"}),
		cycleSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cycle_ticks_skipped_total",
				Help:      "Scheduler ticks dropped because the previous cycle was still running.",
			},
			[]string{"task"}),
		servers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "servers",
				Help:      "Servers returned by the last unfiltered listing, by network.",
			},
			[]string{"network"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.probes,
		m.probeDuration,
		m.cycles,
		m.cycleDuration,
		m.cycleItems,
		m.cycleSkipped,
		m.servers,
	)

	return m
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveProbe records one feature probe.
func (m *Metrics) ObserveProbe(result string, d time.Duration) {
	m.probes.WithLabelValues(result).Inc()
	m.probeDuration.WithLabelValues(result).Observe(d.Seconds())
}

// ObserveCycle records a finished workflow.
func (m *Metrics) ObserveCycle(report domain.CycleReport) {
	task := string(report.Task)
	m.cycles.WithLabelValues(task).Inc()
	m.cycleDuration.WithLabelValues(task).Observe(report.Duration().Seconds())

	for outcome, n := range map[string]int{
		"added":      report.Added,
		"known":      report.Known,
		"suppressed": report.Suppressed,
		"refreshed":  report.Refreshed,
		"stale":      report.Stale,
		"evicted":    report.Evicted,
		"failed":     len(report.Failures),
	} {
		if n > 0 {
			m.cycleItems.WithLabelValues(task, outcome).Add(float64(n))
		}
	}
}

// SkipCycle records a dropped scheduler tick.
func (m *Metrics) SkipCycle(task domain.Task) {
	m.cycleSkipped.WithLabelValues(string(task)).Inc()
}

// SetServers publishes the size of an unfiltered listing.
func (m *Metrics) SetServers(list domain.ServerList) {
	m.servers.WithLabelValues(string(domain.NetworkMainnet)).Set(float64(len(list.Mainnet)))
	m.servers.WithLabelValues(string(domain.NetworkTestnet)).Set(float64(len(list.Testnet)))
}
