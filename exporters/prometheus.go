// Package exporters turns UUT test reports into external formats: Prometheus
// metrics for monitoring test stations and JUnit XML for CI systems.
package exporters

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rom8726/uutreport"
)

// PrometheusExporter aggregates report outcomes into Prometheus metrics.
// Register it once per process and feed it every finished report.
type PrometheusExporter struct {
	registry *prometheus.Registry

	reportsTotal *prometheus.CounterVec
	stepsTotal   *prometheus.CounterVec
	uploadsTotal *prometheus.CounterVec
	execSeconds  *prometheus.HistogramVec
	measurements *prometheus.CounterVec
}

// NewPrometheusExporter creates an exporter with its own registry. Namespace
// prefixes every metric name, e.g. "wats".
func NewPrometheusExporter(namespace string) *PrometheusExporter {
	exp := &PrometheusExporter{
		registry: prometheus.NewRegistry(),
		reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Finished UUT reports by process and result code.",
		}, []string{"process", "result"}),
		stepsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Report steps by step type and status code.",
		}, []string{"step_type", "status"}),
		uploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Report upload attempts by outcome.",
		}, []string{"outcome"}),
		execSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "execution_seconds",
			Help:      "UUT execution time by process.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"process"}),
		measurements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurements_total",
			Help:      "Recorded measurements by kind and status code.",
		}, []string{"kind", "status"}),
	}

	exp.registry.MustRegister(
		exp.reportsTotal,
		exp.stepsTotal,
		exp.uploadsTotal,
		exp.execSeconds,
		exp.measurements,
	)

	return exp
}

// Record walks a finished report and bumps the counters for it
func (p *PrometheusExporter) Record(report *uutreport.Report) {
	process := report.ProcessName
	if process == "" {
		process = "unknown"
	}

	p.reportsTotal.WithLabelValues(process, string(report.Result)).Inc()
	if report.UUT != nil && report.UUT.ExecTime != nil {
		p.execSeconds.WithLabelValues(process).Observe(*report.UUT.ExecTime)
	}

	p.recordStep(report.Root)
}

func (p *PrometheusExporter) recordStep(step *uutreport.Step) {
	p.stepsTotal.WithLabelValues(string(step.Type), string(step.Status)).Inc()

	for _, meas := range step.NumericMeas {
		p.measurements.WithLabelValues("numeric", string(meas.Status)).Inc()
	}
	for _, meas := range step.StringMeas {
		p.measurements.WithLabelValues("string", string(meas.Status)).Inc()
	}
	for _, meas := range step.BooleanMeas {
		p.measurements.WithLabelValues("boolean", string(meas.Status)).Inc()
	}

	for _, child := range step.Steps {
		p.recordStep(child)
	}
}

// RecordUpload bumps the upload counter. Outcome is "success" or "failure".
func (p *PrometheusExporter) RecordUpload(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	p.uploadsTotal.WithLabelValues(outcome).Inc()
}

// Handler returns an HTTP handler serving the exporter's metrics
func (p *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and custom gatherers
func (p *PrometheusExporter) Registry() *prometheus.Registry {
	return p.registry
}
