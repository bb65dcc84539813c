// Package metrics registers the Prometheus collectors of the commissions service.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics groups the service collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	quotes               *prometheus.CounterVec
	transitions          *prometheus.CounterVec
	autoCompletions      *prometheus.CounterVec
	certificatesIssued   *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
	jobDuration          *prometheus.HistogramVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commissions_quotes_total",
			Help: "Price quotes computed, by product line and result.",
		}, []string{"product_line", "result"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commissions_order_transitions_total",
			Help: "Order lifecycle transitions, by product line, event and result.",
		}, []string{"product_line", "event", "result"}),
		autoCompletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commissions_order_auto_completions_total",
			Help: "Delivered orders completed after their review deadline.",
		}, []string{"product_line"}),
		certificatesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commissions_certificates_issued_total",
			Help: "Rights certificates issued, by product line and effective rights level.",
		}, []string{"product_line", "rights_level"}),
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commissions_notification_failures_total",
			Help: "Notification dispatches that failed after a committed transition.",
		}, []string{"event"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "commissions_job_duration_seconds",
			Help:    "Duration of scheduled jobs in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),
	}
	if reg != nil {
		reg.MustRegister(
			m.quotes,
			m.transitions,
			m.autoCompletions,
			m.certificatesIssued,
			m.notificationFailures,
			m.jobDuration,
		)
	}
	return m
}

func (m *Metrics) IncQuote(productLine, result string) {
	if m == nil {
		return
	}
	m.quotes.WithLabelValues(normalizeLabel(productLine), result).Inc()
}

func (m *Metrics) IncTransition(productLine, event, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(productLine), normalizeLabel(event), result).Inc()
}

func (m *Metrics) IncAutoCompletion(productLine string) {
	if m == nil {
		return
	}
	m.autoCompletions.WithLabelValues(normalizeLabel(productLine)).Inc()
}

func (m *Metrics) IncCertificateIssued(productLine, rightsLevel string) {
	if m == nil {
		return
	}
	m.certificatesIssued.WithLabelValues(normalizeLabel(productLine), normalizeLabel(rightsLevel)).Inc()
}

func (m *Metrics) IncNotificationFailure(event string) {
	if m == nil {
		return
	}
	m.notificationFailures.WithLabelValues(normalizeLabel(event)).Inc()
}

func (m *Metrics) ObserveJob(job string, d time.Duration) {
	if m == nil {
		return
	}
	m.jobDuration.WithLabelValues(normalizeLabel(job)).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "unknown"
	}
	return v
}
