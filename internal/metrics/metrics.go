// Package metrics exposes Prometheus counters for the consent and booking
// flows and for every RPC.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

type Metrics struct {
	reg *prometheus.Registry

	consent  *prometheus.CounterVec
	bookings *prometheus.CounterVec
	logins   *prometheus.CounterVec
	rpcs     *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		consent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_consent_outcomes_total",
			Help: "Finished consent requests by outcome",
		}, []string{"outcome"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_bookings_total",
			Help: "Booking attempts by result",
		}, []string{"result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		rpcs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_rpc_requests_total",
			Help: "Unary RPCs by method and status code",
		}, []string{"method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clinic_rpc_duration_seconds",
			Help:    "Unary RPC latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
	m.reg.MustRegister(
		m.consent, m.bookings, m.logins, m.rpcs, m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ConsentOutcome satisfies authz.Observer.
func (m *Metrics) ConsentOutcome(outcome string) {
	m.consent.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Booking(result string) {
	m.bookings.WithLabelValues(result).Inc()
}

func (m *Metrics) Login(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.logins.WithLabelValues(result).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// UnaryInterceptor counts and times every unary call.
func (m *Metrics) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		m.latency.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
		m.rpcs.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
		return resp, err
	}
}
