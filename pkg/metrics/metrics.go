package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	AppointmentsCreated   *prometheus.CounterVec
	AppointmentsCancelled *prometheus.CounterVec
	OffersRedeemed        *prometheus.CounterVec
	TournamentMatches     *prometheus.CounterVec
	PrizesDistributed     *prometheus.CounterVec
}

// New регистрирует метрики в глобальном registry prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном registry
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		AppointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Booked hour slots",
			ConstLabels: constLabels,
		}, []string{"machine"}),
		AppointmentsCancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_cancelled_total",
			Help:        "Cancelled hour slots",
			ConstLabels: constLabels,
		}, []string{"machine"}),
		OffersRedeemed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "offers_redeemed_total",
			Help:        "Special offers consumed by bookings",
			ConstLabels: constLabels,
		}, []string{"type"}),
		TournamentMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "tournament_match_results_total",
			Help:        "Recorded tournament match results",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		PrizesDistributed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "tournament_prize_offers_total",
			Help:        "Offers emitted for tournament prizes",
			ConstLabels: constLabels,
		}, []string{"type"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.AppointmentsCreated,
		m.AppointmentsCancelled,
		m.OffersRedeemed,
		m.TournamentMatches,
		m.PrizesDistributed,
	)

	return m
}
