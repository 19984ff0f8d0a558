package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	BookingTransitions    *prometheus.CounterVec
	AvailabilityConflicts *prometheus.CounterVec
	Recalculations        *prometheus.CounterVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном registry (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of open database connections",
			ConstLabels: labels,
		}),
		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections in use",
			ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_transitions_total",
			Help:        "Booking lifecycle transitions",
			ConstLabels: labels,
		}, []string{"from", "to"}),
		AvailabilityConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_conflicts_total",
			Help:        "Write operations rejected because of a room conflict or missing capacity",
			ConstLabels: labels,
		}, []string{"operation"}),
		Recalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "recalculations_total",
			Help:        "Booking and invoice total recalculations",
			ConstLabels: labels,
		}, []string{"target"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBWaitCount,
		m.BookingTransitions,
		m.AvailabilityConflicts,
		m.Recalculations,
	)

	return m
}

// ObserveHTTP фиксирует один HTTP-запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveQuery фиксирует длительность SQL-операции
func (m *Metrics) ObserveQuery(operation string, err error, d time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(d.Seconds())
}

// Transition реализует интерфейс recorder'а сервиса жизненного цикла
func (m *Metrics) Transition(from, to string) {
	if m == nil {
		return
	}
	m.BookingTransitions.WithLabelValues(from, to).Inc()
}

// Conflict учитывает отклонённую из-за конфликта операцию
func (m *Metrics) Conflict(operation string) {
	if m == nil {
		return
	}
	m.AvailabilityConflicts.WithLabelValues(operation).Inc()
}

// Recalculated учитывает пересчёт итогов (booking / invoice)
func (m *Metrics) Recalculated(target string) {
	if m == nil {
		return
	}
	m.Recalculations.WithLabelValues(target).Inc()
}
