package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smc"

// Metrics набор prometheus-метрик сервиса.
// Методы можно вызывать на nil: так работает сервис с выключенными метриками.
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbConnections   *prometheus.GaugeVec

	cacheLookups         *prometheus.CounterVec
	cacheRebuildDuration *prometheus.HistogramVec

	staffVerdicts   *prometheus.CounterVec
	recommendations *prometheus.CounterVec
}

// New регистрирует метрики в стандартном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"service", "operation"}),

		dbQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_errors_total",
			Help:      "Total number of failed database queries",
		}, []string{"service", "operation"}),

		dbConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections",
			Help:      "Database connection pool state",
		}, []string{"service", "state"}),

		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_cache_lookups_total",
			Help:      "Availability cache lookups by kind and coherency status",
		}, []string{"service", "kind", "status"}),

		cacheRebuildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "availability_cache_rebuild_duration_seconds",
			Help:      "Time spent recomputing an availability cache entry",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"service", "kind"}),

		staffVerdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "staff_evaluations_total",
			Help:      "Per-staff availability evaluations by verdict",
		}, []string{"service", "verdict"}),

		recommendations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_recommendations_total",
			Help:      "Booking recommendations by feasibility",
		}, []string{"service", "feasible"}),
	}
}

// RecordHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}

// RecordDBQuery учитывает выполненный запрос к БД
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBConnections выставляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.dbConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

// RecordCacheLookup учитывает обращение к кэшу доступности
func (m *Metrics) RecordCacheLookup(kind, status string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(m.serviceName, kind, status).Inc()
}

// ObserveCacheRebuild учитывает длительность пересчета записи кэша
func (m *Metrics) ObserveCacheRebuild(kind string, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheRebuildDuration.WithLabelValues(m.serviceName, kind).Observe(duration.Seconds())
}

// RecordStaffVerdict учитывает результат проверки мастера
func (m *Metrics) RecordStaffVerdict(verdict string) {
	if m == nil {
		return
	}
	m.staffVerdicts.WithLabelValues(m.serviceName, verdict).Inc()
}

// RecordRecommendation учитывает итоговую рекомендацию
func (m *Metrics) RecordRecommendation(feasible bool) {
	if m == nil {
		return
	}
	m.recommendations.WithLabelValues(m.serviceName, strconv.FormatBool(feasible)).Inc()
}
