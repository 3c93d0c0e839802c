package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты вызовов внешнего календаря
const (
	ResultSuccess    = "success"
	ResultPermission = "permission"
	ResultTransient  = "transient"
	ResultError      = "error"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасно вызывать на nil-указателе (метрики выключены)
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	calendarCallsTotal   *prometheus.CounterVec
	calendarDuration     *prometheus.HistogramVec
	availabilityFailOpen prometheus.Counter
	slotConflictsTotal   prometheus.Counter
	bookingsTotal        *prometheus.CounterVec
	notificationsTotal   *prometheus.CounterVec
}

// New регистрирует метрики в переданном регистраторе
// Для production используется prometheus.DefaultRegisterer, в тестах - prometheus.NewRegistry()
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		calendarCallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_calls_total",
			Help:        "Total number of calls to the external calendar",
			ConstLabels: labels,
		}, []string{"operation", "result"}),
		calendarDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "calendar_call_duration_seconds",
			Help:        "External calendar call latency",
			ConstLabels: labels,
			Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"operation"}),
		availabilityFailOpen: factory.NewCounter(prometheus.CounterOpts{
			Name:        "availability_fail_open_total",
			Help:        "Availability responses served from the unfiltered business-hours template",
			ConstLabels: labels,
		}),
		slotConflictsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "booking_slot_conflicts_total",
			Help:        "Bookings rejected because the slot became busy",
			ConstLabels: labels,
		}),
		bookingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_total",
			Help:        "Booking attempts by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		notificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Outgoing notifications by channel and result",
			ConstLabels: labels,
		}, []string{"channel", "result"}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveCalendarCall фиксирует вызов внешнего календаря
func (m *Metrics) ObserveCalendarCall(operation, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.calendarCallsTotal.WithLabelValues(operation, result).Inc()
	m.calendarDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncAvailabilityFailOpen фиксирует ответ доступности без фильтрации по занятости
func (m *Metrics) IncAvailabilityFailOpen() {
	if m == nil {
		return
	}
	m.availabilityFailOpen.Inc()
}

// IncSlotConflict фиксирует отказ в бронировании из-за занятого слота
func (m *Metrics) IncSlotConflict() {
	if m == nil {
		return
	}
	m.slotConflictsTotal.Inc()
}

// IncBooking фиксирует исход попытки бронирования
func (m *Metrics) IncBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

// IncNotification фиксирует отправку уведомления
func (m *Metrics) IncNotification(channel, result string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(channel, result).Inc()
}
