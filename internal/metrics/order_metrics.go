package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// OrderMetrics содержит метрики операций над заказами.
type OrderMetrics struct {
	// Счётчики операций
	ordersCreated     prometheus.Counter
	statusTransitions *prometheus.CounterVec
	historyAppends    prometheus.Counter

	// Гистограмма времени обращений к хранилищу
	repoOpDuration *prometheus.HistogramVec
}

// NewOrderMetrics создаёт новый экземпляр метрик заказов.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created",
		}),
		statusTransitions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_status_transitions_total",
			Help: "Total number of order status transitions",
		}, []string{"to_status"}),
		historyAppends: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_history_appends_total",
			Help: "Total number of order history records appended",
		}),
		repoOpDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "orders_repository_op_duration_seconds",
			Help:    "Duration of order repository operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"op"}),
	}
}

// OrderCreated учитывает созданный заказ.
func (m *OrderMetrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// StatusTransition учитывает переход заказа в новый статус.
func (m *OrderMetrics) StatusTransition(to domain.OrderStatus) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(string(to)).Inc()
}

// HistoryAppended учитывает добавленную запись журнала статусов.
func (m *OrderMetrics) HistoryAppended() {
	if m == nil {
		return
	}
	m.historyAppends.Inc()
}

// ObserveRepoOp фиксирует длительность операции хранилища в секундах.
func (m *OrderMetrics) ObserveRepoOp(op string, seconds float64) {
	if m == nil {
		return
	}
	m.repoOpDuration.WithLabelValues(op).Observe(seconds)
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
