package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

func TestNewOrderMetrics(t *testing.T) {
	metrics := newOrderMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newOrderMetricsWithRegisterer should not return nil")
	}

	if metrics.ordersCreated == nil {
		t.Error("ordersCreated counter should not be nil")
	}

	if metrics.statusTransitions == nil {
		t.Error("statusTransitions counter vec should not be nil")
	}

	if metrics.historyAppends == nil {
		t.Error("historyAppends counter should not be nil")
	}

	if metrics.repoOpDuration == nil {
		t.Error("repoOpDuration histogram vec should not be nil")
	}
}

func TestRegisterTwiceReturnsExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := newOrderMetricsWithRegisterer(reg)
	second := newOrderMetricsWithRegisterer(reg)

	first.OrderCreated()
	second.OrderCreated()

	metric := &dto.Metric{}
	if err := first.ordersCreated.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected shared counter value 2.0, got %f", metric.Counter.GetValue())
	}
}

func TestOrderCreated(t *testing.T) {
	metrics := newOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.OrderCreated()
	metrics.OrderCreated()
	metrics.OrderCreated()

	metric := &dto.Metric{}
	if err := metrics.ordersCreated.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 3.0 {
		t.Errorf("expected counter value 3.0, got %f", metric.Counter.GetValue())
	}
}

func TestStatusTransition(t *testing.T) {
	metrics := newOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.StatusTransition(domain.OrderStatusConfirmed)
	metrics.StatusTransition(domain.OrderStatusConfirmed)
	metrics.StatusTransition(domain.OrderStatusCanceled)

	confirmed := &dto.Metric{}
	if err := metrics.statusTransitions.WithLabelValues("confirmed").Write(confirmed); err != nil {
		t.Fatalf("failed to write confirmed metric: %v", err)
	}
	if confirmed.Counter.GetValue() != 2.0 {
		t.Errorf("expected confirmed transitions 2.0, got %f", confirmed.Counter.GetValue())
	}

	canceled := &dto.Metric{}
	if err := metrics.statusTransitions.WithLabelValues("canceled").Write(canceled); err != nil {
		t.Fatalf("failed to write canceled metric: %v", err)
	}
	if canceled.Counter.GetValue() != 1.0 {
		t.Errorf("expected canceled transitions 1.0, got %f", canceled.Counter.GetValue())
	}
}

func TestHistoryAppended(t *testing.T) {
	metrics := newOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.HistoryAppended()
	metrics.HistoryAppended()

	metric := &dto.Metric{}
	if err := metrics.historyAppends.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected counter value 2.0, got %f", metric.Counter.GetValue())
	}
}

func TestObserveRepoOp(t *testing.T) {
	metrics := newOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.ObserveRepoOp("create", 0.1)
	metrics.ObserveRepoOp("create", 0.5)
	metrics.ObserveRepoOp("get", 0.025)

	observer := metrics.repoOpDuration.WithLabelValues("create")
	metric := &dto.Metric{}
	if err := observer.(prometheus.Histogram).Write(metric); err != nil {
		t.Fatalf("failed to write create metric: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("expected 2 samples for create, got %d", metric.Histogram.GetSampleCount())
	}

	// Check sum is approximately correct (0.1 + 0.5 = 0.6)
	sum := metric.Histogram.GetSampleSum()
	if sum < 0.55 || sum > 0.65 {
		t.Errorf("expected sum around 0.6, got %f", sum)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var metrics *OrderMetrics

	metrics.OrderCreated()
	metrics.StatusTransition(domain.OrderStatusShipped)
	metrics.HistoryAppended()
	metrics.ObserveRepoOp("create", 0.1)
}
