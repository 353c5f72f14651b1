package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.Order),
	}
}

// Create сохраняет новый заказ вместе с позициями.
func (r *orderRepositoryInMemory) Create(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return domain.ErrOrderAlreadyExists
	}
	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.items[order.ID] = cloneOrder(order)
	return nil
}

// Get возвращает заказ с позициями и журналом или ErrOrderNotFound.
func (r *orderRepositoryInMemory) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// List возвращает все заказы с позициями в заданном порядке.
// Журнал статусов на списочном пути не возвращается.
func (r *orderRepositoryInMemory) List(_ context.Context, s domain.ListSort) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		clone := cloneOrder(order)
		clone.Histories = nil
		result = append(result, clone)
	}

	sort.Slice(result, func(i, j int) bool {
		return lessOrders(result[i], result[j], s)
	})

	return result, nil
}

// UpdateStatus применяет статус и отметку времени обновления.
func (r *orderRepositoryInMemory) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = &updatedAt
	r.items[id] = order
	return nil
}

// AppendHistory добавляет запись журнала статусов к заказу.
func (r *orderRepositoryInMemory) AppendHistory(_ context.Context, history domain.OrderHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[history.OrderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Histories = append(order.Histories, history)

	sort.Slice(order.Histories, func(i, j int) bool {
		return order.Histories[i].ChangedAt.Before(order.Histories[j].ChangedAt)
	})

	r.items[history.OrderID] = order
	return nil
}

// Summary считает заказы по статусам в границах [from, to] по created_at.
func (r *orderRepositoryInMemory) Summary(_ context.Context, from, to *time.Time) ([]domain.StatusCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.OrderStatus]int64)
	for _, order := range r.items {
		if from != nil && order.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && order.CreatedAt.After(*to) {
			continue
		}
		counts[order.Status]++
	}

	result := make([]domain.StatusCount, 0, len(counts))
	for status, count := range counts {
		result = append(result, domain.StatusCount{Status: status, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Status < result[j].Status
	})

	return result, nil
}

func lessOrders(a, b domain.Order, s domain.ListSort) bool {
	var less, equal bool
	switch s.Key {
	case domain.SortKeyCustomerName:
		cmp := strings.Compare(a.CustomerName, b.CustomerName)
		less, equal = cmp < 0, cmp == 0
	case domain.SortKeyUpdatedAt:
		at, bt := updatedOrZero(a), updatedOrZero(b)
		less, equal = at.Before(bt), at.Equal(bt)
	default:
		less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
	}

	// При равенстве ключей порядок стабилизируется по ID.
	if equal {
		return a.ID < b.ID
	}
	if s.Desc {
		return !less
	}
	return less
}

func updatedOrZero(o domain.Order) time.Time {
	if o.UpdatedAt == nil {
		return time.Time{}
	}
	return *o.UpdatedAt
}

func cloneOrder(order domain.Order) domain.Order {
	clone := order
	clone.Items = make([]domain.OrderItem, len(order.Items))
	copy(clone.Items, order.Items)
	clone.Histories = make([]domain.OrderHistory, len(order.Histories))
	copy(clone.Histories, order.Histories)
	if order.UpdatedAt != nil {
		at := *order.UpdatedAt
		clone.UpdatedAt = &at
	}
	return clone
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
