// Package orders реализует бизнес-правила управления заказами поверх
// доменного репозитория: валидацию входа, учёт смен статуса в журнале
// и преобразование сущностей в транспортные представления.
package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/contracts"
	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
)

// Service реализует операции управления заказами.
type Service struct {
	repo    domain.OrderRepository
	logger  *log.Entry
	metrics *metrics.OrderMetrics
}

// NewService конструирует сервис с зависимостями.
func NewService(repo domain.OrderRepository, m *metrics.OrderMetrics, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &Service{
		repo:    repo,
		logger:  logger,
		metrics: m,
	}
}

// Create создаёт заказ с позициями и начальной записью журнала статусов.
//
// Запись выполняется двумя отдельными обращениями к хранилищу: сначала
// заказ с позициями, затем запись журнала. Общей транзакции между ними
// нет, сбой между шагами оставит заказ без начальной записи журнала.
func (s *Service) Create(ctx context.Context, req contracts.CreateOrderRequest) (contracts.OrderDetails, error) {
	req.ApplyDefaults()

	if err := validateCreateRequest(req); err != nil {
		return contracts.OrderDetails{}, err
	}

	now := time.Now().UTC()
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			ID:        uuid.NewString(),
			ItemName:  item.ItemName,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
		})
	}

	order := domain.Order{
		ID:           uuid.NewString(),
		CustomerName: req.CustomerName,
		Notes:        req.Notes,
		Status:       domain.OrderStatusPending,
		CreatedAt:    now,
		Items:        items,
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return contracts.OrderDetails{}, domain.NewValidationError("order", "%s", joinErrors(errs))
	}

	s.logger.WithField("customer_name", order.CustomerName).Info("creating new order")

	done := s.timeRepoOp("create")
	err := s.repo.Create(ctx, order)
	done()
	if err != nil {
		s.logger.WithError(err).Error("failed to create order")
		return contracts.OrderDetails{}, fmt.Errorf("%w: failed to persist order", domain.ErrInternal)
	}
	s.metrics.OrderCreated()

	history := domain.OrderHistory{
		ID:         uuid.NewString(),
		OrderID:    order.ID,
		FromStatus: domain.OrderStatusPending,
		ToStatus:   domain.OrderStatusPending,
		ChangedBy:  req.ChangedBy,
		ChangedAt:  time.Now().UTC(),
		Reason:     req.Reason,
	}

	if err := s.appendHistory(ctx, history); err != nil {
		return contracts.OrderDetails{}, err
	}
	order.Histories = append(order.Histories, history)

	s.logger.WithFields(log.Fields{
		"order_id":   order.ID,
		"changed_by": history.ChangedBy,
	}).Info("order created")

	return toDetails(order, true), nil
}

// GetByID возвращает полное представление заказа с позициями и журналом.
func (s *Service) GetByID(ctx context.Context, id string) (contracts.OrderDetails, error) {
	order, err := s.loadOrder(ctx, id, "GetByID")
	if err != nil {
		return contracts.OrderDetails{}, err
	}
	return toDetails(order, true), nil
}

// List возвращает все заказы с позициями, отсортированные по ключу.
// Нераспознанный ключ сортировки трактуется как createdAt.
func (s *Service) List(ctx context.Context, sortBy string, desc bool) ([]contracts.OrderDetails, error) {
	sort := domain.ListSort{Key: domain.ParseSortKey(sortBy), Desc: desc}

	done := s.timeRepoOp("list")
	orders, err := s.repo.List(ctx, sort)
	done()
	if err != nil {
		s.logger.WithError(err).Error("failed to list orders")
		return nil, fmt.Errorf("%w: failed to list orders", domain.ErrInternal)
	}

	result := make([]contracts.OrderDetails, 0, len(orders))
	for _, order := range orders {
		result = append(result, toDetails(order, false))
	}
	return result, nil
}

// UpdateStatus назначает заказу новый статус и добавляет запись журнала
// о переходе. Переход в текущий статус допустим и тоже фиксируется;
// таблица допустимых переходов намеренно отсутствует.
func (s *Service) UpdateStatus(ctx context.Context, id string, req contracts.UpdateOrderStatusRequest) (contracts.OrderDetails, error) {
	if !req.NewStatus.Valid() {
		return contracts.OrderDetails{}, domain.NewValidationError("new_status", "unsupported status %q", string(req.NewStatus))
	}
	if strings.TrimSpace(req.ChangedBy) == "" {
		return contracts.OrderDetails{}, domain.NewValidationError("changed_by", "is required")
	}

	order, err := s.loadOrder(ctx, id, "UpdateStatus")
	if err != nil {
		return contracts.OrderDetails{}, err
	}

	oldStatus := order.Status
	now := time.Now().UTC()

	done := s.timeRepoOp("update_status")
	err = s.repo.UpdateStatus(ctx, order.ID, req.NewStatus, now)
	done()
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("failed to update order status")
		if domain.IsNotFound(err) {
			return contracts.OrderDetails{}, domain.ErrOrderNotFound
		}
		return contracts.OrderDetails{}, fmt.Errorf("%w: failed to update order status", domain.ErrInternal)
	}
	s.metrics.StatusTransition(req.NewStatus)

	s.logger.WithFields(log.Fields{
		"order_id":   order.ID,
		"old_status": oldStatus,
		"new_status": req.NewStatus,
	}).Info("order status updated")

	history := domain.OrderHistory{
		ID:         uuid.NewString(),
		OrderID:    order.ID,
		FromStatus: oldStatus,
		ToStatus:   req.NewStatus,
		ChangedBy:  req.ChangedBy,
		ChangedAt:  time.Now().UTC(),
		Reason:     req.Reason,
	}

	if err := s.appendHistory(ctx, history); err != nil {
		return contracts.OrderDetails{}, err
	}

	order.Status = req.NewStatus
	order.UpdatedAt = &now
	order.Histories = append(order.Histories, history)

	return toDetails(order, true), nil
}

// Summary возвращает количество заказов по статусам в границах диапазона
// дат создания. Статусы без заказов не включаются.
func (s *Service) Summary(ctx context.Context, req contracts.SummaryRequest) ([]contracts.StatusSummary, error) {
	done := s.timeRepoOp("summary")
	counts, err := s.repo.Summary(ctx, req.FromDate, req.ToDate)
	done()
	if err != nil {
		s.logger.WithError(err).Error("failed to build order summary")
		return nil, fmt.Errorf("%w: failed to build order summary", domain.ErrInternal)
	}

	result := make([]contracts.StatusSummary, 0, len(counts))
	for _, c := range counts {
		result = append(result, contracts.StatusSummary{Status: c.Status, Count: c.Count})
	}
	return result, nil
}

func (s *Service) loadOrder(ctx context.Context, id, operation string) (domain.Order, error) {
	done := s.timeRepoOp("get")
	order, err := s.repo.Get(ctx, id)
	done()
	if err == nil {
		return order, nil
	}

	s.logger.WithError(err).WithFields(log.Fields{
		"operation": operation,
		"order_id":  id,
	}).Warn("failed to load order")

	if domain.IsNotFound(err) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return domain.Order{}, fmt.Errorf("%w: failed to load order", domain.ErrInternal)
}

func (s *Service) appendHistory(ctx context.Context, history domain.OrderHistory) error {
	done := s.timeRepoOp("append_history")
	err := s.repo.AppendHistory(ctx, history)
	done()
	if err != nil {
		s.logger.WithError(err).WithField("order_id", history.OrderID).Error("failed to append order history")
		return fmt.Errorf("%w: failed to append order history", domain.ErrInternal)
	}
	s.metrics.HistoryAppended()
	return nil
}

func (s *Service) timeRepoOp(op string) func() {
	start := time.Now()
	return func() {
		s.metrics.ObserveRepoOp(op, time.Since(start).Seconds())
	}
}

func joinErrors(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}
