// Package contracts содержит формы данных, пересекающих границу сервиса.
// Транспортный слой (HTTP/gRPC) живёт вне этого репозитория и использует
// эти же структуры.
package contracts

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const (
	// DefaultChangedBy подставляется в начальную запись журнала,
	// если автор не указан.
	DefaultChangedBy = "system"
	// DefaultCreateReason подставляется в начальную запись журнала,
	// если причина не указана.
	DefaultCreateReason = "Order created"
)

// NewOrderItem — позиция в запросе на создание заказа.
type NewOrderItem struct {
	ItemName  string          `json:"item_name"`
	Qty       int32           `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest — запрос на создание заказа.
type CreateOrderRequest struct {
	CustomerName string         `json:"customer_name"`
	Notes        string         `json:"notes,omitempty"`
	Items        []NewOrderItem `json:"items"`
	// ChangedBy и Reason попадают в начальную запись журнала статусов.
	ChangedBy string `json:"changed_by,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// ApplyDefaults подставляет автора и причину начальной записи журнала.
// Это единственная точка дефолтов: остальные пути требуют поля явно.
func (r *CreateOrderRequest) ApplyDefaults() {
	if strings.TrimSpace(r.ChangedBy) == "" {
		r.ChangedBy = DefaultChangedBy
	}
	if strings.TrimSpace(r.Reason) == "" {
		r.Reason = DefaultCreateReason
	}
}

// UpdateOrderStatusRequest — запрос на смену статуса заказа.
// ChangedBy здесь обязателен, дефолт не подставляется.
type UpdateOrderStatusRequest struct {
	NewStatus domain.OrderStatus `json:"new_status"`
	ChangedBy string             `json:"changed_by"`
	Reason    string             `json:"reason,omitempty"`
}

// SummaryRequest — необязательные границы диапазона по дате создания (включительно).
type SummaryRequest struct {
	FromDate *time.Time `json:"from_date,omitempty"`
	ToDate   *time.Time `json:"to_date,omitempty"`
}

// OrderItemView — позиция заказа в ответе.
type OrderItemView struct {
	ItemName  string          `json:"item_name"`
	Qty       int32           `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderHistoryView — запись журнала статусов в ответе.
type OrderHistoryView struct {
	FromStatus domain.OrderStatus `json:"from_status"`
	ToStatus   domain.OrderStatus `json:"to_status"`
	ChangedBy  string             `json:"changed_by"`
	ChangedAt  time.Time          `json:"changed_at"`
	Reason     string             `json:"reason,omitempty"`
}

// OrderDetails — полное представление заказа.
type OrderDetails struct {
	ID           string             `json:"id"`
	CustomerName string             `json:"customer_name"`
	Notes        string             `json:"notes,omitempty"`
	Status       domain.OrderStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    *time.Time         `json:"updated_at,omitempty"`
	Items        []OrderItemView    `json:"items"`
	Histories    []OrderHistoryView `json:"histories,omitempty"`
}

// StatusSummary — количество заказов в одном статусе.
type StatusSummary struct {
	Status domain.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}
