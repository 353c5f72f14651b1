package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ принят, но ещё не подтверждён.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed — заказ подтверждён и готовится к отгрузке.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered — заказ доставлен клиенту.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCanceled — заказ отменён.
	OrderStatusCanceled OrderStatus = "canceled"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCanceled:
		return true
	default:
		return false
	}
}

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ID позиции нужен для однозначной идентификации и аудита.
	ID string
	// ItemName — наименование товара.
	ItemName string
	// Qty — количество единиц товара.
	Qty int32
	// UnitPrice — цена за единицу; decimal исключает ошибки округления float.
	UnitPrice decimal.Decimal
}

// OrderHistory — запись о смене статуса заказа. Журнал append-only:
// записи никогда не изменяются и не удаляются, только добавляются.
type OrderHistory struct {
	ID         string
	OrderID    string
	FromStatus OrderStatus
	ToStatus   OrderStatus
	ChangedBy  string
	ChangedAt  time.Time
	Reason     string
}

// Order агрегирует состояние заказа, его позиции и журнал статусов.
type Order struct {
	ID           string
	CustomerName string
	Notes        string
	Status       OrderStatus
	// UpdatedAt заполняется только после первой смены статуса.
	UpdatedAt *time.Time
	CreatedAt time.Time
	Items     []OrderItem
	Histories []OrderHistory
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(o.CustomerName) == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	if !o.Status.Valid() {
		errs = append(errs, ErrStatusInvalid)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}

	for _, item := range o.Items {
		if strings.TrimSpace(item.ItemName) == "" {
			errs = append(errs, ErrItemNameRequired)
		}
		if item.Qty <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.UnitPrice.IsNegative() {
			errs = append(errs, ErrItemPriceInvalid)
		}
	}

	return errs
}

// SortKey задаёт поле сортировки списка заказов.
type SortKey string

const (
	SortKeyCustomerName SortKey = "customerName"
	SortKeyCreatedAt    SortKey = "createdAt"
	SortKeyUpdatedAt    SortKey = "updatedAt"
)

// ParseSortKey нормализует ключ сортировки без учёта регистра.
// Нераспознанный ключ трактуется как createdAt.
func ParseSortKey(raw string) SortKey {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "customername":
		return SortKeyCustomerName
	case "updatedat":
		return SortKeyUpdatedAt
	default:
		return SortKeyCreatedAt
	}
}

// ListSort описывает порядок выдачи списка заказов.
type ListSort struct {
	Key  SortKey
	Desc bool
}

// StatusCount — количество заказов в одном статусе.
type StatusCount struct {
	Status OrderStatus
	Count  int64
}
