package domain

import (
	"context"
	"time"
)

// OrderRepository описывает требования к хранилищу заказов.
// Бизнес-правила хранилище не проверяет: валидация выполняется сервисом.
type OrderRepository interface {
	// Create сохраняет новый заказ вместе с позициями одной durable-записью.
	Create(ctx context.Context, order Order) error
	// Get возвращает заказ с позициями и журналом статусов
	// или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id string) (Order, error)
	// List возвращает все заказы с позициями в заданном порядке.
	// Журнал статусов на списочном пути не загружается.
	List(ctx context.Context, sort ListSort) ([]Order, error)
	// UpdateStatus применяет новый статус и отметку времени обновления
	// или возвращает ErrOrderNotFound.
	UpdateStatus(ctx context.Context, id string, status OrderStatus, updatedAt time.Time) error
	// AppendHistory добавляет запись в журнал статусов заказа.
	AppendHistory(ctx context.Context, history OrderHistory) error
	// Summary считает заказы по статусам в границах [from, to] по created_at.
	// Статусы без заказов в выдачу не попадают.
	Summary(ctx context.Context, from, to *time.Time) ([]StatusCount, error)
}
