package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, customer_name, notes, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		order.ID, order.CustomerName, order.Notes, string(order.Status),
		order.CreatedAt, nullableTime(order.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderAlreadyExists
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, item_name, qty, unit_price
			) VALUES ($1,$2,$3,$4,$5)
		`,
			item.ID, order.ID, item.ItemName, item.Qty, item.UnitPrice,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create order: %w", err)
	}

	return nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	var status string
	var updatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_name, notes, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.CustomerName, &order.Notes, &status,
		&order.CreatedAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	order.Status = domain.OrderStatus(status)
	if updatedAt.Valid {
		at := updatedAt.Time
		order.UpdatedAt = &at
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items

	histories, err := r.loadHistories(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Histories = histories

	return order, nil
}

func (r *orderRepository) List(ctx context.Context, s domain.ListSort) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// Выражение сортировки выбирается из фиксированного набора,
	// пользовательский ввод в SQL не попадает.
	query := `
		SELECT id, customer_name, notes, status, created_at, updated_at
		FROM orders
		ORDER BY ` + orderByClause(s)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		var status string
		var updatedAt sql.NullTime
		if err := rows.Scan(
			&order.ID, &order.CustomerName, &order.Notes, &status,
			&order.CreatedAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		order.Status = domain.OrderStatus(status)
		if updatedAt.Valid {
			at := updatedAt.Time
			order.UpdatedAt = &at
		}

		items, err := r.loadItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
		    updated_at = $2
		WHERE id = $3
	`, string(status), updatedAt, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) AppendHistory(ctx context.Context, history domain.OrderHistory) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if history.ChangedAt.IsZero() {
		history.ChangedAt = time.Now().UTC()
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO order_histories (
			id, order_id, from_status, to_status, changed_by, changed_at, reason
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		history.ID, history.OrderID, string(history.FromStatus), string(history.ToStatus),
		history.ChangedBy, history.ChangedAt, history.Reason,
	); err != nil {
		return fmt.Errorf("append order history: %w", err)
	}

	return nil
}

func (r *orderRepository) Summary(ctx context.Context, from, to *time.Time) ([]domain.StatusCount, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	query := `SELECT status, COUNT(*) FROM orders`
	args := make([]any, 0, 2)
	where := ""

	if from != nil {
		args = append(args, *from)
		where = fmt.Sprintf(" WHERE created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		if where == "" {
			where = fmt.Sprintf(" WHERE created_at <= $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND created_at <= $%d", len(args))
		}
	}

	query += where + " GROUP BY status ORDER BY status ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("order summary: %w", err)
	}
	defer rows.Close()

	counts := make([]domain.StatusCount, 0)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		counts = append(counts, domain.StatusCount{Status: domain.OrderStatus(status), Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary rows: %w", err)
	}

	return counts, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_name, qty, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.ItemName, &item.Qty, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

func (r *orderRepository) loadHistories(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, from_status, to_status, changed_by, changed_at, reason
		FROM order_histories
		WHERE order_id = $1
		ORDER BY changed_at ASC, id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order histories: %w", err)
	}
	defer rows.Close()

	histories := make([]domain.OrderHistory, 0)
	for rows.Next() {
		var h domain.OrderHistory
		var fromStatus, toStatus string
		if err := rows.Scan(&h.ID, &h.OrderID, &fromStatus, &toStatus, &h.ChangedBy, &h.ChangedAt, &h.Reason); err != nil {
			return nil, fmt.Errorf("scan order history: %w", err)
		}
		h.FromStatus = domain.OrderStatus(fromStatus)
		h.ToStatus = domain.OrderStatus(toStatus)
		histories = append(histories, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order histories: %w", err)
	}

	return histories, nil
}

// orderByClause возвращает выражение сортировки из фиксированного набора.
// NULL в updated_at трактуется как самое раннее значение, как и в
// in-memory реализации.
func orderByClause(s domain.ListSort) string {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}

	switch s.Key {
	case domain.SortKeyCustomerName:
		return fmt.Sprintf("customer_name %s, id ASC", dir)
	case domain.SortKeyUpdatedAt:
		nulls := "NULLS FIRST"
		if s.Desc {
			nulls = "NULLS LAST"
		}
		return fmt.Sprintf("updated_at %s %s, id ASC", dir, nulls)
	default:
		return fmt.Sprintf("created_at %s, id ASC", dir)
	}
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.OrderRepository = (*orderRepository)(nil)
