package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// helper для создания базового заказа с одной позицией.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:           "order-1",
		CustomerName: "Alice Johnson",
		Status:       domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{
				ID:        "item-1",
				ItemName:  "Widget",
				Qty:       2,
				UnitPrice: decimal.RequireFromString("9.99"),
			},
		},
		CreatedAt: now,
	}
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
	}{
		{
			name: "no customer name",
			mut: func(o *domain.Order) {
				o.CustomerName = "   "
			},
		},
		{
			name: "unknown status",
			mut: func(o *domain.Order) {
				o.Status = "teleported"
			},
		},
		{
			name: "no items",
			mut: func(o *domain.Order) {
				o.Items = nil
			},
		},
		{
			name: "item name blank",
			mut: func(o *domain.Order) {
				o.Items[0].ItemName = ""
			},
		},
		{
			name: "qty invalid",
			mut: func(o *domain.Order) {
				o.Items[0].Qty = 0
			},
		},
		{
			name: "price negative",
			mut: func(o *domain.Order) {
				o.Items[0].UnitPrice = decimal.RequireFromString("-0.01")
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			// Изменяем состояние согласно сценарию.
			tc.mut(&order)

			if len(order.ValidateInvariants()) == 0 {
				t.Fatalf("expected validation errors for case %s", tc.name)
			}
		})
	}
}

func TestOrderStatusValid(t *testing.T) {
	valid := []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusConfirmed,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
		domain.OrderStatusCanceled,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}

	for _, s := range []domain.OrderStatus{"", "unknown", "Pending"} {
		if s.Valid() {
			t.Errorf("status %q should not be valid", s)
		}
	}
}

func TestParseSortKey(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.SortKey
	}{
		{raw: "customerName", want: domain.SortKeyCustomerName},
		{raw: "CUSTOMERNAME", want: domain.SortKeyCustomerName},
		{raw: " customername ", want: domain.SortKeyCustomerName},
		{raw: "updatedAt", want: domain.SortKeyUpdatedAt},
		{raw: "UpdatedAt", want: domain.SortKeyUpdatedAt},
		{raw: "createdAt", want: domain.SortKeyCreatedAt},
		{raw: "", want: domain.SortKeyCreatedAt},
		{raw: "garbage", want: domain.SortKeyCreatedAt},
	}

	for _, tc := range cases {
		if got := domain.ParseSortKey(tc.raw); got != tc.want {
			t.Errorf("ParseSortKey(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
