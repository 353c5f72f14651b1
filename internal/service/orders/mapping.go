package orders

import (
	"github.com/vladislavdragonenkov/orders/internal/contracts"
	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// toDetails — единственная точка преобразования сущности в транспортное
// представление; используется всеми путями чтения. На списочном пути
// журнал статусов не включается.
func toDetails(order domain.Order, includeHistories bool) contracts.OrderDetails {
	items := make([]contracts.OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, contracts.OrderItemView{
			ItemName:  item.ItemName,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
		})
	}

	details := contracts.OrderDetails{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Notes:        order.Notes,
		Status:       order.Status,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
		Items:        items,
	}

	if includeHistories {
		histories := make([]contracts.OrderHistoryView, 0, len(order.Histories))
		for _, h := range order.Histories {
			histories = append(histories, contracts.OrderHistoryView{
				FromStatus: h.FromStatus,
				ToStatus:   h.ToStatus,
				ChangedBy:  h.ChangedBy,
				ChangedAt:  h.ChangedAt,
				Reason:     h.Reason,
			})
		}
		details.Histories = histories
	}

	return details
}
