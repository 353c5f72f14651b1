package orders

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vladislavdragonenkov/orders/internal/contracts"
	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const maxCustomerNameLen = 100

// validateCreateRequest проверяет запрос на создание заказа и возвращает
// ошибку валидации по первому нарушившему правило полю.
func validateCreateRequest(req contracts.CreateOrderRequest) error {
	name := strings.TrimSpace(req.CustomerName)
	switch {
	case name == "":
		return domain.NewValidationError("customer_name", "is required")
	case len([]rune(name)) > maxCustomerNameLen:
		return domain.NewValidationError("customer_name", "must be at most %d characters", maxCustomerNameLen)
	case !lettersAndSpacesOnly(name):
		return domain.NewValidationError("customer_name", "must contain only letters and spaces")
	}

	if len(req.Items) == 0 {
		return domain.NewValidationError("items", "order must contain at least one item")
	}

	for i, item := range req.Items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }
		if strings.TrimSpace(item.ItemName) == "" {
			return domain.NewValidationError(field("item_name"), "is required")
		}
		if item.Qty <= 0 {
			return domain.NewValidationError(field("qty"), "must be greater than zero")
		}
		if !item.UnitPrice.IsPositive() {
			return domain.NewValidationError(field("unit_price"), "must be greater than zero")
		}
	}

	if strings.TrimSpace(req.ChangedBy) == "" {
		return domain.NewValidationError("changed_by", "is required")
	}

	return nil
}

func lettersAndSpacesOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
