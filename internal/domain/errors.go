package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка отсутствующего имени клиента.
	ErrCustomerNameRequired = errors.New("customer_name is required")
	// Ошибка отсутствия хотя бы одного товара в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отсутствующего наименования позиции.
	ErrItemNameRequired = errors.New("item_name is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item qty must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item unit_price must be non-negative")
	// Ошибка при неизвестном значении статуса.
	ErrStatusInvalid = errors.New("order status is not supported")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists возвращается при попытке создать заказ с занятым ID.
	ErrOrderAlreadyExists = errors.New("order already exists")
	// ErrInternal скрывает детали неожиданных сбоев хранилища от вызывающего.
	ErrInternal = errors.New("internal error")
)

// ValidationError описывает отклонённый ввод с указанием первого
// нарушившего правило поля.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// NewValidationError конструирует ошибку валидации для поля.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// IsValidation проверяет, относится ли ошибка к классу ошибок валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound проверяет, является ли ошибка отсутствием заказа.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

// IsInternal проверяет, относится ли ошибка к классу внутренних сбоев.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
