package service

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrProductNotFound       = errors.New("product not found")
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrSupplierNotFound      = errors.New("supplier not found")
	ErrDeliveryZoneNotFound  = errors.New("delivery zone not found")
)

// ProductUnavailableError is returned when a cart line references a
// product an admin has manually switched off.
type ProductUnavailableError struct {
	Name string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product '%s' is currently unavailable", e.Name)
}

// TotalMismatchError is returned when the client-asserted total
// disagrees with the server-recomputed total beyond the tolerance.
// Guards against client-side price tampering.
type TotalMismatchError struct {
	Claimed  float64
	Computed float64
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("submitted total %.2f does not match computed total %.2f", e.Claimed, e.Computed)
}

// InsufficientStockError identifies the item and shortfall so staff and
// customers see exactly why an order could not be placed.
type InsufficientStockError struct {
	Item      string
	Needed    float64
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock for '%s'. Required: %s, Available: %s",
		e.Item, formatQty(e.Needed), formatQty(e.Available))
}

// InvalidStatusError is returned for a status outside the fixed
// vocabulary.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status: %s", e.Status)
}

// PersistenceError wraps a failed write of the order record itself.
// The surrounding transaction has already rolled the deductions back,
// but the condition is still logged loudly and surfaced as retryable.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// formatQty renders whole quantities without a trailing ".0".
func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
