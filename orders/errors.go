package orders

import "errors"

var (
	// ErrNotFound is returned when an order id does not resolve.
	ErrNotFound = errors.New("order not found")
	// ErrInvalidTransition is returned when the requested status is not the
	// direct successor of the current one.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrEmptyCart is returned by Checkout when there is nothing to order.
	ErrEmptyCart = errors.New("cart is empty")
)
