package model

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotPending     = errors.New("order is not in pending status")
	ErrOrderTerminal       = errors.New("order is in a terminal state")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrMissingBookID       = errors.New("book id is required")
	ErrMissingCustomer     = errors.New("customer email is required")
)
