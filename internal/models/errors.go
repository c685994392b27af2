package models

import "errors"

// Common errors used throughout the application
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrParkNotFound        = errors.New("park not found")
	ErrMerchandiseNotFound = errors.New("merchandise not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrLineNotFound        = errors.New("cart line not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateSKU       = errors.New("sku already exists")
	ErrDuplicateSchedule  = errors.New("schedule already exists for that date")

	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrOutOfStock      = errors.New("insufficient stock")
	ErrScheduleFull    = errors.New("schedule is at full capacity")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrPriceNotSet     = errors.New("ticket price is not set for this park")

	ErrRefundDenied = errors.New("refund denied by policy")
)
