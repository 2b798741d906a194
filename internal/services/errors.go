package services

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrMenuNotFound     = errors.New("menu not found")
	ErrNoBusinessPhone  = errors.New("business has no WhatsApp phone")
	ErrInvalidStatus    = errors.New("invalid order status")
)
