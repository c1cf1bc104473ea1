package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that need no extra context. The structured
// errors below carry enough detail for inline form feedback.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNameTaken      = errors.New("username already taken")
	ErrInvalidUserName    = errors.New("username must be 3-20 letters, digits, underscores or periods")
	ErrSKUTaken           = errors.New("sku already in use")
)

// ForbiddenError deliberately carries no resource detail: authorization
// failures must not leak whether the resource exists.
type ForbiddenError struct{}

func (e *ForbiddenError) Error() string {
	return "not authorized to perform this action"
}

// EmptyCartError rejects order placement from an empty cart.
type EmptyCartError struct{}

func (e *EmptyCartError) Error() string {
	return "cannot place an order with an empty cart"
}

// ProductNotFoundError names the cart line whose product has vanished.
type ProductNotFoundError struct {
	ProductID string
	Name      string
}

func (e *ProductNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("product %q is no longer available", e.Name)
	}
	return fmt.Sprintf("product %s is no longer available", e.ProductID)
}

// InsufficientStockError names the product and the quantity still available
// so the caller can correct the cart and retry.
type InsufficientStockError struct {
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}

// DuplicateWishlistError reports a repeated wishlist add as a conflict, not a
// silent success.
type DuplicateWishlistError struct {
	Name string
}

func (e *DuplicateWishlistError) Error() string {
	return fmt.Sprintf("%q is already on the wishlist", e.Name)
}

// InvalidDecisionError rejects review decisions outside approved/rejected.
type InvalidDecisionError struct {
	Decision string
}

func (e *InvalidDecisionError) Error() string {
	return fmt.Sprintf("invalid review decision %q: must be approved or rejected", e.Decision)
}

// MissingReasonError rejects a rejection without a stated reason.
type MissingReasonError struct{}

func (e *MissingReasonError) Error() string {
	return "a reason is required when rejecting a product"
}

// InvalidPaymentMethodError rejects payment methods outside mpesa/card/cash.
type InvalidPaymentMethodError struct {
	Method string
}

func (e *InvalidPaymentMethodError) Error() string {
	return fmt.Sprintf("invalid payment method %q: must be mpesa, card or cash", e.Method)
}

// InvalidStatusError rejects unknown order statuses.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Status)
}

// InvalidStatusTransitionError rejects a status change the lifecycle does not
// permit.
type InvalidStatusTransitionError struct {
	From string
	To   string
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %q to %q", e.From, e.To)
}
