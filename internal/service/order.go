package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sokomart/backend/internal/auth"
	"github.com/sokomart/backend/pkg/models"
	storage "github.com/sokomart/backend/pkg/mongo"
)

const maxOrderNumberAttempts = 3

// nextStatuses encodes the order lifecycle: content is immutable, status only
// moves forward, and cancellation is possible until delivery.
var nextStatuses = map[string][]string{
	models.OrderPending:    {models.OrderProcessing, models.OrderCancelled},
	models.OrderProcessing: {models.OrderShipped, models.OrderCancelled},
	models.OrderShipped:    {models.OrderDelivered, models.OrderCancelled},
}

type OrderService struct {
	orders   OrderStore
	products ProductStore
	carts    CartStore
	recorder *Recorder
	log      *logrus.Logger
}

func NewOrderService(orders OrderStore, products ProductStore, carts CartStore, recorder *Recorder, log *logrus.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		carts:    carts,
		recorder: recorder,
		log:      log,
	}
}

// Place converts the caller's cart into an immutable order.
//
// The sequence runs as a compensated saga: every live product is checked
// first, then stock is taken via atomic conditional decrements, then the
// order is created and the cart cleared. Any failure after the first
// decrement rolls back the decrements already applied, so a failed placement
// leaves stock, orders and cart exactly as they were.
func (s *OrderService) Place(ctx context.Context, p *auth.Principal, req models.CreateOrderRequest) (*models.Order, error) {
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, &InvalidPaymentMethodError{Method: req.PaymentMethod}
	}

	cart, err := s.carts.GetByUser(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, &EmptyCartError{}
	}

	// Phase 1: check every line against the live product before touching
	// anything. The snapshot price stays authoritative for pricing; only
	// existence and stock are read live.
	for _, item := range cart.Items {
		product, err := s.products.GetByID(ctx, item.Product)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, &ProductNotFoundError{ProductID: item.Product.Hex(), Name: item.Name}
			}
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, &InsufficientStockError{
				Name:      product.Name,
				Available: product.Stock,
				Requested: item.Quantity,
			}
		}
	}

	// Phase 2: take the stock. The conditional decrement re-checks
	// stock >= qty inside the update, so a concurrent order racing past
	// phase 1 cannot oversell; it fails here and is compensated.
	decremented := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if err := s.products.DecrementStock(ctx, item.Product, item.Quantity); err != nil {
			return nil, s.compensate(ctx, decremented, s.stockError(ctx, item, err))
		}
		decremented = append(decremented, item)
	}

	order := &models.Order{
		User:            p.ID,
		Items:           orderItemsFromCart(cart.Items),
		Status:          models.OrderProcessing,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
	}
	order.CalculateTotals()

	created, err := s.createWithFreshNumber(ctx, order)
	if err != nil {
		return nil, s.compensate(ctx, decremented, err)
	}

	if err := s.carts.Clear(ctx, p.ID); err != nil {
		// The cart clears iff the order exists; undo the order rather
		// than leave the two out of step.
		if delErr := s.orders.Delete(ctx, created.ID); delErr != nil {
			s.log.WithError(delErr).WithField("order", created.ID.Hex()).
				Error("failed to delete order while unwinding placement; manual cleanup required")
		}
		return nil, s.compensate(ctx, decremented, fmt.Errorf("failed to clear cart: %w", err))
	}

	s.recorder.Activity(ctx, p, models.ActivityOrderPlaced, created.ID, created.OrderNumber)

	return created, nil
}

// createWithFreshNumber retries on orderNumber collisions, which the unique
// index reports as duplicate-key errors.
func (s *OrderService) createWithFreshNumber(ctx context.Context, order *models.Order) (*models.Order, error) {
	var err error
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		order.OrderNumber = models.GenerateOrderNumber()

		var created *models.Order
		created, err = s.orders.Create(ctx, order)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, storage.ErrDuplicateKey) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("failed to allocate an order number: %w", err)
}

// compensate returns stock taken earlier in a failed placement and passes the
// original cause through.
func (s *OrderService) compensate(ctx context.Context, decremented []models.CartItem, cause error) error {
	for _, item := range decremented {
		if err := s.products.IncrementStock(ctx, item.Product, item.Quantity); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"product":  item.Product.Hex(),
				"quantity": item.Quantity,
			}).Error("failed to restore stock after aborted placement; manual adjustment required")
		}
	}
	return cause
}

// stockError converts a decrement failure into the caller-facing error,
// re-reading the product for the current availability when possible.
func (s *OrderService) stockError(ctx context.Context, item models.CartItem, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return &ProductNotFoundError{ProductID: item.Product.Hex(), Name: item.Name}
	case errors.Is(err, storage.ErrInsufficientStock):
		available := 0
		if product, getErr := s.products.GetByID(ctx, item.Product); getErr == nil {
			available = product.Stock
		}
		return &InsufficientStockError{Name: item.Name, Available: available, Requested: item.Quantity}
	default:
		return err
	}
}

func orderItemsFromCart(items []models.CartItem) []models.OrderItem {
	orderItems := make([]models.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = models.OrderItem{
			Product:  item.Product,
			Name:     item.Name,
			ImageURL: item.ImageURL,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}
	return orderItems
}

// ListForUser returns the caller's orders newest first. Zero orders is a
// normal empty list, not an error.
func (s *OrderService) ListForUser(ctx context.Context, p *auth.Principal) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, p.ID)
}

func (s *OrderService) ListAll(ctx context.Context, p *auth.Principal) ([]models.AdminOrder, error) {
	if !p.IsAdmin() {
		return nil, &ForbiddenError{}
	}
	return s.orders.ListAll(ctx)
}

// UpdateStatus advances the lifecycle. Cancelling an order returns its stock,
// best-effort per item.
func (s *OrderService) UpdateStatus(ctx context.Context, p *auth.Principal, id bson.ObjectID, status string) (*models.Order, error) {
	if !p.IsAdmin() {
		return nil, &ForbiddenError{}
	}
	if !models.ValidOrderStatus(status) {
		return nil, &InvalidStatusError{Status: status}
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !transitionAllowed(order.Status, status) {
		return nil, &InvalidStatusTransitionError{From: order.Status, To: status}
	}

	if status == models.OrderCancelled {
		for _, item := range order.Items {
			if err := s.products.IncrementStock(ctx, item.Product, item.Quantity); err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{
					"order":   order.ID.Hex(),
					"product": item.Product.Hex(),
				}).Error("failed to return stock for cancelled order; manual adjustment required")
			}
		}
	}

	updated, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.recorder.Activity(ctx, p, models.ActivityOrderStatusChanged, updated.ID, status)
	s.recorder.Notify(ctx, updated.User, fmt.Sprintf("Order %s is now %s", updated.OrderNumber, status))

	return updated, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range nextStatuses[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AdminStats is the back-office dashboard payload.
type AdminStats struct {
	Sales           *storage.SalesStats `json:"sales"`
	PendingProducts int64               `json:"pendingProducts"`
}

func (s *OrderService) Stats(ctx context.Context, p *auth.Principal) (*AdminStats, error) {
	if !p.IsAdmin() {
		return nil, &ForbiddenError{}
	}

	sales, err := s.orders.SalesStats(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.products.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminStats{Sales: sales, PendingProducts: pending}, nil
}
