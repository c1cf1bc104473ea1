package service

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sokomart/backend/internal/auth"
	"github.com/sokomart/backend/pkg/models"
)

type orderFixture struct {
	orders   *fakeOrderStore
	products *fakeProductStore
	carts    *fakeCartStore
	service  *OrderService
	buyer    *auth.Principal
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	orders := newFakeOrderStore()
	products := newFakeProductStore()
	carts := newFakeCartStore()
	recorder := NewRecorder(&fakeActivityStore{}, &fakeNotificationStore{}, newFakeUserStore(), log)

	return &orderFixture{
		orders:   orders,
		products: products,
		carts:    carts,
		service:  NewOrderService(orders, products, carts, recorder, log),
		buyer:    &auth.Principal{ID: bson.NewObjectID(), UserName: "wanjiku", Role: models.RoleUser},
	}
}

func (f *orderFixture) addProduct(name string, price float64, stock int) *models.Product {
	return f.products.put(&models.Product{
		Name:         name,
		Price:        price,
		Stock:        stock,
		ReviewStatus: models.ReviewApproved,
		IsActive:     true,
	})
}

func (f *orderFixture) fillCart(items ...models.CartItem) {
	f.carts.carts[f.buyer.ID] = &models.Cart{User: f.buyer.ID, Items: items}
}

func cartLine(p *models.Product, qty int) models.CartItem {
	return models.CartItem{Product: p.ID, Name: p.Name, Price: p.Price, Quantity: qty}
}

func TestPlaceOrder(t *testing.T) {
	f := newOrderFixture(t)
	phone := f.addProduct("Phone", 2000, 5)
	cable := f.addProduct("Cable", 500, 10)
	f.fillCart(cartLine(phone, 2), cartLine(cable, 1))

	order, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: models.PaymentMpesa,
	})
	require.NoError(t, err)

	assert.Equal(t, 4500.0, order.Subtotal)
	assert.Equal(t, models.StandardShippingFee, order.ShippingCost)
	assert.Equal(t, 4800.0, order.TotalAmount)
	assert.Equal(t, models.OrderProcessing, order.Status)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "SKM-"))

	// stock taken, cart cleared
	assert.Equal(t, 3, f.products.products[phone.ID].Stock)
	assert.Equal(t, 9, f.products.products[cable.ID].Stock)
	assert.Empty(t, f.carts.carts[f.buyer.ID].Items)
}

func TestPlaceOrderFreeShippingAboveThreshold(t *testing.T) {
	f := newOrderFixture(t)
	laptop := f.addProduct("Laptop", 5001, 2)
	f.fillCart(cartLine(laptop, 1))

	order, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: models.PaymentCard,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, order.ShippingCost)
	assert.Equal(t, 5001.0, order.TotalAmount)
}

func TestPlaceOrderShippingChargedAtExactThreshold(t *testing.T) {
	f := newOrderFixture(t)
	laptop := f.addProduct("Laptop", 5000, 2)
	f.fillCart(cartLine(laptop, 1))

	order, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: models.PaymentCard,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StandardShippingFee, order.ShippingCost)
	assert.Equal(t, 5300.0, order.TotalAmount)
}

func TestPlaceOrderInsufficientStockLeavesEverythingUntouched(t *testing.T) {
	f := newOrderFixture(t)
	inStock := f.addProduct("Blender", 1000, 5)
	soldOut := f.addProduct("Kettle", 800, 0)
	f.fillCart(cartLine(inStock, 2), cartLine(soldOut, 1))

	_, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: models.PaymentMpesa,
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Kettle", stockErr.Name)
	assert.Equal(t, 0, stockErr.Available)
	assert.Equal(t, 1, stockErr.Requested)

	// nothing was decremented, no order exists, the cart survives
	assert.Equal(t, 5, f.products.products[inStock.ID].Stock)
	assert.Empty(t, f.orders.orders)
	assert.Len(t, f.carts.carts[f.buyer.ID].Items, 2)
}

func TestPlaceOrderRollsBackDecrementsOnMidSagaFailure(t *testing.T) {
	f := newOrderFixture(t)
	first := f.addProduct("Mouse", 700, 4)
	second := f.addProduct("Keyboard", 1500, 4)
	f.fillCart(cartLine(first, 2), cartLine(second, 1))

	// second decrement races a concurrent order and loses
	f.products.failDecrement[second.ID] = errInjected

	_, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: models.PaymentMpesa,
	})
	require.Error(t, err)

	assert.Equal(t, 4, f.products.products[first.ID].Stock)
	assert.Equal(t, 4, f.products.products[second.ID].Stock)
	assert.Empty(t, f.orders.orders)
}

func TestPlaceOrderRetriesOrderNumberCollision(t *testing.T) {
	f := newOrderFixture(t)
	phone := f.addProduct("Phone", 2000, 5)
	f.fillCart(cartLine(phone, 1))
	f.orders.duplicateFirst = 2

	order, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: models.PaymentMpesa,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, f.orders.createCalls)
	assert.NotEmpty(t, order.OrderNumber)
}

func TestPlaceOrderGivesUpAfterExhaustedCollisionRetries(t *testing.T) {
	f := newOrderFixture(t)
	phone := f.addProduct("Phone", 2000, 5)
	f.fillCart(cartLine(phone, 1))
	f.orders.duplicateFirst = maxOrderNumberAttempts

	_, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: models.PaymentMpesa,
	})
	require.Error(t, err)

	// the stock taken for the failed placement came back
	assert.Equal(t, 5, f.products.products[phone.ID].Stock)
}

func TestPlaceOrderUnwindsWhenCartClearFails(t *testing.T) {
	f := newOrderFixture(t)
	phone := f.addProduct("Phone", 2000, 5)
	f.fillCart(cartLine(phone, 1))
	f.carts.failClear = errInjected

	_, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: models.PaymentMpesa,
	})
	require.Error(t, err)

	assert.Empty(t, f.orders.orders)
	assert.Equal(t, 5, f.products.products[phone.ID].Stock)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: models.PaymentMpesa,
	})

	var emptyErr *EmptyCartError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestPlaceOrderRejectsUnknownPaymentMethod(t *testing.T) {
	f := newOrderFixture(t)
	phone := f.addProduct("Phone", 2000, 5)
	f.fillCart(cartLine(phone, 1))

	_, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: "barter",
	})

	var payErr *InvalidPaymentMethodError
	assert.ErrorAs(t, err, &payErr)
}

func TestPlaceOrderUsesSnapshotPriceNotLivePrice(t *testing.T) {
	f := newOrderFixture(t)
	phone := f.addProduct("Phone", 2000, 5)
	f.fillCart(models.CartItem{Product: phone.ID, Name: phone.Name, Price: 1800, Quantity: 1})

	// price rose after the item went into the cart
	f.products.products[phone.ID].Price = 2500

	order, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: models.PaymentMpesa,
	})
	require.NoError(t, err)
	assert.Equal(t, 1800.0, order.Subtotal)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	f := newOrderFixture(t)
	admin := &auth.Principal{ID: bson.NewObjectID(), UserName: "root", Role: models.RoleAdmin}

	phone := f.addProduct("Phone", 2000, 5)
	f.fillCart(cartLine(phone, 2))
	order, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: models.PaymentMpesa,
	})
	require.NoError(t, err)

	updated, err := f.service.UpdateStatus(context.Background(), admin, order.ID, models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.Status)

	// skipping backwards is not allowed
	_, err = f.service.UpdateStatus(context.Background(), admin, order.ID, models.OrderProcessing)
	var transitionErr *InvalidStatusTransitionError
	assert.ErrorAs(t, err, &transitionErr)

	updated, err = f.service.UpdateStatus(context.Background(), admin, order.ID, models.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, updated.Status)

	// delivered is terminal
	_, err = f.service.UpdateStatus(context.Background(), admin, order.ID, models.OrderCancelled)
	assert.ErrorAs(t, err, &transitionErr)
}

func TestUpdateStatusCancellationRestoresStock(t *testing.T) {
	f := newOrderFixture(t)
	admin := &auth.Principal{ID: bson.NewObjectID(), UserName: "root", Role: models.RoleAdmin}

	phone := f.addProduct("Phone", 2000, 5)
	f.fillCart(cartLine(phone, 2))
	order, err := f.service.Place(context.Background(), f.buyer, models.CreateOrderRequest{
		PaymentMethod: models.PaymentMpesa,
	})
	require.NoError(t, err)
	require.Equal(t, 3, f.products.products[phone.ID].Stock)

	_, err = f.service.UpdateStatus(context.Background(), admin, order.ID, models.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, 5, f.products.products[phone.ID].Stock)
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.UpdateStatus(context.Background(), f.buyer, bson.NewObjectID(), models.OrderShipped)

	var forbidden *ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}

func TestListForUserEmptyIsNotAnError(t *testing.T) {
	f := newOrderFixture(t)

	orders, err := f.service.ListForUser(context.Background(), f.buyer)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestListAllRequiresAdmin(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.ListAll(context.Background(), f.buyer)

	var forbidden *ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}
