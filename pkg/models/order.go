package models

import (
	"crypto/rand"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

const (
	PaymentMpesa = "mpesa"
	PaymentCard  = "card"
	PaymentCash  = "cash"
)

// Shipping is free above the threshold, otherwise a flat fee (KES).
// Exactly FreeShippingThreshold still pays shipping.
const (
	FreeShippingThreshold = 5000.0
	StandardShippingFee   = 300.0
)

// OrderItem is snapshot-copied from the cart at order time and is independent
// of any later product mutation.
type OrderItem struct {
	Product  bson.ObjectID `bson:"product" json:"product"`
	Name     string        `bson:"name" json:"name"`
	ImageURL string        `bson:"image_url" json:"imageUrl"`
	Price    float64       `bson:"price" json:"price" validate:"gte=0"`
	Quantity int           `bson:"quantity" json:"quantity" validate:"gte=1"`
}

type ShippingAddress struct {
	FirstName  string `bson:"first_name" json:"firstName" validate:"required"`
	LastName   string `bson:"last_name" json:"lastName" validate:"required"`
	Address    string `bson:"address" json:"address" validate:"required"`
	City       string `bson:"city" json:"city" validate:"required"`
	PostalCode string `bson:"postal_code" json:"postalCode" validate:"required"`
	Phone      string `bson:"phone" json:"phone" validate:"required"`
	Email      string `bson:"email" json:"email" validate:"required,email"`
}

// Order is immutable once created except for its status field. Totals are
// computed at creation and stored, never recomputed on read.
type Order struct {
	ID              bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	OrderNumber     string          `bson:"order_number" json:"orderNumber" validate:"required"`
	User            bson.ObjectID   `bson:"user" json:"user"`
	Items           []OrderItem     `bson:"items" json:"items" validate:"required,min=1,dive"`
	Subtotal        float64         `bson:"subtotal" json:"subtotal" validate:"gte=0"`
	ShippingCost    float64         `bson:"shipping_cost" json:"shippingCost" validate:"gte=0"`
	TotalAmount     float64         `bson:"total_amount" json:"totalAmount" validate:"gte=0"`
	Status          string          `bson:"status" json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	PaymentMethod   string          `bson:"payment_method" json:"paymentMethod" validate:"required,oneof=mpesa card cash"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shippingAddress"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}

// AdminOrder is an order joined with the buyer's identity for the back-office
// listing.
type AdminOrder struct {
	Order `bson:",inline"`
	Buyer UserSummary `bson:"buyer" json:"buyer"`
}

// CalculateShipping applies the single threshold rule.
func CalculateShipping(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return StandardShippingFee
}

// CalculateTotals computes subtotal, shipping and total from the item
// snapshots.
func (o *Order) CalculateTotals() {
	var subtotal float64
	for _, item := range o.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	o.Subtotal = subtotal
	o.ShippingCost = CalculateShipping(subtotal)
	o.TotalAmount = o.Subtotal + o.ShippingCost
}

// SetTimestamps sets created_at on first call and always updates updated_at
func (o *Order) SetTimestamps() {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMpesa, PaymentCard, PaymentCash:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further status change is allowed.
func (o *Order) Terminal() bool {
	return o.Status == OrderDelivered || o.Status == OrderCancelled
}

// orderNumberAlphabet omits 0/O and 1/I so the code survives being read out
// loud over the phone.
const orderNumberAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// GenerateOrderNumber returns a short human-shareable identifier distinct from
// the primary id. Collisions are handled by the unique index on order_number
// plus a bounded retry at creation.
func GenerateOrderNumber() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	code := make([]byte, len(buf))
	for i, b := range buf {
		code[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return "SKM-" + string(code)
}

type CreateOrderRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required,oneof=mpesa card cash"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
