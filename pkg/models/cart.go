package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CartItem is a snapshot of the product at the moment it was added. Name,
// image and price are deliberately copied, not joined live: a later price
// change must not silently change what is already in a user's cart.
type CartItem struct {
	Product  bson.ObjectID `bson:"product" json:"product"`
	Name     string        `bson:"name" json:"name"`
	ImageURL string        `bson:"image_url" json:"imageUrl"`
	Price    float64       `bson:"price" json:"price" validate:"gte=0"`
	Quantity int           `bson:"quantity" json:"quantity" validate:"gte=1"`
}

// Cart is the per-user singleton cart document (unique index on user).
type Cart struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	User      bson.ObjectID `bson:"user" json:"user"`
	Items     []CartItem    `bson:"items" json:"items"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}

// AddItem merges by product reference: re-adding an existing product
// increments its quantity instead of duplicating the line.
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].Product == item.Product {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// SetQuantity updates the quantity of an existing line. Returns false when the
// product is not in the cart.
func (c *Cart) SetQuantity(productID bson.ObjectID, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].Product == productID {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveItem drops the line for the given product. Returns false when absent.
func (c *Cart) RemoveItem(productID bson.ObjectID) bool {
	for i := range c.Items {
		if c.Items[i].Product == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Subtotal is computed from the snapshot prices, not the live products.
func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) SetTimestamps() {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
