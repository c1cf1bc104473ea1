package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// WishlistItem follows the same snapshot principle as CartItem but carries no
// quantity: wishlist membership is boolean.
type WishlistItem struct {
	Product  bson.ObjectID `bson:"product" json:"product"`
	Name     string        `bson:"name" json:"name"`
	ImageURL string        `bson:"image_url" json:"imageUrl"`
	Price    float64       `bson:"price" json:"price" validate:"gte=0"`
}

// Wishlist is the per-user singleton wishlist document (unique index on user).
type Wishlist struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	User      bson.ObjectID  `bson:"user" json:"user"`
	Items     []WishlistItem `bson:"items" json:"items"`
	CreatedAt time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updatedAt"`
}

func (w *Wishlist) Has(productID bson.ObjectID) bool {
	for _, item := range w.Items {
		if item.Product == productID {
			return true
		}
	}
	return false
}

// AddItem appends a new entry. Returns false when the product is already
// present; a duplicate add is a conflict, not a merge.
func (w *Wishlist) AddItem(item WishlistItem) bool {
	if w.Has(item.Product) {
		return false
	}
	w.Items = append(w.Items, item)
	return true
}

// RemoveItem drops the entry for the given product. Returns false when absent.
func (w *Wishlist) RemoveItem(productID bson.ObjectID) bool {
	for i := range w.Items {
		if w.Items[i].Product == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (w *Wishlist) SetTimestamps() {
	now := time.Now()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
}

type AddWishlistItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}
