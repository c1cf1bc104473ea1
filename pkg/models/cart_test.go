package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestCartAddItemMerges(t *testing.T) {
	productID := bson.NewObjectID()
	cart := &Cart{}

	cart.AddItem(CartItem{Product: productID, Name: "Phone", Price: 2000, Quantity: 2})
	cart.AddItem(CartItem{Product: productID, Name: "Phone", Price: 2000, Quantity: 3})

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	cart.AddItem(CartItem{Product: bson.NewObjectID(), Name: "Cable", Price: 500, Quantity: 1})
	assert.Len(t, cart.Items, 2)
}

func TestCartSetQuantityAndRemove(t *testing.T) {
	productID := bson.NewObjectID()
	cart := &Cart{}
	cart.AddItem(CartItem{Product: productID, Quantity: 1})

	assert.True(t, cart.SetQuantity(productID, 4))
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.False(t, cart.SetQuantity(bson.NewObjectID(), 1))

	assert.True(t, cart.RemoveItem(productID))
	assert.True(t, cart.IsEmpty())
	assert.False(t, cart.RemoveItem(productID))
}

func TestCartSubtotalUsesSnapshotPrices(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{Product: bson.NewObjectID(), Price: 2000, Quantity: 2},
		{Product: bson.NewObjectID(), Price: 500, Quantity: 3},
	}}

	assert.Equal(t, 5500.0, cart.Subtotal())
}

func TestWishlistAddItemRejectsDuplicates(t *testing.T) {
	productID := bson.NewObjectID()
	wishlist := &Wishlist{}

	assert.True(t, wishlist.AddItem(WishlistItem{Product: productID}))
	assert.False(t, wishlist.AddItem(WishlistItem{Product: productID}))
	assert.Len(t, wishlist.Items, 1)

	assert.True(t, wishlist.Has(productID))
	assert.True(t, wishlist.RemoveItem(productID))
	assert.False(t, wishlist.Has(productID))
}
