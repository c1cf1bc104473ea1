package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sokomart/backend/pkg/models"
)

type CartStore struct {
	c *mongo.Collection
}

func NewCartStore(db *mongo.Database) *CartStore {
	return &CartStore{c: db.Collection("carts")}
}

// GetByUser returns the user's cart, or a fresh empty one when none has been
// persisted yet. The document is only written once the first item is added.
func (s *CartStore) GetByUser(ctx context.Context, user bson.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.c.FindOne(ctx, bson.D{{Key: "user", Value: user}}).Decode(&cart)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return &models.Cart{User: user, Items: []models.CartItem{}}, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Save upserts the singleton cart document keyed by user.
func (s *CartStore) Save(ctx context.Context, cart *models.Cart) error {
	cart.SetTimestamps()

	_, err := s.c.ReplaceOne(ctx,
		bson.D{{Key: "user", Value: cart.User}},
		cart,
		options.Replace().SetUpsert(true),
	)
	return translate(err)
}

// Clear empties the cart without deleting the document.
func (s *CartStore) Clear(ctx context.Context, user bson.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.D{{Key: "user", Value: user}},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updated_at": time.Now()}},
	)
	return translate(err)
}
