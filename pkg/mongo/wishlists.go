package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sokomart/backend/pkg/models"
)

type WishlistStore struct {
	c *mongo.Collection
}

func NewWishlistStore(db *mongo.Database) *WishlistStore {
	return &WishlistStore{c: db.Collection("wishlists")}
}

// GetByUser returns the user's wishlist, or a fresh empty one when none has
// been persisted yet.
func (s *WishlistStore) GetByUser(ctx context.Context, user bson.ObjectID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := s.c.FindOne(ctx, bson.D{{Key: "user", Value: user}}).Decode(&wishlist)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return &models.Wishlist{User: user, Items: []models.WishlistItem{}}, nil
		}
		return nil, err
	}
	return &wishlist, nil
}

// Save upserts the singleton wishlist document keyed by user.
func (s *WishlistStore) Save(ctx context.Context, wishlist *models.Wishlist) error {
	wishlist.SetTimestamps()

	_, err := s.c.ReplaceOne(ctx,
		bson.D{{Key: "user", Value: wishlist.User}},
		wishlist,
		options.Replace().SetUpsert(true),
	)
	return translate(err)
}
