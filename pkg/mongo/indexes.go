package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Users Collection Indexes
	{
		CollectionName: "users",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_email_unique"),
		},
	},
	{
		CollectionName: "users",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "user_name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_name_unique"),
		},
	},

	// Products Collection Indexes
	// SKU is optional but unique when present, hence the sparse index.
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("idx_sku_unique"),
		},
	},
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "review_status", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().SetName("idx_visibility"),
		},
	},
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "agent", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_agent_products"),
		},
	},
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	},

	// Carts / Wishlists are singletons per user.
	{
		CollectionName: "carts",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_cart_user_unique"),
		},
	},
	{
		CollectionName: "wishlists",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_wishlist_user_unique"),
		},
	},

	// Orders Collection Indexes
	{
		CollectionName: "orders",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_order_number_unique"),
		},
	},
	{
		CollectionName: "orders",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_user_orders"),
		},
	},

	// Back-office collections
	{
		CollectionName: "notifications",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_user_notifications"),
		},
	},
	{
		CollectionName: "activities",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_activity_time"),
		},
	},
}

// EnsureIndexes creates every index the stores rely on. Unique constraints on
// email, userName, sku, orderNumber and the per-user cart/wishlist singletons
// live here, so startup must not proceed when this fails.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, idxConfig := range requiredIndexes {
		collection := db.Collection(idxConfig.CollectionName)

		if _, err := collection.Indexes().CreateOne(ctx, idxConfig.IndexModel); err != nil {
			return fmt.Errorf("failed to create index on collection %s: %w", idxConfig.CollectionName, err)
		}
	}

	return nil
}
