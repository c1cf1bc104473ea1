package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sokomart/backend/pkg/models"
)

type OrderStore struct {
	c *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{c: db.Collection("orders")}
}

// Create inserts the order. An orderNumber collision surfaces as
// ErrDuplicateKey via the unique index; the caller retries with a fresh
// number.
func (s *OrderStore) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.SetTimestamps()

	result, err := s.c.InsertOne(ctx, order)
	if err != nil {
		return nil, translate(err)
	}

	order.ID = result.InsertedID.(bson.ObjectID)
	return order, nil
}

func (s *OrderStore) GetByID(ctx context.Context, id bson.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := s.c.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// ListByUser returns the user's orders newest first. An empty result is a
// normal empty slice, never an error.
func (s *OrderStore) ListByUser(ctx context.Context, user bson.ObjectID) ([]models.Order, error) {
	cursor, err := s.c.Find(ctx,
		bson.D{{Key: "user", Value: user}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll joins each order with its buyer's identity for the back-office
// listing. The password hash is projected away before anything leaves the
// database.
func (s *OrderStore) ListAll(ctx context.Context) ([]models.AdminOrder, error) {
	pipeline := bson.A{
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "buyer"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$buyer"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "buyer.password", Value: 0},
			{Key: "buyer.role", Value: 0},
			{Key: "buyer.created_at", Value: 0},
			{Key: "buyer.updated_at", Value: 0},
		}}},
	}

	cursor, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.AdminOrder{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus advances the append-only status field and returns the updated
// order. Item content is never mutated here.
func (s *OrderStore) UpdateStatus(ctx context.Context, id bson.ObjectID, status string) (*models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := s.c.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		opts,
	).Decode(&order)
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// Delete removes an order outright. Only the placement compensation path uses
// this; orders are otherwise immutable.
func (s *OrderStore) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := s.c.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
