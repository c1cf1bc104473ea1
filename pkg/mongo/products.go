package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sokomart/backend/pkg/models"
)

type ProductStore struct {
	c *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{c: db.Collection("products")}
}

func (s *ProductStore) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.SetTimestamps()

	result, err := s.c.InsertOne(ctx, product)
	if err != nil {
		return nil, translate(err)
	}

	product.ID = result.InsertedID.(bson.ObjectID)
	return product, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := s.c.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&product); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// Update applies a partial $set and returns the updated document.
func (s *ProductStore) Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := s.c.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.M{"$set": set},
		opts,
	).Decode(&product)
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// List returns one page of products matching filter, newest first, plus the
// total match count for the pagination envelope.
func (s *ProductStore) List(ctx context.Context, filter bson.D, page, pageSize int) ([]models.Product, int64, error) {
	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// DecrementStock atomically takes qty units off the product's stock, failing
// with ErrInsufficientStock when fewer than qty units remain. The condition
// and the $inc run as one document update, so two concurrent orders cannot
// both pass the check and oversell.
func (s *ProductStore) DecrementStock(ctx context.Context, id bson.ObjectID, qty int) error {
	result, err := s.c.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: id},
			{Key: "stock", Value: bson.D{{Key: "$gte", Value: qty}}},
		},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Distinguish a vanished product from one that ran out.
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}

// IncrementStock returns qty units, used by order cancellation and by the
// compensation path when a placement fails midway.
func (s *ProductStore) IncrementStock(ctx context.Context, id bson.ObjectID, qty int) error {
	result, err := s.c.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.M{"$inc": bson.M{"stock": qty}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountPending feeds the back-office stats card.
func (s *ProductStore) CountPending(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.D{{Key: "review_status", Value: models.ReviewPending}})
}
