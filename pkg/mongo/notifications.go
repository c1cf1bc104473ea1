package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sokomart/backend/pkg/models"
)

type NotificationStore struct {
	c *mongo.Collection
}

func NewNotificationStore(db *mongo.Database) *NotificationStore {
	return &NotificationStore{c: db.Collection("notifications")}
}

func (s *NotificationStore) Insert(ctx context.Context, notification *models.Notification) error {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	_, err := s.c.InsertOne(ctx, notification)
	return err
}

func (s *NotificationStore) ListByUser(ctx context.Context, user bson.ObjectID) ([]models.Notification, error) {
	cursor, err := s.c.Find(ctx,
		bson.D{{Key: "user", Value: user}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips the read flag. The user filter keeps one user from touching
// another's notifications.
func (s *NotificationStore) MarkRead(ctx context.Context, id, user bson.ObjectID) (*models.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var notification models.Notification
	err := s.c.FindOneAndUpdate(ctx,
		bson.D{
			{Key: "_id", Value: id},
			{Key: "user", Value: user},
		},
		bson.M{"$set": bson.M{"read": true}},
		opts,
	).Decode(&notification)
	if err != nil {
		return nil, translate(err)
	}
	return &notification, nil
}
