package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sokomart/backend/pkg/models"
)

type UserStore struct {
	c *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{c: db.Collection("users")}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.SetTimestamps()

	result, err := s.c.InsertOne(ctx, user)
	if err != nil {
		return nil, translate(err)
	}

	user.ID = result.InsertedID.(bson.ObjectID)
	return user, nil
}

func (s *UserStore) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.c.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.c.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	var user models.User
	if err := s.c.FindOne(ctx, bson.D{{Key: "user_name", Value: userName}}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.c.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListAdmins backs the "notify every admin" fan-out on product submission.
func (s *UserStore) ListAdmins(ctx context.Context) ([]models.User, error) {
	cursor, err := s.c.Find(ctx, bson.D{{Key: "role", Value: models.RoleAdmin}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	admins := []models.User{}
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}
