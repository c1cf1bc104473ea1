package service

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	storage "github.com/sokomart/backend/pkg/mongo"
	"github.com/sokomart/backend/pkg/models"
)

// Store interfaces are the seams between the services and pkg/mongo. Tests
// substitute in-memory fakes; implementations signal not-found and duplicates
// with the storage sentinels.

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Product, error)
	List(ctx context.Context, filter bson.D, page, pageSize int) ([]models.Product, int64, error)
	DecrementStock(ctx context.Context, id bson.ObjectID, qty int) error
	IncrementStock(ctx context.Context, id bson.ObjectID, qty int) error
	CountPending(ctx context.Context) (int64, error)
}

type CartStore interface {
	GetByUser(ctx context.Context, user bson.ObjectID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Clear(ctx context.Context, user bson.ObjectID) error
}

type WishlistStore interface {
	GetByUser(ctx context.Context, user bson.ObjectID) (*models.Wishlist, error)
	Save(ctx context.Context, wishlist *models.Wishlist) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.Order, error)
	ListByUser(ctx context.Context, user bson.ObjectID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.AdminOrder, error)
	UpdateStatus(ctx context.Context, id bson.ObjectID, status string) (*models.Order, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	SalesStats(ctx context.Context) (*storage.SalesStats, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListAdmins(ctx context.Context) ([]models.User, error)
}

type ActivityStore interface {
	Insert(ctx context.Context, activity *models.Activity) error
	ListRecent(ctx context.Context, limit int) ([]models.Activity, error)
}

type NotificationStore interface {
	Insert(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, user bson.ObjectID) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, user bson.ObjectID) (*models.Notification, error)
}
