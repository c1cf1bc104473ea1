package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sokomart/backend/pkg/models"
	storage "github.com/sokomart/backend/pkg/mongo"
)

// In-memory store fakes. They honor the same sentinel contract as pkg/mongo
// so the services under test cannot tell the difference.

var errInjected = errors.New("injected failure")

type fakeProductStore struct {
	products map[bson.ObjectID]*models.Product
	skus     map[string]bson.ObjectID

	failDecrement map[bson.ObjectID]error
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		products:      map[bson.ObjectID]*models.Product{},
		skus:          map[string]bson.ObjectID{},
		failDecrement: map[bson.ObjectID]error{},
	}
}

func (f *fakeProductStore) put(p *models.Product) *models.Product {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	clone := *p
	f.products[p.ID] = &clone
	if p.SKU != "" {
		f.skus[p.SKU] = p.ID
	}
	return p
}

func (f *fakeProductStore) Create(_ context.Context, product *models.Product) (*models.Product, error) {
	if product.SKU != "" {
		if _, taken := f.skus[product.SKU]; taken {
			return nil, storage.ErrDuplicateKey
		}
	}
	product.SetTimestamps()
	return f.put(product), nil
}

func (f *fakeProductStore) GetByID(_ context.Context, id bson.ObjectID) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (f *fakeProductStore) Update(_ context.Context, id bson.ObjectID, set bson.M) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	for key, value := range set {
		switch key {
		case "name":
			product.Name = value.(string)
		case "description":
			product.Description = value.(string)
		case "category":
			product.Category = value.(string)
		case "brand":
			product.Brand = value.(string)
		case "image_url":
			product.ImageURL = value.(string)
		case "price":
			product.Price = value.(float64)
		case "old_price":
			product.OldPrice = value.(float64)
		case "stock":
			product.Stock = value.(int)
		case "review_status":
			product.ReviewStatus = value.(string)
		case "rejection_reason":
			product.RejectionReason = value.(string)
		case "is_active":
			product.IsActive = value.(bool)
		case "is_new":
			product.IsNew = value.(bool)
		case "is_trending":
			product.IsTrending = value.(bool)
		case "is_promotional":
			product.IsPromotional = value.(bool)
		case "updated_at":
			product.UpdatedAt = value.(time.Time)
		}
	}
	clone := *product
	return &clone, nil
}

func (f *fakeProductStore) List(_ context.Context, filter bson.D, page, pageSize int) ([]models.Product, int64, error) {
	matched := []models.Product{}
	for _, product := range f.products {
		if matchesFilter(product, filter) {
			matched = append(matched, *product)
		}
	}
	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []models.Product{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// matchesFilter evaluates the subset of query operators the services emit:
// exact equality plus the case-insensitive name regex.
func matchesFilter(p *models.Product, filter bson.D) bool {
	for _, clause := range filter {
		switch clause.Key {
		case "review_status":
			if p.ReviewStatus != clause.Value.(string) {
				return false
			}
		case "is_active":
			if p.IsActive != clause.Value.(bool) {
				return false
			}
		case "agent":
			if p.Agent != clause.Value.(bson.ObjectID) {
				return false
			}
		case "category":
			if p.Category != clause.Value.(string) {
				return false
			}
		case "brand":
			if p.Brand != clause.Value.(string) {
				return false
			}
		case "is_new":
			if p.IsNew != clause.Value.(bool) {
				return false
			}
		case "is_trending":
			if p.IsTrending != clause.Value.(bool) {
				return false
			}
		case "is_promotional":
			if p.IsPromotional != clause.Value.(bool) {
				return false
			}
		case "name":
			pattern := clause.Value.(bson.D)
			keyword := pattern[0].Value.(string)
			if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(keyword)) {
				return false
			}
		}
	}
	return true
}

func (f *fakeProductStore) DecrementStock(_ context.Context, id bson.ObjectID, qty int) error {
	if err, forced := f.failDecrement[id]; forced {
		return err
	}
	product, ok := f.products[id]
	if !ok {
		return storage.ErrNotFound
	}
	if product.Stock < qty {
		return storage.ErrInsufficientStock
	}
	product.Stock -= qty
	return nil
}

func (f *fakeProductStore) IncrementStock(_ context.Context, id bson.ObjectID, qty int) error {
	product, ok := f.products[id]
	if !ok {
		return storage.ErrNotFound
	}
	product.Stock += qty
	return nil
}

func (f *fakeProductStore) CountPending(_ context.Context) (int64, error) {
	var count int64
	for _, product := range f.products {
		if product.ReviewStatus == models.ReviewPending {
			count++
		}
	}
	return count, nil
}

type fakeCartStore struct {
	carts map[bson.ObjectID]*models.Cart

	failClear error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[bson.ObjectID]*models.Cart{}}
}

func (f *fakeCartStore) GetByUser(_ context.Context, user bson.ObjectID) (*models.Cart, error) {
	cart, ok := f.carts[user]
	if !ok {
		return &models.Cart{User: user, Items: []models.CartItem{}}, nil
	}
	clone := *cart
	clone.Items = append([]models.CartItem{}, cart.Items...)
	return &clone, nil
}

func (f *fakeCartStore) Save(_ context.Context, cart *models.Cart) error {
	clone := *cart
	clone.Items = append([]models.CartItem{}, cart.Items...)
	f.carts[cart.User] = &clone
	return nil
}

func (f *fakeCartStore) Clear(_ context.Context, user bson.ObjectID) error {
	if f.failClear != nil {
		return f.failClear
	}
	if cart, ok := f.carts[user]; ok {
		cart.Items = []models.CartItem{}
	}
	return nil
}

type fakeWishlistStore struct {
	wishlists map[bson.ObjectID]*models.Wishlist
}

func newFakeWishlistStore() *fakeWishlistStore {
	return &fakeWishlistStore{wishlists: map[bson.ObjectID]*models.Wishlist{}}
}

func (f *fakeWishlistStore) GetByUser(_ context.Context, user bson.ObjectID) (*models.Wishlist, error) {
	wishlist, ok := f.wishlists[user]
	if !ok {
		return &models.Wishlist{User: user, Items: []models.WishlistItem{}}, nil
	}
	clone := *wishlist
	clone.Items = append([]models.WishlistItem{}, wishlist.Items...)
	return &clone, nil
}

func (f *fakeWishlistStore) Save(_ context.Context, wishlist *models.Wishlist) error {
	clone := *wishlist
	clone.Items = append([]models.WishlistItem{}, wishlist.Items...)
	f.wishlists[wishlist.User] = &clone
	return nil
}

type fakeOrderStore struct {
	orders       map[bson.ObjectID]*models.Order
	takenNumbers map[string]bool
	createCalls  int
	// first N creates report a duplicate key, simulating orderNumber
	// collisions against the unique index
	duplicateFirst int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:       map[bson.ObjectID]*models.Order{},
		takenNumbers: map[string]bool{},
	}
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	f.createCalls++
	if f.createCalls <= f.duplicateFirst || f.takenNumbers[order.OrderNumber] {
		return nil, storage.ErrDuplicateKey
	}
	f.takenNumbers[order.OrderNumber] = true

	order.ID = bson.NewObjectID()
	order.SetTimestamps()
	clone := *order
	f.orders[order.ID] = &clone
	return order, nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, id bson.ObjectID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderStore) ListByUser(_ context.Context, user bson.ObjectID) ([]models.Order, error) {
	orders := []models.Order{}
	for _, order := range f.orders {
		if order.User == user {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (f *fakeOrderStore) ListAll(_ context.Context) ([]models.AdminOrder, error) {
	orders := []models.AdminOrder{}
	for _, order := range f.orders {
		orders = append(orders, models.AdminOrder{Order: *order})
	}
	return orders, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id bson.ObjectID, status string) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	order.Status = status
	clone := *order
	return &clone, nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id bson.ObjectID) error {
	if _, ok := f.orders[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderStore) SalesStats(_ context.Context) (*storage.SalesStats, error) {
	stats := &storage.SalesStats{ByStatus: []storage.OrderStatusBucket{}}
	for _, order := range f.orders {
		stats.TotalOrders++
		if order.Status != models.OrderCancelled {
			stats.TotalRevenue += order.TotalAmount
		}
	}
	return stats, nil
}

type fakeUserStore struct {
	users map[bson.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[bson.ObjectID]*models.User{}}
}

func (f *fakeUserStore) put(u *models.User) *models.User {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	clone := *u
	f.users[u.ID] = &clone
	return u
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.UserName == user.UserName {
			return nil, storage.ErrDuplicateKey
		}
	}
	user.SetTimestamps()
	return f.put(user), nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUserStore) GetByUserName(_ context.Context, userName string) (*models.User, error) {
	for _, user := range f.users {
		if user.UserName == userName {
			clone := *user
			return &clone, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	users := []models.User{}
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, nil
}

func (f *fakeUserStore) ListAdmins(_ context.Context) ([]models.User, error) {
	admins := []models.User{}
	for _, user := range f.users {
		if user.Role == models.RoleAdmin {
			admins = append(admins, *user)
		}
	}
	return admins, nil
}

type fakeActivityStore struct {
	activities []models.Activity
}

func (f *fakeActivityStore) Insert(_ context.Context, activity *models.Activity) error {
	f.activities = append(f.activities, *activity)
	return nil
}

func (f *fakeActivityStore) ListRecent(_ context.Context, limit int) ([]models.Activity, error) {
	if limit > len(f.activities) {
		limit = len(f.activities)
	}
	recent := make([]models.Activity, limit)
	copy(recent, f.activities[len(f.activities)-limit:])
	return recent, nil
}

type fakeNotificationStore struct {
	notifications []models.Notification
}

func (f *fakeNotificationStore) Insert(_ context.Context, notification *models.Notification) error {
	if notification.ID.IsZero() {
		notification.ID = bson.NewObjectID()
	}
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeNotificationStore) ListByUser(_ context.Context, user bson.ObjectID) ([]models.Notification, error) {
	matched := []models.Notification{}
	for _, notification := range f.notifications {
		if notification.User == user {
			matched = append(matched, notification)
		}
	}
	return matched, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id, user bson.ObjectID) (*models.Notification, error) {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].User == user {
			f.notifications[i].Read = true
			clone := f.notifications[i]
			return &clone, nil
		}
	}
	return nil, storage.ErrNotFound
}
