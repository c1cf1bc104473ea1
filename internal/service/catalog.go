package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sokomart/backend/internal/auth"
	"github.com/sokomart/backend/pkg/models"
	storage "github.com/sokomart/backend/pkg/mongo"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// ProductQuery carries the caller-supplied listing filters. ReviewStatus and
// IsActive are only honored for agents and admins; the visibility filter
// pins them for everyone else.
type ProductQuery struct {
	Category      string
	Brand         string
	Keyword       string
	ReviewStatus  string
	IsActive      *bool
	IsNew         *bool
	IsTrending    *bool
	IsPromotional *bool
	Page          int
	PageSize      int
}

func (q *ProductQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > maxPageSize {
		q.PageSize = defaultPageSize
	}
}

// VisibilityFilter builds the listing predicate from the caller's role and
// identity. Pure function of (principal, query); no side effects.
//
//	anonymous / plain user: approved and active products only
//	agent:                  own products regardless of status, unless the
//	                        query names an explicit status/activity filter
//	admin:                  everything, same explicit-filter override
func VisibilityFilter(p *auth.Principal, q ProductQuery) bson.D {
	filter := bson.D{}

	if q.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: q.Category})
	}
	if q.Brand != "" {
		filter = append(filter, bson.E{Key: "brand", Value: q.Brand})
	}
	if q.Keyword != "" {
		filter = append(filter, bson.E{Key: "name", Value: bson.D{
			{Key: "$regex", Value: q.Keyword},
			{Key: "$options", Value: "i"},
		}})
	}
	if q.IsNew != nil {
		filter = append(filter, bson.E{Key: "is_new", Value: *q.IsNew})
	}
	if q.IsTrending != nil {
		filter = append(filter, bson.E{Key: "is_trending", Value: *q.IsTrending})
	}
	if q.IsPromotional != nil {
		filter = append(filter, bson.E{Key: "is_promotional", Value: *q.IsPromotional})
	}

	switch {
	case p.IsAdmin():
		if q.ReviewStatus != "" {
			filter = append(filter, bson.E{Key: "review_status", Value: q.ReviewStatus})
		}
		if q.IsActive != nil {
			filter = append(filter, bson.E{Key: "is_active", Value: *q.IsActive})
		}
	case p.IsAgent():
		filter = append(filter, bson.E{Key: "agent", Value: p.ID})
		if q.ReviewStatus != "" {
			filter = append(filter, bson.E{Key: "review_status", Value: q.ReviewStatus})
		}
		if q.IsActive != nil {
			filter = append(filter, bson.E{Key: "is_active", Value: *q.IsActive})
		}
	default:
		filter = append(filter,
			bson.E{Key: "review_status", Value: models.ReviewApproved},
			bson.E{Key: "is_active", Value: true},
		)
	}

	return filter
}

type CatalogService struct {
	products ProductStore
	recorder *Recorder
	log      *logrus.Logger
}

func NewCatalogService(products ProductStore, recorder *Recorder, log *logrus.Logger) *CatalogService {
	return &CatalogService{products: products, recorder: recorder, log: log}
}

// Create submits a new listing. Agent submissions start pending; admin
// listings skip the queue since self-moderation would be a no-op.
func (s *CatalogService) Create(ctx context.Context, p *auth.Principal, req models.CreateProductRequest) (*models.Product, error) {
	if !p.IsAgent() && !p.IsAdmin() {
		return nil, &ForbiddenError{}
	}

	product := req.ToProduct(p.ID)
	if p.IsAdmin() {
		product.ReviewStatus = models.ReviewApproved
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrSKUTaken
		}
		return nil, err
	}

	s.recorder.Activity(ctx, p, models.ActivityProductSubmitted, created.ID, created.Name)
	if p.IsAgent() {
		s.recorder.NotifyAdmins(ctx, fmt.Sprintf("New product %q submitted by %s awaits review", created.Name, p.UserName))
	}

	return created, nil
}

// Get applies the visibility rule to a single lookup. A product hidden from
// the caller reads as not found rather than forbidden, so pending listings
// are not discoverable by probing.
func (s *CatalogService) Get(ctx context.Context, p *auth.Principal, id bson.ObjectID) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if product.PubliclyVisible() {
		return product, nil
	}
	if p.IsAdmin() || (!p.Anonymous() && product.OwnedBy(p.ID)) {
		return product, nil
	}
	return nil, ErrNotFound
}

func (s *CatalogService) List(ctx context.Context, p *auth.Principal, q ProductQuery) (*models.ProductPage, error) {
	q.Normalize()

	products, total, err := s.products.List(ctx, VisibilityFilter(p, q), q.Page, q.PageSize)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return &models.ProductPage{
		Products:   products,
		Page:       q.Page,
		Pages:      pages,
		TotalCount: total,
	}, nil
}

// Update applies a partial edit. A non-admin owner editing an approved
// product forces it back to pending and clears any prior rejection reason, so
// every agent-initiated change goes through review again.
func (s *CatalogService) Update(ctx context.Context, p *auth.Principal, id bson.ObjectID, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !p.IsAdmin() && !product.OwnedBy(p.ID) {
		return nil, &ForbiddenError{}
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Brand != nil {
		set["brand"] = *req.Brand
	}
	if req.ImageURL != nil {
		set["image_url"] = *req.ImageURL
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.OldPrice != nil {
		set["old_price"] = *req.OldPrice
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
	}
	if req.IsNew != nil {
		set["is_new"] = *req.IsNew
	}
	if req.IsTrending != nil {
		set["is_trending"] = *req.IsTrending
	}
	if req.IsPromotional != nil {
		set["is_promotional"] = *req.IsPromotional
	}

	if !p.IsAdmin() && product.ReviewStatus == models.ReviewApproved {
		set["review_status"] = models.ReviewPending
		set["rejection_reason"] = ""
	}

	updated, err := s.products.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes: the listing goes inactive but the document stays so
// past orders keep a valid reference.
func (s *CatalogService) Delete(ctx context.Context, p *auth.Principal, id bson.ObjectID) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !p.IsAdmin() && !product.OwnedBy(p.ID) {
		return nil, &ForbiddenError{}
	}

	return s.products.Update(ctx, id, bson.M{"is_active": false, "updated_at": time.Now()})
}

// Review applies an admin moderation decision. Approval always (re)activates
// the listing and clears any stale rejection reason; rejection requires a
// non-empty reason. Re-review out of either terminal state is allowed.
func (s *CatalogService) Review(ctx context.Context, p *auth.Principal, id bson.ObjectID, decision, reason string) (*models.Product, error) {
	if !p.IsAdmin() {
		return nil, &ForbiddenError{}
	}

	if decision != models.ReviewApproved && decision != models.ReviewRejected {
		return nil, &InvalidDecisionError{Decision: decision}
	}
	reason = strings.TrimSpace(reason)
	if decision == models.ReviewRejected && reason == "" {
		return nil, &MissingReasonError{}
	}

	_, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	set := bson.M{
		"review_status": decision,
		"updated_at":    time.Now(),
	}
	if decision == models.ReviewRejected {
		set["rejection_reason"] = reason
	} else {
		set["rejection_reason"] = ""
		set["is_active"] = true
	}

	updated, err := s.products.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.recorder.Activity(ctx, p, models.ActivityProductReviewed, updated.ID, decision)
	if decision == models.ReviewApproved {
		s.recorder.Notify(ctx, updated.Agent, fmt.Sprintf("Your product %q has been approved", updated.Name))
	} else {
		s.recorder.Notify(ctx, updated.Agent, fmt.Sprintf("Your product %q was rejected: %s", updated.Name, reason))
	}

	return updated, nil
}
