package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Product represents a listing submitted by an agent and moderated by an
// admin. ReviewStatus and IsActive are independent: an approved product can be
// deactivated without losing its approval.
type Product struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	SKU             string        `bson:"sku,omitempty" json:"sku,omitempty" validate:"omitempty,min=3,max=50"`
	Name            string        `bson:"name" json:"name" validate:"required,min=2,max=200"`
	Description     string        `bson:"description" json:"description" validate:"max=2000"`
	Category        string        `bson:"category" json:"category" validate:"max=100"`
	Brand           string        `bson:"brand" json:"brand" validate:"max=100"`
	ImageURL        string        `bson:"image_url" json:"imageUrl" validate:"omitempty,url"`
	Price           float64       `bson:"price" json:"price" validate:"gte=0"`
	OldPrice        float64       `bson:"old_price,omitempty" json:"oldPrice,omitempty" validate:"gte=0"`
	Stock           int           `bson:"stock" json:"stock" validate:"gte=0"`
	Agent           bson.ObjectID `bson:"agent" json:"agent"` // immutable after creation
	ReviewStatus    string        `bson:"review_status" json:"reviewStatus" validate:"required,oneof=pending approved rejected"`
	RejectionReason string        `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`
	IsActive        bool          `bson:"is_active" json:"isActive"`
	IsNew           bool          `bson:"is_new" json:"isNew"`
	IsTrending      bool          `bson:"is_trending" json:"isTrending"`
	IsPromotional   bool          `bson:"is_promotional" json:"isPromotional"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updatedAt"`
}

// PubliclyVisible reports whether the product may appear in storefront
// listings: approved by an admin and not soft-deleted.
func (p *Product) PubliclyVisible() bool {
	return p.ReviewStatus == ReviewApproved && p.IsActive
}

// OwnedBy reports whether the given user created this listing.
func (p *Product) OwnedBy(userID bson.ObjectID) bool {
	return p.Agent == userID
}

// SetTimestamps sets created_at on first call and always updates updated_at
func (p *Product) SetTimestamps() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func ValidReviewStatus(s string) bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	default:
		return false
	}
}

type CreateProductRequest struct {
	SKU           string  `json:"sku" binding:"omitempty,min=3,max=50"`
	Name          string  `json:"name" binding:"required,min=2,max=200"`
	Description   string  `json:"description" binding:"max=2000"`
	Category      string  `json:"category" binding:"max=100"`
	Brand         string  `json:"brand" binding:"max=100"`
	ImageURL      string  `json:"imageUrl" binding:"omitempty,url"`
	Price         float64 `json:"price" binding:"gte=0"`
	OldPrice      float64 `json:"oldPrice" binding:"omitempty,gte=0"`
	Stock         int     `json:"stock" binding:"gte=0"`
	IsNew         bool    `json:"isNew"`
	IsTrending    bool    `json:"isTrending"`
	IsPromotional bool    `json:"isPromotional"`
}

func (req *CreateProductRequest) ToProduct(agent bson.ObjectID) *Product {
	product := &Product{
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Brand:         req.Brand,
		ImageURL:      req.ImageURL,
		Price:         req.Price,
		OldPrice:      req.OldPrice,
		Stock:         req.Stock,
		Agent:         agent,
		ReviewStatus:  ReviewPending,
		IsActive:      true,
		IsNew:         req.IsNew,
		IsTrending:    req.IsTrending,
		IsPromotional: req.IsPromotional,
	}
	product.SetTimestamps()
	return product
}

// UpdateProductRequest carries a partial edit. Nil pointers mean "leave
// unchanged".
type UpdateProductRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=2,max=200"`
	Description   *string  `json:"description" binding:"omitempty,max=2000"`
	Category      *string  `json:"category" binding:"omitempty,max=100"`
	Brand         *string  `json:"brand" binding:"omitempty,max=100"`
	ImageURL      *string  `json:"imageUrl" binding:"omitempty,url"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	OldPrice      *float64 `json:"oldPrice" binding:"omitempty,gte=0"`
	Stock         *int     `json:"stock" binding:"omitempty,gte=0"`
	IsActive      *bool    `json:"isActive"`
	IsNew         *bool    `json:"isNew"`
	IsTrending    *bool    `json:"isTrending"`
	IsPromotional *bool    `json:"isPromotional"`
}

type ReviewProductRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// ProductPage is the paginated listing envelope.
type ProductPage struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	Pages      int       `json:"pages"`
	TotalCount int64     `json:"totalCount"`
}
