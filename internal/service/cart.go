package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sokomart/backend/internal/auth"
	"github.com/sokomart/backend/pkg/models"
	storage "github.com/sokomart/backend/pkg/mongo"
)

type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) Get(ctx context.Context, p *auth.Principal) (*models.Cart, error) {
	return s.carts.GetByUser(ctx, p.ID)
}

// AddItem snapshots the product's current name/image/price into the cart
// line. Re-adding an existing product merges by incrementing quantity.
func (s *CartService) AddItem(ctx context.Context, p *auth.Principal, productID bson.ObjectID, quantity int) (*models.Cart, error) {
	product, err := s.visibleProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUser(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(models.CartItem{
		Product:  product.ID,
		Name:     product.Name,
		ImageURL: product.ImageURL,
		Price:    product.Price,
		Quantity: quantity,
	})

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) UpdateItem(ctx context.Context, p *auth.Principal, productID bson.ObjectID, quantity int) (*models.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if !cart.SetQuantity(productID, quantity) {
		return nil, ErrNotFound
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, p *auth.Principal, productID bson.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if !cart.RemoveItem(productID) {
		return nil, ErrNotFound
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, p *auth.Principal) error {
	return s.carts.Clear(ctx, p.ID)
}

// visibleProduct resolves a product for cart/wishlist use. Hidden and
// soft-deleted listings read as not found.
func (s *CartService) visibleProduct(ctx context.Context, productID bson.ObjectID) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !product.PubliclyVisible() {
		return nil, ErrNotFound
	}
	return product, nil
}

type WishlistService struct {
	wishlists WishlistStore
	products  ProductStore
	carts     *CartService
}

func NewWishlistService(wishlists WishlistStore, products ProductStore, carts *CartService) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products, carts: carts}
}

func (s *WishlistService) Get(ctx context.Context, p *auth.Principal) (*models.Wishlist, error) {
	return s.wishlists.GetByUser(ctx, p.ID)
}

// AddItem snapshots the product like a cart add but without quantity.
// A duplicate add is a conflict.
func (s *WishlistService) AddItem(ctx context.Context, p *auth.Principal, productID bson.ObjectID) (*models.Wishlist, error) {
	product, err := s.carts.visibleProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	wishlist, err := s.wishlists.GetByUser(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	added := wishlist.AddItem(models.WishlistItem{
		Product:  product.ID,
		Name:     product.Name,
		ImageURL: product.ImageURL,
		Price:    product.Price,
	})
	if !added {
		return nil, &DuplicateWishlistError{Name: product.Name}
	}

	if err := s.wishlists.Save(ctx, wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (s *WishlistService) RemoveItem(ctx context.Context, p *auth.Principal, productID bson.ObjectID) (*models.Wishlist, error) {
	wishlist, err := s.wishlists.GetByUser(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if !wishlist.RemoveItem(productID) {
		return nil, ErrNotFound
	}

	if err := s.wishlists.Save(ctx, wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}
