package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokomart/backend/internal/service"
	"github.com/sokomart/backend/pkg/global"
	"github.com/sokomart/backend/pkg/models"
)

func (a *API) ListProducts(c *gin.Context) {
	query := service.ProductQuery{
		Category:      c.Query("category"),
		Brand:         c.Query("brand"),
		Keyword:       c.Query("keyword"),
		ReviewStatus:  c.Query("reviewStatus"),
		IsActive:      boolQuery(c, "isActive"),
		IsNew:         boolQuery(c, "isNew"),
		IsTrending:    boolQuery(c, "isTrending"),
		IsPromotional: boolQuery(c, "isPromotional"),
		Page:          intQuery(c, "pageNumber", 1),
		PageSize:      intQuery(c, "pageSize", 12),
	}

	page, err := a.Catalog.List(c.Request.Context(), principalFrom(c), query)
	if err != nil {
		a.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(page))
}

// GetProduct serves the product detail page with a Redis read-through for
// anonymous traffic. Authenticated callers skip the cache so owners and
// admins always see live review state.
func (a *API) GetProduct(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	principal := principalFrom(c)

	if principal.Anonymous() {
		if product, err := a.Cache.GetProduct(ctx, id.Hex()); err == nil {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, global.SuccessResponse(product))
			return
		}
	}

	product, err := a.Catalog.Get(ctx, principal, id)
	if err != nil {
		a.serviceError(c, err)
		return
	}

	if product.PubliclyVisible() {
		if cacheErr := a.Cache.CacheProduct(ctx, product); cacheErr != nil {
			a.Log.WithError(cacheErr).Warn("failed to cache product")
		}
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func (a *API) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := a.Catalog.Create(c.Request.Context(), principalFrom(c), req)
	if err != nil {
		a.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(product))
}

func (a *API) UpdateProduct(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	product, err := a.Catalog.Update(ctx, principalFrom(c), id, req)
	if err != nil {
		a.serviceError(c, err)
		return
	}

	if cacheErr := a.Cache.InvalidateProduct(ctx, id.Hex()); cacheErr != nil {
		a.Log.WithError(cacheErr).Warn("failed to invalidate product cache")
	}

	c.Header("X-Cache", "REFRESHED")
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func (a *API) DeleteProduct(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	product, err := a.Catalog.Delete(ctx, principalFrom(c), id)
	if err != nil {
		a.serviceError(c, err)
		return
	}

	if cacheErr := a.Cache.InvalidateProduct(ctx, id.Hex()); cacheErr != nil {
		a.Log.WithError(cacheErr).Warn("failed to invalidate product cache")
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"product": product,
		"message": "Product deactivated",
	}))
}

func (a *API) ReviewProduct(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req models.ReviewProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	product, err := a.Catalog.Review(ctx, principalFrom(c), id, req.Status, req.Reason)
	if err != nil {
		a.serviceError(c, err)
		return
	}

	if cacheErr := a.Cache.InvalidateProduct(ctx, id.Hex()); cacheErr != nil {
		a.Log.WithError(cacheErr).Warn("failed to invalidate product cache")
	}

	c.JSON(http.StatusOK, global.SuccessResponse(product))
}
