package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokomart/backend/pkg/global"
	"github.com/sokomart/backend/pkg/models"
)

func (a *API) GetWishlist(c *gin.Context) {
	wishlist, err := a.Wishlists.Get(c.Request.Context(), principalFrom(c))
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(wishlist))
}

func (a *API) AddWishlistItem(c *gin.Context) {
	var req models.AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	productID, ok := parseObjectIDValue(c, "productId", req.ProductID)
	if !ok {
		return
	}

	wishlist, err := a.Wishlists.AddItem(c.Request.Context(), principalFrom(c), productID)
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(wishlist))
}

func (a *API) RemoveWishlistItem(c *gin.Context) {
	productID, ok := parseObjectID(c, "productId")
	if !ok {
		return
	}

	wishlist, err := a.Wishlists.RemoveItem(c.Request.Context(), principalFrom(c), productID)
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(wishlist))
}
