package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokomart/backend/pkg/global"
	"github.com/sokomart/backend/pkg/models"
)

func (a *API) GetCart(c *gin.Context) {
	cart, err := a.Carts.Get(c.Request.Context(), principalFrom(c))
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (a *API) AddCartItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	productID, ok := parseObjectIDValue(c, "productId", req.ProductID)
	if !ok {
		return
	}

	cart, err := a.Carts.AddItem(c.Request.Context(), principalFrom(c), productID, req.Quantity)
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (a *API) UpdateCartItem(c *gin.Context) {
	productID, ok := parseObjectID(c, "productId")
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cart, err := a.Carts.UpdateItem(c.Request.Context(), principalFrom(c), productID, req.Quantity)
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (a *API) RemoveCartItem(c *gin.Context) {
	productID, ok := parseObjectID(c, "productId")
	if !ok {
		return
	}

	cart, err := a.Carts.RemoveItem(c.Request.Context(), principalFrom(c), productID)
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (a *API) ClearCart(c *gin.Context) {
	if err := a.Carts.Clear(c.Request.Context(), principalFrom(c)); err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Cart cleared"}))
}
