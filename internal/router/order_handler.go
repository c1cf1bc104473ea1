package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokomart/backend/pkg/global"
	"github.com/sokomart/backend/pkg/models"
)

func (a *API) PlaceOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := a.Orders.Place(c.Request.Context(), principalFrom(c), req)
	if err != nil {
		a.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(order))
}

func (a *API) ListMyOrders(c *gin.Context) {
	orders, err := a.Orders.ListForUser(c.Request.Context(), principalFrom(c))
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

func (a *API) ListAllOrders(c *gin.Context) {
	orders, err := a.Orders.ListAll(c.Request.Context(), principalFrom(c))
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

func (a *API) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := a.Orders.UpdateStatus(c.Request.Context(), principalFrom(c), id, req.Status)
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}
