package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokomart/backend/pkg/global"
)

func (a *API) ListUsers(c *gin.Context) {
	users, err := a.Accounts.ListUsers(c.Request.Context(), principalFrom(c))
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(users))
}

func (a *API) ListActivities(c *gin.Context) {
	activities, err := a.Accounts.ListActivities(c.Request.Context(), principalFrom(c), intQuery(c, "limit", 50))
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(activities))
}

func (a *API) AdminStats(c *gin.Context) {
	stats, err := a.Orders.Stats(c.Request.Context(), principalFrom(c))
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(stats))
}

func (a *API) ListNotifications(c *gin.Context) {
	notifications, err := a.Accounts.Notifications(c.Request.Context(), principalFrom(c))
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(notifications))
}

func (a *API) MarkNotificationRead(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	notification, err := a.Accounts.MarkNotificationRead(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		a.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(notification))
}
