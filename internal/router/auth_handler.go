package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokomart/backend/pkg/global"
	"github.com/sokomart/backend/pkg/models"
)

func (a *API) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := a.Accounts.Register(c.Request.Context(), req)
	if err != nil {
		a.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(user))
}

func (a *API) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, user, err := a.Accounts.Login(c.Request.Context(), req)
	if err != nil {
		a.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(models.LoginResponse{Token: token, User: user}))
}

func (a *API) Me(c *gin.Context) {
	principal := principalFrom(c)

	user, err := a.Accounts.Get(c.Request.Context(), principal.ID)
	if err != nil {
		a.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(user))
}
