package router

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sokomart/backend/internal/service"
	"github.com/sokomart/backend/pkg/global"
)

// serviceError translates the service error taxonomy into HTTP responses.
// Anything unrecognized is an infrastructure failure: logged in full,
// reported generically.
func (a *API) serviceError(c *gin.Context, err error) {
	var (
		forbidden     *service.ForbiddenError
		emptyCart     *service.EmptyCartError
		productGone   *service.ProductNotFoundError
		noStock       *service.InsufficientStockError
		dupWishlist   *service.DuplicateWishlistError
		badDecision   *service.InvalidDecisionError
		missingReason *service.MissingReasonError
		badPayment    *service.InvalidPaymentMethodError
		badStatus     *service.InvalidStatusError
		badTransition *service.InvalidStatusTransitionError
	)

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, global.ErrorResponse("Resource not found", nil))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid email or password", nil))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, global.ErrorResponse("Email already registered", []global.ValidationError{
			{Field: "email", Message: "This email is already in use", Code: "duplicate_email"},
		}))
	case errors.Is(err, service.ErrUserNameTaken):
		c.JSON(http.StatusConflict, global.ErrorResponse("Username already taken", []global.ValidationError{
			{Field: "userName", Message: "This username is already in use", Code: "duplicate_username"},
		}))
	case errors.Is(err, service.ErrInvalidUserName):
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid username", []global.ValidationError{
			{Field: "userName", Message: err.Error(), Code: "invalid_format"},
		}))
	case errors.Is(err, service.ErrSKUTaken):
		c.JSON(http.StatusConflict, global.ErrorResponse("SKU already in use", []global.ValidationError{
			{Field: "sku", Message: "A product with this SKU already exists", Code: "duplicate_sku"},
		}))
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, global.ErrorResponse("Not authorized", nil))
	case errors.As(err, &emptyCart):
		c.JSON(http.StatusBadRequest, global.ErrorResponse(err.Error(), []global.ValidationError{
			{Field: "cart", Message: "Cart has no items", Code: "empty_cart"},
		}))
	case errors.As(err, &productGone):
		c.JSON(http.StatusNotFound, global.ErrorResponse(err.Error(), []global.ValidationError{
			{Field: "productId", Message: err.Error(), Code: "not_found"},
		}))
	case errors.As(err, &noStock):
		c.JSON(http.StatusBadRequest, global.ErrorResponse(err.Error(), []global.ValidationError{
			{Field: "quantity", Message: err.Error(), Code: "insufficient_stock"},
		}))
	case errors.As(err, &dupWishlist):
		c.JSON(http.StatusConflict, global.ErrorResponse(err.Error(), []global.ValidationError{
			{Field: "productId", Message: err.Error(), Code: "duplicate_entry"},
		}))
	case errors.As(err, &badDecision):
		c.JSON(http.StatusBadRequest, global.ErrorResponse(err.Error(), []global.ValidationError{
			{Field: "status", Message: err.Error(), Code: "invalid_value"},
		}))
	case errors.As(err, &missingReason):
		c.JSON(http.StatusBadRequest, global.ErrorResponse(err.Error(), []global.ValidationError{
			{Field: "reason", Message: err.Error(), Code: "required"},
		}))
	case errors.As(err, &badPayment):
		c.JSON(http.StatusBadRequest, global.ErrorResponse(err.Error(), []global.ValidationError{
			{Field: "paymentMethod", Message: err.Error(), Code: "invalid_value"},
		}))
	case errors.As(err, &badStatus), errors.As(err, &badTransition):
		c.JSON(http.StatusBadRequest, global.ErrorResponse(err.Error(), []global.ValidationError{
			{Field: "status", Message: err.Error(), Code: "invalid_value"},
		}))
	default:
		a.Log.WithError(err).WithField("path", c.Request.URL.Path).Error("unhandled service error")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Internal server error", nil))
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
		{Field: "request", Message: err.Error(), Code: "validation_error"},
	}))
}

// parseObjectID validates a path parameter, writing the 400 itself on
// failure.
func parseObjectID(c *gin.Context, param string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid id format", []global.ValidationError{
			{Field: param, Message: "Must be a valid ObjectID", Code: "invalid_format"},
		}))
		return bson.ObjectID{}, false
	}
	return id, true
}

// parseObjectIDValue validates an id carried in a request body rather than
// the path.
func parseObjectIDValue(c *gin.Context, field, raw string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid id format", []global.ValidationError{
			{Field: field, Message: "Must be a valid ObjectID", Code: "invalid_format"},
		}))
		return bson.ObjectID{}, false
	}
	return id, true
}

// boolQuery reads an optional boolean query parameter, nil when absent or
// unparseable.
func boolQuery(c *gin.Context, name string) *bool {
	raw, exists := c.GetQuery(name)
	if !exists {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return value
}
