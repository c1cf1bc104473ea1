package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sokomart/backend/internal/auth"
	"github.com/sokomart/backend/internal/config"
	"github.com/sokomart/backend/internal/service"
	"github.com/sokomart/backend/pkg/global"
	"github.com/sokomart/backend/pkg/redis"
)

// API holds every dependency the handlers need. main constructs one and
// mounts it on a gin engine.
type API struct {
	Cfg       *config.Config
	Log       *logrus.Logger
	Tokens    *auth.TokenIssuer
	Accounts  *service.AccountService
	Catalog   *service.CatalogService
	Carts     *service.CartService
	Wishlists *service.WishlistService
	Orders    *service.OrderService
	Cache     *redis.Cache
	DB        *mongo.Database
}

func (a *API) Engine() *gin.Engine {
	if a.Cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(RequestLogger(a.Log))

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     a.Cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Total-Count", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	a.registerRoutes(engine)
	return engine
}

func (a *API) registerRoutes(engine *gin.Engine) {
	api := engine.Group("/api")
	{
		api.GET("/health", a.HealthCheck)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", a.Register)
			authGroup.POST("/login", a.Login)
			authGroup.GET("/me", a.Authenticate(), a.RequireAuth(), a.Me)
		}

		products := api.Group("/products")
		products.Use(a.Authenticate())
		{
			products.GET("/", a.ListProducts)
			products.GET("/:id", a.GetProduct)
			products.POST("/", a.RequireAuth(), a.CreateProduct)
			products.PUT("/:id", a.RequireAuth(), a.UpdateProduct)
			products.DELETE("/:id", a.RequireAuth(), a.DeleteProduct)
			products.PUT("/:id/review", a.RequireAuth(), a.ReviewProduct)
		}

		cart := api.Group("/cart")
		cart.Use(a.Authenticate(), a.RequireAuth())
		{
			cart.GET("/", a.GetCart)
			cart.POST("/items", a.AddCartItem)
			cart.PUT("/items/:productId", a.UpdateCartItem)
			cart.DELETE("/items/:productId", a.RemoveCartItem)
			cart.DELETE("/", a.ClearCart)
		}

		wishlist := api.Group("/wishlist")
		wishlist.Use(a.Authenticate(), a.RequireAuth())
		{
			wishlist.GET("/", a.GetWishlist)
			wishlist.POST("/items", a.AddWishlistItem)
			wishlist.DELETE("/items/:productId", a.RemoveWishlistItem)
		}

		orders := api.Group("/orders")
		orders.Use(a.Authenticate(), a.RequireAuth())
		{
			orders.POST("/", a.PlaceOrder)
			orders.GET("/", a.ListMyOrders)
			orders.GET("/all", a.ListAllOrders)
			orders.PUT("/:id/status", a.UpdateOrderStatus)
		}

		notifications := api.Group("/notifications")
		notifications.Use(a.Authenticate(), a.RequireAuth())
		{
			notifications.GET("/", a.ListNotifications)
			notifications.PUT("/:id/read", a.MarkNotificationRead)
		}

		admin := api.Group("/admin")
		admin.Use(a.Authenticate(), a.RequireAuth())
		{
			admin.GET("/users", a.ListUsers)
			admin.GET("/activities", a.ListActivities)
			admin.GET("/stats", a.AdminStats)
		}
	}
}

func (a *API) HealthCheck(c *gin.Context) {
	if err := a.DB.Client().Ping(c.Request.Context(), nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}
