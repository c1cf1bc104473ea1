package main

import (
	"github.com/sirupsen/logrus"

	"github.com/sokomart/backend/internal/auth"
	"github.com/sokomart/backend/internal/config"
	"github.com/sokomart/backend/internal/router"
	"github.com/sokomart/backend/internal/service"
	"github.com/sokomart/backend/pkg/global"
	"github.com/sokomart/backend/pkg/mongo"
	"github.com/sokomart/backend/pkg/redis"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	db := client.Database(cfg.MongoDatabase)

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.WithError(err).Fatal("failed to ensure indexes")
	}

	cache := redis.NewCache(cfg.RedisAddress, cfg.RedisPassword)
	defer cache.Close()

	users := mongo.NewUserStore(db)
	products := mongo.NewProductStore(db)
	carts := mongo.NewCartStore(db)
	wishlists := mongo.NewWishlistStore(db)
	orders := mongo.NewOrderStore(db)
	activities := mongo.NewActivityStore(db)
	notifications := mongo.NewNotificationStore(db)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	recorder := service.NewRecorder(activities, notifications, users, log)
	cartService := service.NewCartService(carts, products)

	api := &router.API{
		Cfg:       cfg,
		Log:       log,
		Tokens:    tokens,
		Accounts:  service.NewAccountService(users, notifications, activities, tokens, log),
		Catalog:   service.NewCatalogService(products, recorder, log),
		Carts:     cartService,
		Wishlists: service.NewWishlistService(wishlists, products, cartService),
		Orders:    service.NewOrderService(orders, products, carts, recorder, log),
		Cache:     cache,
		DB:        db,
	}

	engine := api.Engine()

	log.WithField("port", cfg.Port).Info("server starting")
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
