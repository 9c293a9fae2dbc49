package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/passenger-registry/internal/config"
	"github.com/iliyamo/passenger-registry/internal/database"
	"github.com/iliyamo/passenger-registry/internal/handler"
	"github.com/iliyamo/passenger-registry/internal/logger"
	"github.com/iliyamo/passenger-registry/internal/metrics"
	"github.com/iliyamo/passenger-registry/internal/middleware"
	"github.com/iliyamo/passenger-registry/internal/queue"
	"github.com/iliyamo/passenger-registry/internal/repository"
	"github.com/iliyamo/passenger-registry/internal/router"
	"github.com/iliyamo/passenger-registry/internal/service"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connect failed", "error", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, response cache disabled")
	}
	cacheCfg := config.LoadCacheConfig()

	m := metrics.New("passenger_registry")

	passengers := repository.NewPassengerRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	publisher := service.NewPublisher(cfg.AMQPURL, log)
	importer := service.NewImporter(passengers, publisher, m, log)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	passengerHandler := handler.NewPassengerHandler(passengers, importer, publisher, m, log, cacheCfg, rdb)

	// Audit trail consumer runs for the life of the process.
	go queue.StartAuditConsumer(cfg.AMQPURL, log)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPassengers(e, passengerHandler, cfg.JWTSecret, middleware.NewRedisCache(cacheCfg, rdb))

	addr := ":" + cfg.Port
	log.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
