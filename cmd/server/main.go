package main

import (
	"log"
	"net/http"

	_ "modacart/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"modacart/internal/auth"
	"modacart/internal/cache"
	"modacart/internal/config"
	"modacart/internal/db"
	"modacart/internal/handler"
	"modacart/internal/model"
	"modacart/internal/repository"
	"modacart/internal/router"
	"modacart/internal/service"
)

// @title Modacart Auth API
// @version 1.0
// @description Storefront authentication, session and user administration API.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Println("WARNING: signing tokens with the default JWT secret; set JWT_SECRET")
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	var userRepo repository.UserRepository
	switch cfg.StoreBackend {
	case "memory":
		log.Println("using in-memory user store")
		userRepo = repository.NewMemoryUserRepository()
	default:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("database init: %v", err)
		}
		if err := gormDB.AutoMigrate(&model.User{}); err != nil {
			log.Fatalf("auto-migrate: %v", err)
		}
		userRepo = repository.NewUserRepository(gormDB)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, jwtService, cfg.AdminUsername, cfg.AdminPassword)
	userService := service.NewUserService(userRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService, userService, jwtService, cfg.IsProduction())
	adminAuthHandler := handler.NewAdminAuthHandler(authService, cfg.IsProduction())
	userHandler := handler.NewUserHandler(userService)
	seedHandler := handler.NewSeedHandler(userService)

	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		adminAuthHandler,
		userHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
