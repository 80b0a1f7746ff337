package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "taskboard/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskboard/internal/auth"
	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/router"
	"taskboard/internal/service"
	"taskboard/internal/validation"
)

// @title Taskboard API
// @version 1.0
// @description Task management API with session-cookie authentication and owner/admin authorization.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.Task{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize session components
	sessionService := auth.NewSessionService(cfg.SessionSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	validate := validation.New()
	authService := service.NewAuthService(userRepo, sessionService, sessionStore)
	actorService := service.NewActorService(sessionStore, profileRepo)
	taskService := service.NewTaskService(taskRepo, validate)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	meHandler := handler.NewMeHandler()
	taskHandler := handler.NewTaskHandler(taskService)

	// Register routes
	router.Register(
		e,
		cfg,
		validate,
		actorService,
		authHandler,
		meHandler,
		taskHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := cacheClient.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
}
