package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/platefinder/api/internal/auth"
	"github.com/platefinder/api/internal/config"
	"github.com/platefinder/api/internal/database"
	"github.com/platefinder/api/internal/gemini"
	"github.com/platefinder/api/internal/handler"
	middlewarepkg "github.com/platefinder/api/internal/middleware"
	"github.com/platefinder/api/internal/repository"
	"github.com/platefinder/api/internal/router"
	"github.com/platefinder/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("failed to create gemini client: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	validator := service.NewValidator(cfg.PhoneRegion)

	usersRepo := repository.NewPGXUsersRepository(pool)
	queriesRepo := repository.NewPGXQueriesRepository(pool)

	authService := service.NewAuthService(usersRepo, jwtManager, validator)
	userService := service.NewUserService(usersRepo, validator)
	recommendService := service.NewRecommendService(geminiClient)
	promptService := service.NewPromptService()

	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Users:     handler.NewUserAdminHandler(userService),
		Recommend: handler.NewRecommendHandler(recommendService, queriesRepo),
		Prompt:    handler.NewPromptRecommendHandler(promptService, recommendService, queriesRepo),
		Queries:   handler.NewQueryAuditHandler(queriesRepo),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
