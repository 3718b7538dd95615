package main

import (
	"fmt"
	"log"
	"net/http"

	"labelr/internal/api"
	"labelr/internal/api/handlers"
	"labelr/internal/api/middleware"
	"labelr/internal/engine/compose"
	"labelr/internal/engine/history"
	"labelr/internal/engine/templates"
	"labelr/internal/engine/text"
	"labelr/internal/pkg/logger"
	"labelr/internal/platform/auth"
	"labelr/internal/platform/config"
	"labelr/internal/platform/database"
	"labelr/internal/platform/repositories"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Font capability is resolved once; every render uses the same source.
	fonts := text.LoadSource(cfg.Render.FontPath)
	labelCache := compose.NewCache(cfg.Render.CacheTTL)
	composer := handlers.NewComposer(fonts, labelCache, cfg.Render)

	// Repositories and services
	userRepo := repositories.NewUserRepository(db)
	templateSvc := templates.NewService(templates.NewRepository(db))
	recorder := history.NewRecorder(db)

	tokenSvc := auth.NewTokenService(cfg.JWT)
	metrics := &handlers.Metrics{}

	// Handlers
	deps := &api.Dependencies{
		AuthHandler:     handlers.NewAuthHandler(userRepo, tokenSvc),
		LabelHandler:    handlers.NewLabelHandler(composer, metrics),
		PageHandler:     handlers.NewPageHandler(composer, recorder, metrics, cfg.Preview, cfg.Render),
		TemplateHandler: handlers.NewTemplateHandler(templateSvc, composer, recorder, metrics, cfg.Render.DPI),
		HistoryHandler:  handlers.NewHistoryHandler(recorder),
		HealthHandler:   handlers.NewHealthHandler(db, fonts),
		MetricsHandler:  handlers.NewMetricsHandler(metrics),
		AuthMiddleware:  middleware.NewAuthMiddleware(tokenSvc),
		RateLimiter:     middleware.NewRateLimiter(cfg.RateLimit),
	}
	router := api.NewRouter(deps)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Printf("Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
