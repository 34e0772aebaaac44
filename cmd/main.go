// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"github.com/mateusz-szafarz/10x-cards/internal/config"
	"github.com/mateusz-szafarz/10x-cards/internal/handlers"
	"github.com/mateusz-szafarz/10x-cards/internal/middleware"
	"github.com/mateusz-szafarz/10x-cards/internal/openrouter"
	"github.com/mateusz-szafarz/10x-cards/internal/repository"
	"github.com/mateusz-szafarz/10x-cards/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Temporary logger until the configured one is built.
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := godotenv.Load(); err != nil {
		tempLogger.Debug("No .env file found, relying on environment", slog.Any("error", err))
	}

	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := repository.AutoMigrate(db); err != nil {
		slog.Error("Error running schema migration", slog.Any("error", err))
		os.Exit(1)
	}

	// The generator is chosen once at wiring time: the mock serves local
	// development and environments without an API key.
	var generator service.ProposalGenerator
	if config.Cfg.OpenRouter.UseMock {
		slog.Info("Using mock proposal generator")
		generator = openrouter.NewMockClient()
	} else {
		client, err := openrouter.NewClient(openrouter.Config{
			APIKey:      config.Cfg.OpenRouter.APIKey,
			BaseURL:     config.Cfg.OpenRouter.BaseURL,
			Model:       config.Cfg.OpenRouter.Model,
			Timeout:     config.Cfg.OpenRouterTimeout(),
			MaxRetries:  config.Cfg.OpenRouter.MaxRetries,
			HTTPReferer: config.Cfg.OpenRouter.HTTPReferer,
		}, logger)
		if err != nil {
			slog.Error("Error initializing OpenRouter client", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("Using OpenRouter proposal generator", slog.String("model", client.ModelName()))
		generator = client
	}

	genRepo := repository.NewGormGenerationRepository()
	cardRepo := repository.NewGormFlashcardRepository()
	userRepo := repository.NewGormUserRepository()

	generationService := service.NewGenerationService(db, generator, genRepo, cardRepo)
	flashcardService := service.NewFlashcardService(db, cardRepo)
	authService := service.NewAuthService(db, userRepo, &config.Cfg)

	generationHandler := handlers.NewGenerationHandler(generationService, logger)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardService, logger)
	authHandler := handlers.NewAuthHandler(authService, logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	// Generation requests can legitimately run for a minute with model
	// retries, so the request timeout sits well above that.
	r.Use(chimiddleware.Timeout(90 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.PostRegister)
			r.Post("/login", authHandler.PostLogin)
		})

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(&config.Cfg))

			r.Route("/generations", func(r chi.Router) {
				r.Post("/", generationHandler.PostGeneration)
				r.Post("/{generation_id}/accept", generationHandler.PostAcceptGeneration)
			})

			r.Route("/flashcards", func(r chi.Router) {
				r.Post("/", flashcardHandler.PostFlashcard)
				r.Get("/", flashcardHandler.GetFlashcards)
				r.Get("/{flashcard_id}", flashcardHandler.GetFlashcard)
				r.Put("/{flashcard_id}", flashcardHandler.PutFlashcard)
				r.Delete("/{flashcard_id}", flashcardHandler.DeleteFlashcard)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 95 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
