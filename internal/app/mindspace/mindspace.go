// Package mindspace собирает приложение: хранилище, миграции, сервисы,
// маршруты и HTTP-сервер с graceful shutdown.
package mindspace

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/mindspace-backend/internal/aiprovider"
	"github.com/magabrotheeeer/mindspace-backend/internal/config"
	jwtlib "github.com/magabrotheeeer/mindspace-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/mindspace-backend/internal/migrations"
	assistantservice "github.com/magabrotheeeer/mindspace-backend/internal/services/assistant"
	authservice "github.com/magabrotheeeer/mindspace-backend/internal/services/auth"
	forumservice "github.com/magabrotheeeer/mindspace-backend/internal/services/forum"
	"github.com/magabrotheeeer/mindspace-backend/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и подключение к базе данных.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует приложение: хранилище, миграции, сервисы и маршруты.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	providerClient := aiprovider.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterURL, cfg.Model)

	authService := authservice.New(db, jwtMaker)
	forumService := forumservice.New(db, db, logger)
	assistantService := assistantservice.New(providerClient, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, authService, forumService, assistantService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
