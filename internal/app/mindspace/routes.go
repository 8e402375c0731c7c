// Package mindspace предоставляет маршруты для основного приложения.
package mindspace

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	aimood "github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/ai/mood"
	aistories "github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/ai/stories"
	aisuggestions "github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/ai/suggestions"
	aisupport "github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/ai/support"
	"github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/auth/signup"
	commentcreate "github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/comment/create"
	commentlist "github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/comment/list"
	commentvote "github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/comment/vote"
	"github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/health"
	postcreate "github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/post/create"
	postlist "github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/post/list"
	"github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/post/myposts"
	postremove "github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/post/remove"
	postvote "github.com/magabrotheeeer/mindspace-backend/internal/http/handlers/post/vote"
	"github.com/magabrotheeeer/mindspace-backend/internal/http/middlewarectx"
	jwtlib "github.com/magabrotheeeer/mindspace-backend/internal/lib/jwt"
	assistantservice "github.com/magabrotheeeer/mindspace-backend/internal/services/assistant"
	authservice "github.com/magabrotheeeer/mindspace-backend/internal/services/auth"
	forumservice "github.com/magabrotheeeer/mindspace-backend/internal/services/forum"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwtlib.Maker,
	authService *authservice.Service, forumService *forumservice.Service,
	assistantService *assistantservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/signup", signup.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/posts", postlist.New(logger, forumService).ServeHTTP)
		r.Get("/posts/{id}/comments", commentlist.New(logger, forumService).ServeHTTP)
		r.Get("/health", health.New())

		// AI-поддержка открыта: деградирует до статического контента сама
		r.Post("/ai/support", aisupport.New(logger, assistantService).ServeHTTP)
		r.Post("/ai/analyze-mood", aimood.New(logger, assistantService).ServeHTTP)
		r.Post("/ai/suggestions", aisuggestions.New(logger, assistantService).ServeHTTP)
		r.Post("/ai/stories", aistories.New(logger, assistantService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/auth/me", profile.New(logger, authService).ServeHTTP)
			r.Post("/posts", postcreate.New(logger, forumService).ServeHTTP)
			r.Get("/posts/my-posts", myposts.New(logger, forumService).ServeHTTP)
			r.Delete("/posts/{id}", postremove.New(logger, forumService).ServeHTTP)
			r.Post("/posts/{id}/vote", postvote.New(logger, forumService).ServeHTTP)
			r.Post("/posts/{id}/comments", commentcreate.New(logger, forumService).ServeHTTP)
			r.Post("/comments/{id}/vote", commentvote.New(logger, forumService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
