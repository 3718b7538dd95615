package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "labelr/internal/api/context"
	"labelr/internal/api/handlers"
	"labelr/internal/api/middleware"
	"labelr/internal/pkg/errors"
	"labelr/internal/platform/auth"
)

type Dependencies struct {
	AuthHandler     *handlers.AuthHandler
	LabelHandler    *handlers.LabelHandler
	PageHandler     *handlers.PageHandler
	TemplateHandler *handlers.TemplateHandler
	HistoryHandler  *handlers.HistoryHandler
	HealthHandler   *handlers.HealthHandler
	MetricsHandler  *handlers.MetricsHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimiter     *middleware.RateLimiter
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	authMid := deps.AuthMiddleware
	renderLimit := deps.RateLimiter.Limit("render")
	readLimit := deps.RateLimiter.Limit("api_read")

	// Authentication
	router.POST("/api/v1/auth/signup", wrap(deps.AuthHandler.Signup))
	router.POST("/api/v1/auth/login", wrap(deps.AuthHandler.Login))
	router.POST("/api/v1/auth/refresh", wrap(deps.AuthHandler.Refresh))

	// Label composition and page rendering
	router.POST("/api/v1/labels", chain(deps.LabelHandler.Compose, renderLimit))
	router.POST("/api/v1/pages/preview", chain(deps.PageHandler.Preview, renderLimit))
	router.POST("/api/v1/pages/pdf", chain(deps.PageHandler.PDF, renderLimit))
	router.GET("/api/v1/presets", chain(deps.PageHandler.Presets, readLimit))

	// Saved templates
	router.GET("/api/v1/templates", chain(deps.TemplateHandler.List, readLimit))
	router.GET("/api/v1/templates/:template_id", chain(deps.TemplateHandler.Get, readLimit))
	router.POST("/api/v1/templates", chain(deps.TemplateHandler.Create, authMid.Handle))
	router.PATCH("/api/v1/templates/:template_id", chain(deps.TemplateHandler.Update, authMid.Handle))
	router.DELETE("/api/v1/templates/:template_id",
		chain(deps.TemplateHandler.Delete, authMid.Handle, requireRole("admin")))
	router.POST("/api/v1/templates/:template_id/pdf",
		chain(deps.TemplateHandler.PDF, authMid.Handle, renderLimit))

	// Render history
	router.GET("/api/v1/history", chain(deps.HistoryHandler.List, authMid.Handle))
	router.GET("/api/v1/history/stats", chain(deps.HistoryHandler.Stats, authMid.Handle))

	// Operational endpoints
	router.GET("/health", wrap(deps.HealthHandler.Check))
	router.GET("/metrics", wrap(deps.MetricsHandler.Export))

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		// Inject params into context
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}

func requireRole(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(apiContext.Claims).(*auth.Claims)
			if !ok {
				errors.WriteError(w, http.StatusForbidden, errors.ErrCodeForbidden, "Insufficient permissions", nil)
				return
			}

			allowed := false
			for _, role := range roles {
				if claims.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				errors.WriteError(w, http.StatusForbidden, errors.ErrCodeForbidden, "Insufficient permissions", nil)
				return
			}

			next(w, r)
		}
	}
}
