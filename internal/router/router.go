// Package router wires handlers, auth middleware and the response cache
// onto the Echo instance. Versioned endpoints live under /v1.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ravshanbek/catalog-api/internal/config"
	"github.com/ravshanbek/catalog-api/internal/handler"
	"github.com/ravshanbek/catalog-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the /v1/auth endpoints. Login is open; me runs
// behind the access-token middleware, while refresh and logout validate a
// bearer refresh token (they identify a session, not a user).
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, auth config.Auth) {
	g := e.Group("/v1/auth")
	g.POST("/email/login", a.Login)
	g.GET("/me", a.Me, middleware.JWTAuth(auth.Secret))
	g.POST("/refresh", a.Refresh, middleware.RefreshAuth(auth.RefreshSecret))
	g.POST("/logout", a.Logout, middleware.RefreshAuth(auth.RefreshSecret))
}

// RegisterUsers registers the admin-only user creation endpoint.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, auth config.Auth) {
	g := e.Group("/v1/users")
	g.Use(middleware.JWTAuth(auth.Secret))
	g.Use(middleware.RequireRole("admin"))
	g.POST("", u.Create)
}

// RegisterCatalog registers the category CRUD and the file presign
// endpoint; all of them require a valid access token. The category listing
// additionally runs behind the redis response cache when rdb is non-nil.
func RegisterCatalog(e *echo.Echo, ch *handler.CategoryHandler, fh *handler.FileHandler,
	auth config.Auth, cacheCfg config.CacheConfig, rdb *redis.Client) {

	g := e.Group("/v1/categories")
	g.Use(middleware.JWTAuth(auth.Secret))
	g.POST("", ch.Create)
	g.GET("", ch.List, middleware.ResponseCache(cacheCfg, rdb))
	g.GET("/:id", ch.Get)
	g.PATCH("/:id", ch.Update)
	g.DELETE("/:id", ch.Delete)

	f := e.Group("/v1/files")
	f.Use(middleware.JWTAuth(auth.Secret))
	f.POST("/presign", fh.Presign)
}
