package router // package router defines how HTTP routes are registered for the application

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/livya/movie-blog/internal/handler"    // import the handlers that implement page and API logic
	"github.com/livya/movie-blog/internal/middleware" // import middleware for caching, rate limiting and JWT auth
)

// RegisterRoutes registers routes that do not belong to any feature group:
// the health check and the static assets (editor and search-widget scripts).
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.Static("/static", "web/static")
}

// RegisterBlog registers the server-rendered blog pages.  The cache
// middleware wraps only the GET pages; the creation routes optionally sit
// behind JWT auth when the deployment restricts publishing to authors.
func RegisterBlog(e *echo.Echo, b *handler.BlogHandler, cache echo.MiddlewareFunc, jwtSecret string, authorOnly bool) {
	e.GET("/", b.Home)
	e.GET("/blog", b.Index, cache)
	e.GET("/blog/create", b.CreateForm)

	if authorOnly {
		create := e.Group("/blog/create", middleware.JWTAuth(jwtSecret), middleware.RequireRole("AUTHOR"))
		create.POST("", b.Create)
	} else {
		e.POST("/blog/create", b.Create)
	}

	// Registered after /blog/create on purpose: Echo matches static
	// segments before the :slug parameter, so the form stays reachable.
	e.GET("/blog/:slug", b.Show, cache)
}

// RegisterMovies registers the movie metadata proxy used by the search
// combo box and the info overlay.  Both routes are rate limited since every
// keystroke past the guard can become an upstream call.
func RegisterMovies(e *echo.Echo, m *handler.MovieHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/api/movies", limit)
	g.GET("/search", m.Search)
	g.GET("/:id", m.Details)
}

// RegisterAuth registers the author-account endpoints.  Unauthenticated
// operations live under /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("AUTHOR", "READER"))
	auth.GET("/me", a.Me)
}
