package main // Entry point package

import (
	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/livya/movie-blog/internal/config"
	"github.com/livya/movie-blog/internal/database"
	"github.com/livya/movie-blog/internal/handler"
	"github.com/livya/movie-blog/internal/logger"
	"github.com/livya/movie-blog/internal/middleware"
	"github.com/livya/movie-blog/internal/queue"
	"github.com/livya/movie-blog/internal/repository"
	"github.com/livya/movie-blog/internal/router"
	"github.com/livya/movie-blog/internal/service"
	"github.com/livya/movie-blog/internal/storage"
	"github.com/livya/movie-blog/internal/tmdb"
	"github.com/livya/movie-blog/internal/view"
)

func main() {
	_ = godotenv.Load() // missing .env is fine in containers
	cfg := config.Load()
	log := logger.New(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	if err := database.Migrate(db, "migrations", cfg.DBName); err != nil {
		log.Fatal().Err(err).Msg("database migrate failed")
	}

	// Redis is optional: a nil client disables page caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable; page cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	banners, err := storage.New(cfg.StorageEndpoint, cfg.StorageAccessKey, cfg.StorageSecretKey,
		cfg.StorageBucket, cfg.StorageUseSSL, cfg.StoragePublicURL)
	if err != nil {
		log.Fatal().Err(err).Msg("object store connect failed")
	}
	movies := tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey)

	posts := repository.NewPostRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	pageCache := middleware.NewPageInvalidator(cacheCfg, rdb)
	svc := service.NewPostService(posts, banners, pageCache, service.PublishPostCreated, log)

	// Background consumer for post.created events; runs a reconnect loop.
	go func() {
		if err := queue.StartPostConsumer(); err != nil {
			log.Error().Err(err).Msg("post consumer stopped")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	renderer, err := view.New("web/templates")
	if err != nil {
		log.Fatal().Err(err).Msg("template parse failed")
	}
	e.Renderer = renderer

	cacheMW := middleware.NewRedisCache(cacheCfg, rdb)
	rateMW := middleware.NewTokenBucket(rateCfg, rdb)

	blog := handler.NewBlogHandler(posts, svc, cfg.SiteAuthor, log)
	movie := handler.NewMovieHandler(movies, log)
	auth := handler.NewAuthHandler(cfg, users, tokens)

	router.RegisterRoutes(e)
	router.RegisterBlog(e, blog, cacheMW, cfg.JWTSecret, cfg.AuthorOnly)
	router.RegisterMovies(e, movie, rateMW)
	router.RegisterAuth(e, auth, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
