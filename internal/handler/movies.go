package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/livya/movie-blog/internal/tmdb"
)

// minSearchLen guards the upstream API against per-keystroke noise; the
// widget applies the same limit client-side.
const minSearchLen = 3

// MovieFinder is the movie metadata dependency of the proxy endpoints.
type MovieFinder interface {
	Search(ctx context.Context, query string) ([]tmdb.SearchResult, error)
	Details(ctx context.Context, movieID int64) (tmdb.Details, error)
}

// MovieHandler proxies the movie metadata API for the browser widgets so
// the API key never leaves the server.
type MovieHandler struct {
	Movies MovieFinder
	Log    zerolog.Logger
}

func NewMovieHandler(movies MovieFinder, log zerolog.Logger) *MovieHandler {
	return &MovieHandler{Movies: movies, Log: log}
}

// Search returns up to five candidate movies for a partial title.  Queries
// shorter than three characters return an empty list without an upstream
// call, and upstream failures degrade to an empty list as well — the search
// box treats both the same way.
func (h *MovieHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if utf8.RuneCountInString(q) < minSearchLen {
		return c.JSON(http.StatusOK, echo.Map{"results": []tmdb.SearchResult{}})
	}

	results, err := h.Movies.Search(c.Request().Context(), q)
	if err != nil {
		h.Log.Warn().Err(err).Str("query", q).Msg("movie search failed")
		results = []tmdb.SearchResult{}
	}
	if results == nil {
		results = []tmdb.SearchResult{}
	}
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}

// Details returns the synopsis, truncated cast, director and genres for one
// movie.  Unlike search, failures here surface as an error so the overlay
// can close instead of showing an empty card.
func (h *MovieHandler) Details(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	details, err := h.Movies.Details(c.Request().Context(), id)
	if err != nil {
		h.Log.Warn().Err(err).Int64("movie_id", id).Msg("movie details failed")
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "could not retrieve movie details"})
	}
	return c.JSON(http.StatusOK, details)
}
