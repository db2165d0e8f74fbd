package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/livya/movie-blog/internal/model"
	"github.com/livya/movie-blog/internal/repository"
	"github.com/livya/movie-blog/internal/service"
)

// PostReader is the read side of the post repository.
type PostReader interface {
	BySlug(ctx context.Context, slug string) (model.Post, error)
	All(ctx context.Context) ([]model.Post, error)
}

// BlogHandler renders the blog pages and drives the creation workflow.
type BlogHandler struct {
	Posts  PostReader
	Svc    *service.PostService
	Author string // display name shown in the author block
	Log    zerolog.Logger
}

func NewBlogHandler(posts PostReader, svc *service.PostService, author string, log zerolog.Logger) *BlogHandler {
	return &BlogHandler{Posts: posts, Svc: svc, Author: author, Log: log}
}

// indexPageData feeds the listing template.
type indexPageData struct {
	Posts  []model.Post
	Author string
}

// showPageData feeds the single-post template.
type showPageData struct {
	Post   model.Post
	Author string
}

// createPageData feeds the creation form template.  On a failed submission
// the entered values ride along so the author does not lose their draft.
type createPageData struct {
	Errors  map[string]string
	Message string

	Title            string
	Content          string
	MovieAPIID       int64
	MovieTitle       string
	MoviePosterURL   string
	MovieReleaseDate string
}

// Home redirects the root to the blog listing.
func (h *BlogHandler) Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/blog")
}

// Index renders the post listing, newest first.  A backend failure is
// logged and the page falls back to its empty state so readers never see a
// raw database error.
func (h *BlogHandler) Index(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	posts, err := h.Posts.All(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("fetch all posts failed")
		posts = []model.Post{}
	}
	return c.Render(http.StatusOK, "blog_index", indexPageData{Posts: posts, Author: h.Author})
}

// Show renders a single post addressed by slug.
func (h *BlogHandler) Show(c echo.Context) error {
	slug := c.Param("slug")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	post, err := h.Posts.BySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.Render(http.StatusNotFound, "error", echo.Map{"Message": "Post not found."})
		}
		h.Log.Error().Err(err).Str("slug", slug).Msg("fetch post by slug failed")
		return c.Render(http.StatusInternalServerError, "error", echo.Map{"Message": "Something went wrong. Please try again later."})
	}
	return c.Render(http.StatusOK, "blog_show", showPageData{Post: post, Author: h.Author})
}

// CreateForm renders an empty creation form.
func (h *BlogHandler) CreateForm(c echo.Context) error {
	return c.Render(http.StatusOK, "blog_create", createPageData{})
}

// Create handles the multipart form submission.  Validation failures
// re-render the form with field errors and no side effects; success
// redirects to the new post's address.
func (h *BlogHandler) Create(c echo.Context) error {
	in := service.CreatePostInput{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
		Movie:   movieSnapshotFromForm(c),
	}

	if fh, err := c.FormFile("banner"); err == nil && fh != nil && fh.Size > 0 {
		f, err := fh.Open()
		if err != nil {
			h.Log.Error().Err(err).Msg("open uploaded banner failed")
			return c.Render(http.StatusInternalServerError, "blog_create",
				h.failedPage(in, service.CreatePostResult{Message: "Storage error: failed to upload banner image."}))
		}
		defer f.Close()
		in.BannerReader = f
		in.BannerFilename = fh.Filename
		in.BannerSize = fh.Size
		in.BannerContentType = fh.Header.Get("Content-Type")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	res := h.Svc.Create(ctx, in)
	if res.OK() {
		return c.Redirect(http.StatusSeeOther, res.RedirectTo)
	}

	status := http.StatusInternalServerError
	if len(res.FieldErrors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	return c.Render(status, "blog_create", h.failedPage(in, res))
}

// failedPage rebuilds the form data after a failed submission.
func (h *BlogHandler) failedPage(in service.CreatePostInput, res service.CreatePostResult) createPageData {
	return createPageData{
		Errors:           res.FieldErrors,
		Message:          res.Message,
		Title:            in.Title,
		Content:          in.Content,
		MovieAPIID:       in.Movie.APIID,
		MovieTitle:       in.Movie.Title,
		MoviePosterURL:   in.Movie.PosterURL,
		MovieReleaseDate: in.Movie.ReleaseDate,
	}
}

// movieSnapshotFromForm reads the hidden movie fields.  An absent or
// unparsable id means no movie is linked and the other fields are ignored.
func movieSnapshotFromForm(c echo.Context) model.MovieSnapshot {
	raw := strings.TrimSpace(c.FormValue("movieApiId"))
	if raw == "" {
		return model.MovieSnapshot{}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return model.MovieSnapshot{}
	}
	return model.MovieSnapshot{
		APIID:       id,
		Title:       c.FormValue("movieTitle"),
		PosterURL:   c.FormValue("moviePosterUrl"),
		ReleaseDate: c.FormValue("movieReleaseDate"),
	}
}
