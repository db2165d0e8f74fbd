package service

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/livya/movie-blog/internal/model"
	"github.com/livya/movie-blog/internal/queue"
	"github.com/livya/movie-blog/internal/utils"
)

// Validation limits for the creation form.
const (
	TitleMinLen    = 3
	ContentMinLen  = 50
	BannerMaxBytes = 4 * 1024 * 1024 // 4 MiB ceiling, exclusive
)

// bannerPrefix is the object-name prefix under which banners are stored.
const bannerPrefix = "blog-banners"

// PostStore is the persistence dependency of the workflow.
type PostStore interface {
	Create(ctx context.Context, p model.Post) error
}

// BannerStore saves a buffer and returns its public URL.
type BannerStore interface {
	Save(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
}

// PageCache invalidates cached renderings of the given page routes.
type PageCache interface {
	Invalidate(ctx context.Context, routes ...string) error
}

// PostService runs the create-post workflow: validate the submitted fields,
// optionally upload the banner, derive the slug, persist the document, drop
// the cached listing page and hand back the redirect target.
type PostService struct {
	Posts   PostStore
	Banners BannerStore
	Cache   PageCache                                          // nil disables invalidation
	Publish func(ctx context.Context, ev queue.PostCreatedEvent) error // nil disables events
	Log     zerolog.Logger

	now func() time.Time
}

func NewPostService(posts PostStore, banners BannerStore, cache PageCache,
	publish func(ctx context.Context, ev queue.PostCreatedEvent) error, log zerolog.Logger) *PostService {
	return &PostService{
		Posts:   posts,
		Banners: banners,
		Cache:   cache,
		Publish: publish,
		Log:     log,
		now:     time.Now,
	}
}

// CreatePostInput is the raw form submission.  Banner fields are only
// meaningful when BannerReader is non-nil.
type CreatePostInput struct {
	Title   string
	Content string

	BannerReader      io.Reader
	BannerFilename    string
	BannerSize        int64
	BannerContentType string

	Movie model.MovieSnapshot // zero value means no movie linked
}

// CreatePostResult reports the outcome of one submission.  Exactly one of
// RedirectTo (success) or Message (failure) is set; FieldErrors accompanies
// the validation-failure message.
type CreatePostResult struct {
	FieldErrors map[string]string
	Message     string
	RedirectTo  string
	Post        model.Post
}

// OK reports whether the submission succeeded.
func (r CreatePostResult) OK() bool { return r.RedirectTo != "" }

// Create runs the workflow.  Validation failures abort before any side
// effect; an upload failure aborts before the insert; an insert failure
// after a successful upload leaves the blob orphaned (accepted limitation,
// no compensation is attempted).
func (s *PostService) Create(ctx context.Context, in CreatePostInput) CreatePostResult {
	if errs := validate(in); len(errs) > 0 {
		return CreatePostResult{
			FieldErrors: errs,
			Message:     "Missing or invalid fields. Failed to create post.",
		}
	}

	bannerURL := ""
	if in.BannerReader != nil {
		name := fmt.Sprintf("%s/%d-%s", bannerPrefix, s.now().UnixMilli(), utils.SanitizeFilename(in.BannerFilename))
		url, err := s.Banners.Save(ctx, name, in.BannerReader, in.BannerSize, in.BannerContentType)
		if err != nil {
			s.Log.Error().Err(err).Str("object", name).Msg("banner upload failed")
			return CreatePostResult{Message: "Storage error: failed to upload banner image."}
		}
		bannerURL = url
	}

	slug := utils.Slugify(in.Title)
	post := model.Post{
		ID:               uuid.NewString(),
		Title:            in.Title,
		Slug:             slug,
		Content:          in.Content,
		BannerURL:        bannerURL,
		MovieAPIID:       in.Movie.APIID,
		MovieTitle:       in.Movie.Title,
		MoviePosterURL:   in.Movie.PosterURL,
		MovieReleaseDate: in.Movie.ReleaseDate,
		CreatedAt:        s.now().UTC(),
	}

	if err := s.Posts.Create(ctx, post); err != nil {
		s.Log.Error().Err(err).Str("slug", slug).Msg("post insert failed")
		return CreatePostResult{Message: "Database error: failed to create post."}
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, "/blog"); err != nil {
			s.Log.Warn().Err(err).Msg("listing cache invalidation failed")
		}
	}
	if s.Publish != nil {
		ev := queue.PostCreatedEvent{
			PostID:     post.ID,
			Title:      post.Title,
			Slug:       post.Slug,
			BannerURL:  post.BannerURL,
			MovieTitle: post.MovieTitle,
			CreatedAt:  post.CreatedAt.Format(time.RFC3339),
		}
		if err := s.Publish(ctx, ev); err != nil {
			s.Log.Warn().Err(err).Msg("post.created publish failed")
		}
	}

	return CreatePostResult{RedirectTo: "/blog/" + slug, Post: post}
}

func validate(in CreatePostInput) map[string]string {
	errs := map[string]string{}
	if utf8.RuneCountInString(in.Title) < TitleMinLen {
		errs["title"] = fmt.Sprintf("Title must be at least %d characters long.", TitleMinLen)
	}
	if utf8.RuneCountInString(in.Content) < ContentMinLen {
		errs["content"] = fmt.Sprintf("Content must be at least %d characters long.", ContentMinLen)
	}
	if in.BannerReader != nil && in.BannerSize >= BannerMaxBytes {
		errs["banner"] = "Max image size is 4MB."
	}
	return errs
}
