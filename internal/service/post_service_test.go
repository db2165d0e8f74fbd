package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/livya/movie-blog/internal/model"
	"github.com/livya/movie-blog/internal/queue"
)

// ----- fakes -----

type fakePostStore struct {
	posts []model.Post
	err   error
}

func (f *fakePostStore) Create(ctx context.Context, p model.Post) error {
	if f.err != nil {
		return f.err
	}
	f.posts = append(f.posts, p)
	return nil
}

type fakeBannerStore struct {
	saved []string
	err   error
}

func (f *fakeBannerStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, name)
	return "http://store.local/blog-media/" + name, nil
}

type fakePageCache struct {
	invalidated []string
}

func (f *fakePageCache) Invalidate(ctx context.Context, routes ...string) error {
	f.invalidated = append(f.invalidated, routes...)
	return nil
}

func newTestService(store *fakePostStore, banners *fakeBannerStore, cache *fakePageCache,
	events *[]queue.PostCreatedEvent) *PostService {
	publish := func(ctx context.Context, ev queue.PostCreatedEvent) error {
		if events != nil {
			*events = append(*events, ev)
		}
		return nil
	}
	svc := NewPostService(store, banners, cache, publish, zerolog.Nop())
	svc.now = func() time.Time { return time.UnixMilli(1700000000000).UTC() }
	return svc
}

func validInput() CreatePostInput {
	return CreatePostInput{
		Title:   "An Analysis: Interstellar!",
		Content: strings.Repeat("An in-depth look at the cinematography. ", 3),
	}
}

// ----- validation -----

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CreatePostInput)
		wantField string
	}{
		{
			name:      "title too short",
			mutate:    func(in *CreatePostInput) { in.Title = "Hi" },
			wantField: "title",
		},
		{
			name:      "content too short",
			mutate:    func(in *CreatePostInput) { in.Content = "too short" },
			wantField: "content",
		},
		{
			name: "banner at size ceiling",
			mutate: func(in *CreatePostInput) {
				in.BannerReader = strings.NewReader("x")
				in.BannerFilename = "big.png"
				in.BannerSize = BannerMaxBytes
			},
			wantField: "banner",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakePostStore{}
			banners := &fakeBannerStore{}
			svc := newTestService(store, banners, &fakePageCache{}, nil)

			in := validInput()
			tt.mutate(&in)

			res := svc.Create(context.Background(), in)
			if res.OK() {
				t.Fatal("expected validation failure, got success")
			}
			if _, ok := res.FieldErrors[tt.wantField]; !ok {
				t.Errorf("expected error on field %q, got %v", tt.wantField, res.FieldErrors)
			}
			if len(store.posts) != 0 {
				t.Errorf("validation failure must not persist; got %d posts", len(store.posts))
			}
			if len(banners.saved) != 0 {
				t.Errorf("validation failure must not upload; got %d uploads", len(banners.saved))
			}
		})
	}
}

// ----- success paths -----

func TestCreateWithoutBannerOrMovie(t *testing.T) {
	store := &fakePostStore{}
	cache := &fakePageCache{}
	events := []queue.PostCreatedEvent{}
	svc := newTestService(store, &fakeBannerStore{}, cache, &events)

	res := svc.Create(context.Background(), validInput())
	if !res.OK() {
		t.Fatalf("expected success, got message %q errors %v", res.Message, res.FieldErrors)
	}
	if res.RedirectTo != "/blog/an-analysis-interstellar" {
		t.Errorf("redirect = %q, want /blog/an-analysis-interstellar", res.RedirectTo)
	}
	if len(store.posts) != 1 {
		t.Fatalf("expected exactly one persisted post, got %d", len(store.posts))
	}
	p := store.posts[0]
	if p.ID == "" {
		t.Error("post id not set")
	}
	if p.BannerURL != "" {
		t.Errorf("bannerUrl = %q, want empty", p.BannerURL)
	}
	if p.HasMovie() || p.MovieTitle != "" || p.MoviePosterURL != "" || p.MovieReleaseDate != "" {
		t.Errorf("movie fields must be unset, got %+v", p)
	}
	if p.CreatedAt != time.UnixMilli(1700000000000).UTC() {
		t.Errorf("createdAt = %v", p.CreatedAt)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "/blog" {
		t.Errorf("listing cache not invalidated: %v", cache.invalidated)
	}
	if len(events) != 1 || events[0].Slug != "an-analysis-interstellar" {
		t.Errorf("post.created event not published: %v", events)
	}
}

func TestCreateUploadsBannerUnderDerivedName(t *testing.T) {
	store := &fakePostStore{}
	banners := &fakeBannerStore{}
	svc := newTestService(store, banners, &fakePageCache{}, nil)

	in := validInput()
	in.BannerReader = strings.NewReader("fake image bytes")
	in.BannerFilename = "my photo.png"
	in.BannerSize = 16
	in.BannerContentType = "image/png"

	res := svc.Create(context.Background(), in)
	if !res.OK() {
		t.Fatalf("expected success, got %q", res.Message)
	}
	wantName := "blog-banners/1700000000000-my_photo.png"
	if len(banners.saved) != 1 || banners.saved[0] != wantName {
		t.Errorf("saved objects = %v, want [%s]", banners.saved, wantName)
	}
	if store.posts[0].BannerURL != "http://store.local/blog-media/"+wantName {
		t.Errorf("bannerUrl = %q", store.posts[0].BannerURL)
	}
}

func TestCreateCarriesMovieSnapshot(t *testing.T) {
	store := &fakePostStore{}
	svc := newTestService(store, &fakeBannerStore{}, &fakePageCache{}, nil)

	in := validInput()
	in.Movie = model.MovieSnapshot{
		APIID:       157336,
		Title:       "Interstellar",
		PosterURL:   "https://image.tmdb.org/t/p/w500/poster.jpg",
		ReleaseDate: "2014-11-05",
	}

	res := svc.Create(context.Background(), in)
	if !res.OK() {
		t.Fatalf("expected success, got %q", res.Message)
	}
	p := store.posts[0]
	if p.MovieAPIID != 157336 || p.MovieTitle != "Interstellar" ||
		p.MovieReleaseDate != "2014-11-05" || p.MoviePosterURL == "" {
		t.Errorf("movie snapshot not persisted: %+v", p)
	}
}

// Duplicate titles are allowed and share one slug.  This pins the documented
// behavior; changing it to enforce uniqueness is a deliberate decision, not
// an accident.
func TestDuplicateTitlesShareSlug(t *testing.T) {
	store := &fakePostStore{}
	svc := newTestService(store, &fakeBannerStore{}, &fakePageCache{}, nil)

	first := svc.Create(context.Background(), validInput())
	second := svc.Create(context.Background(), validInput())
	if !first.OK() || !second.OK() {
		t.Fatalf("both submissions must succeed: %q / %q", first.Message, second.Message)
	}
	if len(store.posts) != 2 {
		t.Fatalf("expected two documents, got %d", len(store.posts))
	}
	if store.posts[0].Slug != store.posts[1].Slug {
		t.Errorf("slugs differ: %q vs %q", store.posts[0].Slug, store.posts[1].Slug)
	}
	if store.posts[0].ID == store.posts[1].ID {
		t.Error("documents must have distinct ids")
	}
}

// ----- failure paths -----

func TestCreateUploadFailureAborts(t *testing.T) {
	store := &fakePostStore{}
	banners := &fakeBannerStore{err: errors.New("bucket unavailable")}
	svc := newTestService(store, banners, &fakePageCache{}, nil)

	in := validInput()
	in.BannerReader = strings.NewReader("bytes")
	in.BannerFilename = "b.png"
	in.BannerSize = 5

	res := svc.Create(context.Background(), in)
	if res.OK() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Message, "upload banner") {
		t.Errorf("message = %q, want storage error", res.Message)
	}
	if len(store.posts) != 0 {
		t.Errorf("upload failure must not persist; got %d posts", len(store.posts))
	}
}

func TestCreateInsertFailureLeavesOrphanedBanner(t *testing.T) {
	store := &fakePostStore{err: errors.New("connection refused")}
	banners := &fakeBannerStore{}
	cache := &fakePageCache{}
	svc := newTestService(store, banners, cache, nil)

	in := validInput()
	in.BannerReader = strings.NewReader("bytes")
	in.BannerFilename = "b.png"
	in.BannerSize = 5

	res := svc.Create(context.Background(), in)
	if res.OK() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Message, "create post") {
		t.Errorf("message = %q, want database error", res.Message)
	}
	// The blob stays behind; no compensating delete is attempted.
	if len(banners.saved) != 1 {
		t.Errorf("expected the uploaded blob to remain, saved = %v", banners.saved)
	}
	if len(cache.invalidated) != 0 {
		t.Errorf("cache must not be invalidated on failure: %v", cache.invalidated)
	}
}
