package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/livya/movie-blog/internal/tmdb"
)

type fakeFinder struct {
	searchCalls  int
	searchResult []tmdb.SearchResult
	searchErr    error

	detailsCalls  int
	detailsResult tmdb.Details
	detailsErr    error
}

func (f *fakeFinder) Search(ctx context.Context, query string) ([]tmdb.SearchResult, error) {
	f.searchCalls++
	return f.searchResult, f.searchErr
}

func (f *fakeFinder) Details(ctx context.Context, movieID int64) (tmdb.Details, error) {
	f.detailsCalls++
	return f.detailsResult, f.detailsErr
}

func doSearch(t *testing.T, h *MovieHandler, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/movies/search?q="+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Search(c); err != nil {
		t.Fatalf("Search: %v", err)
	}
	return rec
}

func TestSearchShortQuerySkipsUpstream(t *testing.T) {
	finder := &fakeFinder{}
	h := NewMovieHandler(finder, zerolog.Nop())

	for _, q := range []string{"", "ab", "%20%20a%20%20"} {
		rec := doSearch(t, h, q)
		if rec.Code != http.StatusOK {
			t.Errorf("q=%q: status = %d", q, rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != `{"results":[]}` {
			t.Errorf("q=%q: body = %s", q, body)
		}
	}
	if finder.searchCalls != 0 {
		t.Errorf("short queries must not reach upstream, got %d calls", finder.searchCalls)
	}
}

func TestSearchUpstreamErrorDegradesToEmpty(t *testing.T) {
	finder := &fakeFinder{searchErr: errors.New("upstream down")}
	h := NewMovieHandler(finder, zerolog.Nop())

	rec := doSearch(t, h, "interstellar")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"results":[]}` {
		t.Errorf("body = %s", body)
	}
}

func TestSearchReturnsResults(t *testing.T) {
	finder := &fakeFinder{searchResult: []tmdb.SearchResult{
		{ID: 157336, Title: "Interstellar", ReleaseDate: "2014-11-05", PosterPath: "/p.jpg"},
	}}
	h := NewMovieHandler(finder, zerolog.Nop())

	rec := doSearch(t, h, "interstellar")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"title":"Interstellar"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestDetailsInvalidID(t *testing.T) {
	finder := &fakeFinder{}
	h := NewMovieHandler(finder, zerolog.Nop())
	e := echo.New()

	for _, id := range []string{"abc", "-3", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)

		if err := h.Details(c); err != nil {
			t.Fatalf("Details: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("id=%q: status = %d, want 400", id, rec.Code)
		}
	}
	if finder.detailsCalls != 0 {
		t.Errorf("invalid ids must not reach upstream, got %d calls", finder.detailsCalls)
	}
}

func TestDetailsUpstreamError(t *testing.T) {
	finder := &fakeFinder{detailsErr: errors.New("timeout")}
	h := NewMovieHandler(finder, zerolog.Nop())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("157336")

	if err := h.Details(c); err != nil {
		t.Fatalf("Details: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "could not retrieve movie details") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestDetailsSuccess(t *testing.T) {
	finder := &fakeFinder{detailsResult: tmdb.Details{
		Overview: "A team travels through a wormhole.",
		Director: "Christopher Nolan",
		Cast:     []tmdb.CastMember{{Name: "A", Character: "a"}},
		Genres:   []tmdb.Genre{{ID: 12, Name: "Adventure"}},
	}}
	h := NewMovieHandler(finder, zerolog.Nop())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("157336")

	if err := h.Details(c); err != nil {
		t.Fatalf("Details: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"director":"Christopher Nolan"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
