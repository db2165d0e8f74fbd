package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchCapsResults(t *testing.T) {
	var gotPath, gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotKey = r.URL.Query().Get("api_key")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[`)
		for i := 0; i < 8; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"id":%d,"title":"Movie %d","release_date":"2014-11-05","poster_path":"/p%d.jpg"}`, i+1, i+1, i+1)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	results, err := c.Search(context.Background(), "inter stellar")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotPath != "/search/movie" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "inter stellar" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotKey != "test-key" {
		t.Errorf("api_key = %q", gotKey)
	}
	if len(results) != MaxSearchResults {
		t.Fatalf("got %d results, want %d", len(results), MaxSearchResults)
	}
	if results[0].ID != 1 || results[0].Title != "Movie 1" {
		t.Errorf("first result = %+v", results[0])
	}
}

func TestSearchFewResultsPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"id":42,"title":"Solo Hit","release_date":"1999-01-01","poster_path":"/x.jpg"}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	results, err := c.Search(context.Background(), "solo")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != 42 {
		t.Errorf("results = %+v", results)
	}
}

func TestDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/157336" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("append_to_response"); got != "credits" {
			t.Errorf("append_to_response = %q", got)
		}
		fmt.Fprint(w, `{
			"overview":"A team travels through a wormhole.",
			"genres":[{"id":12,"name":"Adventure"},{"id":18,"name":"Drama"}],
			"credits":{
				"cast":[
					{"name":"A","character":"a"},{"name":"B","character":"b"},
					{"name":"C","character":"c"},{"name":"D","character":"d"},
					{"name":"E","character":"e"},{"name":"F","character":"f"},
					{"name":"G","character":"g"},{"name":"H","character":"h"}
				],
				"crew":[
					{"job":"Producer","name":"Emma Thomas"},
					{"job":"Director","name":"Christopher Nolan"},
					{"job":"Director","name":"Someone Else"}
				]
			}
		}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	d, err := c.Details(context.Background(), 157336)
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if d.Director != "Christopher Nolan" {
		t.Errorf("director = %q, want first crew member with the director job", d.Director)
	}
	if len(d.Cast) != 6 {
		t.Errorf("cast length = %d, want 6", len(d.Cast))
	}
	if d.Overview == "" || len(d.Genres) != 2 {
		t.Errorf("details = %+v", d)
	}
}

func TestDetailsNoDirector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"overview":"","credits":{"cast":[],"crew":[{"job":"Writer","name":"W"}]}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	d, err := c.Details(context.Background(), 7)
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if d.Director != "N/A" {
		t.Errorf("director = %q, want N/A", d.Director)
	}
	if d.Cast == nil || d.Genres == nil {
		t.Error("cast and genres must be non-nil empty slices")
	}
}

func TestUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad")
	if _, err := c.Search(context.Background(), "anything"); err == nil {
		t.Error("Search: expected error on non-200 status")
	}
	if _, err := c.Details(context.Background(), 1); err == nil {
		t.Error("Details: expected error on non-200 status")
	}
}
