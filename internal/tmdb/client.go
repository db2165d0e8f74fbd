// Package tmdb is a read-only client for the movie metadata HTTP API.  Two
// endpoints are consumed: title search and detail-by-id with credits.  The
// API key is carried as a query parameter; there is no other auth and no
// retry logic.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// MaxSearchResults caps how many candidates a search returns.
const MaxSearchResults = 5

// PosterBaseURL is where poster paths resolve to full images.
const PosterBaseURL = "https://image.tmdb.org/t/p/w500"

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client against the given API base URL.  The base URL is
// a parameter so tests can point the client at a local server.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchResult is one candidate movie from a title search.
type SearchResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// Search returns up to MaxSearchResults candidate movies for a partial
// title.  Callers are expected to guard against short queries themselves.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	u := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))

	var sr searchResponse
	if err := c.getJSON(ctx, u, &sr); err != nil {
		return nil, err
	}
	if len(sr.Results) > MaxSearchResults {
		sr.Results = sr.Results[:MaxSearchResults]
	}
	return sr.Results, nil
}

// CastMember is one entry of a movie's (truncated) cast list.
type CastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// Genre is a movie genre as reported by the API.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Details holds the subset of movie detail used by the info overlay.
type Details struct {
	Overview string       `json:"overview"`
	Cast     []CastMember `json:"cast"`
	Director string       `json:"director"`
	Genres   []Genre      `json:"genres"`
}

type detailsResponse struct {
	Overview string  `json:"overview"`
	Genres   []Genre `json:"genres"`
	Credits  struct {
		Cast []CastMember `json:"cast"`
		Crew []struct {
			Job  string `json:"job"`
			Name string `json:"name"`
		} `json:"crew"`
	} `json:"credits"`
}

// Details fetches synopsis, the first six cast members, the director (first
// crew member whose job is "Director", or "N/A" when none) and the genre
// list for one movie.
func (c *Client) Details(ctx context.Context, movieID int64) (Details, error) {
	u := fmt.Sprintf("%s/movie/%d?api_key=%s&append_to_response=credits",
		c.baseURL, movieID, url.QueryEscape(c.apiKey))

	var dr detailsResponse
	if err := c.getJSON(ctx, u, &dr); err != nil {
		return Details{}, err
	}

	director := "N/A"
	for _, person := range dr.Credits.Crew {
		if person.Job == "Director" {
			director = person.Name
			break
		}
	}
	cast := dr.Credits.Cast
	if len(cast) > 6 {
		cast = cast[:6]
	}
	if cast == nil {
		cast = []CastMember{}
	}
	genres := dr.Genres
	if genres == nil {
		genres = []Genre{}
	}
	return Details{
		Overview: dr.Overview,
		Cast:     cast,
		Director: director,
		Genres:   genres,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("movie api: unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
