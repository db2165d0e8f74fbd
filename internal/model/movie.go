package model

// MovieSnapshot is the denormalized copy of external movie metadata that a
// post carries.  It is filled from a search result the author picked in the
// creation form and never refreshed afterwards.
type MovieSnapshot struct {
	APIID       int64  // external movie database id
	Title       string // movie title at selection time
	PosterURL   string // full poster URL at selection time
	ReleaseDate string // release date, YYYY-MM-DD
}
