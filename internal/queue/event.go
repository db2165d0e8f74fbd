// Package queue defines message payloads exchanged over the message broker.
package queue

// PostCreatedEvent is published when a blog post has been persisted.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type PostCreatedEvent struct {
	PostID     string `json:"post_id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	BannerURL  string `json:"banner_url,omitempty"`
	MovieTitle string `json:"movie_title,omitempty"`
	CreatedAt  string `json:"created_at"`
}
