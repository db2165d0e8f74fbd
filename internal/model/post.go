package model

import "time"

// Post represents a single blog entry.  Posts are created once and then
// only read; there is no update or delete path.  The movie fields are a
// denormalized snapshot taken at creation time, not a reference into the
// movie metadata API.
//
// Fields:
//
//	ID               – primary key, a UUID string (document-style id).
//	Title            – post title as entered by the author.
//	Slug             – URL-safe identifier derived from the title.  Not
//	                   unique: two posts with the same title share a slug.
//	Content          – post body as HTML produced by the editor.
//	BannerURL        – public URL of the banner image, empty when none.
//	MovieAPIID       – external movie id; 0 means no movie is linked.
//	MovieTitle       – snapshot of the linked movie's title.
//	MoviePosterURL   – snapshot of the linked movie's poster URL.
//	MovieReleaseDate – snapshot of the linked movie's release date (YYYY-MM-DD).
//	CreatedAt        – creation timestamp (UTC).
type Post struct {
	ID               string    // posts.id
	Title            string    // posts.title
	Slug             string    // posts.slug
	Content          string    // posts.content
	BannerURL        string    // posts.banner_url
	MovieAPIID       int64     // posts.movie_api_id (NULL -> 0)
	MovieTitle       string    // posts.movie_title
	MoviePosterURL   string    // posts.movie_poster_url
	MovieReleaseDate string    // posts.movie_release_date
	CreatedAt        time.Time // posts.created_at
}

// HasMovie reports whether a movie snapshot is attached.
func (p Post) HasMovie() bool { return p.MovieAPIID != 0 }
