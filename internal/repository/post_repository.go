package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/livya/movie-blog/internal/model"
)

// PostRepo is the query layer over the posts table.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

const postColumns = "id, title, slug, content, banner_url, movie_api_id, movie_title, movie_poster_url, movie_release_date, created_at"

// Create inserts a post row.  The movie columns are written as NULL when no
// snapshot is attached.  There is deliberately no uniqueness check on the
// slug; two posts created from the same title will share one.
func (r *PostRepo) Create(ctx context.Context, p model.Post) error {
	var (
		apiID   any
		title   any
		poster  any
		release any
	)
	if p.MovieAPIID != 0 {
		apiID = p.MovieAPIID
	}
	if p.MovieTitle != "" {
		title = p.MovieTitle
	}
	if p.MoviePosterURL != "" {
		poster = p.MoviePosterURL
	}
	if p.MovieReleaseDate != "" {
		release = p.MovieReleaseDate
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (id, title, slug, content, banner_url, movie_api_id, movie_title, movie_poster_url, movie_release_date, created_at) VALUES (?,?,?,?,?,?,?,?,?,?)",
		p.ID, p.Title, p.Slug, p.Content, p.BannerURL, apiID, title, poster, release, p.CreatedAt)
	return err
}

// BySlug fetches the post whose slug equals the input.  Returns
// ErrPostNotFound when nothing matches; other errors indicate a backend
// failure and are passed through unchanged.  When duplicate slugs exist the
// LIMIT 1 picks an arbitrary one.
func (r *PostRepo) BySlug(ctx context.Context, slug string) (model.Post, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE slug=? LIMIT 1", slug)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Post{}, ErrPostNotFound
	}
	return p, err
}

// All returns every post ordered by creation time descending.  An empty
// table yields an empty slice, not an error.
func (r *PostRepo) All(ctx context.Context) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+postColumns+" FROM posts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanPost(row rowScanner) (model.Post, error) {
	var (
		p       model.Post
		apiID   sql.NullInt64
		title   sql.NullString
		poster  sql.NullString
		release sql.NullString
	)
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.BannerURL,
		&apiID, &title, &poster, &release, &p.CreatedAt)
	if err != nil {
		return model.Post{}, err
	}
	p.MovieAPIID = apiID.Int64
	p.MovieTitle = title.String
	p.MoviePosterURL = poster.String
	p.MovieReleaseDate = release.String
	return p, nil
}
