package types

import "time"

// Post is a blog list-item summary as published by the content graph.
type Post struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	PublishedAt time.Time   `json:"published_at"`
	CoverImage  *CoverImage `json:"cover_image,omitempty"`
}

// CoverImage points at a post's cover art.
type CoverImage struct {
	URL string `json:"url"`
}

// HasCover reports whether the post carries cover art.
func (p Post) HasCover() bool {
	return p.CoverImage != nil && p.CoverImage.URL != ""
}

// Page is a static content document addressed by slug.
type Page struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	ContentHTML string `json:"content_html"`
	Description string `json:"description,omitempty"`
}

// Snapshot is the exported document of a publication's posts and pages.
type Snapshot struct {
	Host        string         `json:"host"`
	GeneratedAt time.Time      `json:"generated_at"`
	Posts       []Post         `json:"posts"`
	Pages       []SnapshotPage `json:"pages"`
	Missing     []string       `json:"missing_pages,omitempty"`
}

// SnapshotPage is a page as stored in a snapshot, images removed and a
// plain text rendering added.
type SnapshotPage struct {
	Page
	ContentText string `json:"content_text,omitempty"`
}
