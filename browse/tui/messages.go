package tui

import "folio/types"

// PostsLoadedMsg carries the result of a post listing.
type PostsLoadedMsg struct {
	Posts []types.Post
	Err   error
}

// PageLoadedMsg carries the result of one page lookup.
type PageLoadedMsg struct {
	Slug  string
	Page  types.Page
	Found bool
	Err   error
}
