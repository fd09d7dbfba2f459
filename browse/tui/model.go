// Package tui is a terminal browser for a publication's posts and pages.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"folio/types"
)

// Source is the content the browser reads.
type Source interface {
	Host() string
	ListRecentPosts(ctx context.Context) ([]types.Post, error)
	GetPageBySlug(ctx context.Context, slug string) (types.Page, bool, error)
}

// State of the post listing.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Entry is one selectable line: either a post or a page slot.
type Entry struct {
	Post *types.Post
	Slug string
	Page *types.Page

	// Missing is set once a page lookup reported no such page.
	Missing bool
	Err     error
}

// Model is the browser state.
type Model struct {
	source Source
	slugs  []string

	State   State
	Posts   []types.Post
	Pages   map[string]Entry
	Cursor  int
	Detail  bool
	Err     error
	Loading int
}

// NewModel creates a browser over src that also shows the given page slugs.
func NewModel(src Source, slugs []string) Model {
	pages := make(map[string]Entry, len(slugs))
	for _, s := range slugs {
		pages[s] = Entry{Slug: s}
	}
	return Model{
		source:  src,
		slugs:   slugs,
		State:   StateLoading,
		Pages:   pages,
		Loading: 1 + len(slugs),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return loadAll(m.source, m.slugs)
}

// Entries lists posts first, then page slots in the configured order.
func (m Model) Entries() []Entry {
	out := make([]Entry, 0, len(m.Posts)+len(m.slugs))
	for i := range m.Posts {
		out = append(out, Entry{Post: &m.Posts[i]})
	}
	for _, s := range m.slugs {
		out = append(out, m.Pages[s])
	}
	return out
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (Entry, bool) {
	entries := m.Entries()
	if m.Cursor < 0 || m.Cursor >= len(entries) {
		return Entry{}, false
	}
	return entries[m.Cursor], true
}
