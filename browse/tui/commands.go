package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const fetchTimeout = 15 * time.Second

func loadPosts(src Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		posts, err := src.ListRecentPosts(ctx)
		return PostsLoadedMsg{Posts: posts, Err: err}
	}
}

func loadPage(src Source, slug string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		page, ok, err := src.GetPageBySlug(ctx, slug)
		return PageLoadedMsg{Slug: slug, Page: page, Found: ok, Err: err}
	}
}

func loadAll(src Source, slugs []string) tea.Cmd {
	cmds := []tea.Cmd{loadPosts(src)}
	for _, slug := range slugs {
		cmds = append(cmds, loadPage(src, slug))
	}
	return tea.Batch(cmds...)
}
