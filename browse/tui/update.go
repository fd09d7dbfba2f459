package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case PostsLoadedMsg:
		return m.handlePostsLoaded(msg)
	case PageLoadedMsg:
		return m.handlePageLoaded(msg)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Entries())-1 {
			m.Cursor++
		}
	case "enter", " ":
		if _, ok := m.Selected(); ok {
			m.Detail = !m.Detail
		}
	case "esc":
		m.Detail = false
	case "r":
		if m.Loading > 0 {
			return m, nil
		}
		m.State = StateLoading
		m.Err = nil
		m.Loading = 1 + len(m.slugs)
		return m, loadAll(m.source, m.slugs)
	}
	return m, nil
}

func (m Model) handlePostsLoaded(msg PostsLoadedMsg) (tea.Model, tea.Cmd) {
	m.Loading = max(m.Loading-1, 0)
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		m.Posts = nil
	} else {
		m.State = StateReady
		m.Err = nil
		m.Posts = msg.Posts
	}
	m.clampCursor()
	return m, nil
}

func (m Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	m.Loading = max(m.Loading-1, 0)

	entry := Entry{Slug: msg.Slug, Err: msg.Err}
	switch {
	case msg.Err != nil:
	case msg.Found:
		page := msg.Page
		entry.Page = &page
	default:
		entry.Missing = true
	}

	pages := make(map[string]Entry, len(m.Pages))
	for k, v := range m.Pages {
		pages[k] = v
	}
	pages[msg.Slug] = entry
	m.Pages = pages
	return m, nil
}

func (m *Model) clampCursor() {
	if n := len(m.Entries()); m.Cursor >= n {
		m.Cursor = max(n-1, 0)
	}
}
