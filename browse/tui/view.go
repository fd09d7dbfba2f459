package tui

import (
	"fmt"
	"strings"
)

const excerptLength = 280

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("📚 " + m.source.Host()))
	b.WriteString("\n")

	switch {
	case m.State == StateLoading:
		b.WriteString(InfoStyle.Render("⏳ Loading content..."))
		b.WriteString("\n\n")
	case m.State == StateError && m.Err != nil:
		b.WriteString(ErrorStyle.Render("❌ " + m.Err.Error()))
		b.WriteString("\n\n")
	}

	entries := m.Entries()
	postCount := len(m.Posts)

	if postCount > 0 || m.State == StateReady {
		b.WriteString(SectionStyle.Render(fmt.Sprintf("Recent posts (%d)", postCount)))
		b.WriteString("\n")
	}
	for i, e := range entries {
		if i == postCount && len(m.slugs) > 0 {
			b.WriteString("\n")
			b.WriteString(SectionStyle.Render("Pages"))
			b.WriteString("\n")
		}
		line := entryLine(e)
		if i == m.Cursor {
			b.WriteString(SelectedStyle.Render(line))
		} else {
			b.WriteString(ItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.Detail {
		if e, ok := m.Selected(); ok {
			b.WriteString("\n")
			b.WriteString(BoxStyle.Render(detail(e)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("↑/↓ move • enter details • r reload • q quit"))
	return b.String()
}

func entryLine(e Entry) string {
	switch {
	case e.Post != nil:
		return fmt.Sprintf("%s  %s", e.Post.PublishedAt.Format("2006-01-02"), e.Post.Title)
	case e.Err != nil:
		return fmt.Sprintf("/%s  (failed to load)", e.Slug)
	case e.Missing:
		return fmt.Sprintf("/%s  (not found)", e.Slug)
	case e.Page != nil:
		return fmt.Sprintf("/%s  %s", e.Slug, e.Page.Title)
	default:
		return fmt.Sprintf("/%s  …", e.Slug)
	}
}

func detail(e Entry) string {
	var b strings.Builder
	switch {
	case e.Post != nil:
		p := e.Post
		b.WriteString(fmt.Sprintf("Title:     %s\n", p.Title))
		b.WriteString(fmt.Sprintf("Slug:      %s\n", p.Slug))
		b.WriteString(fmt.Sprintf("Published: %s\n", p.PublishedAt.Format("Jan 2, 2006 15:04 MST")))
		if p.HasCover() {
			b.WriteString(fmt.Sprintf("Cover:     %s\n", p.CoverImage.URL))
		}
		b.WriteString(fmt.Sprintf("ID:        %s", p.ID))
	case e.Page != nil:
		p := e.Page
		b.WriteString(fmt.Sprintf("Title: %s\n", p.Title))
		if p.Description != "" {
			b.WriteString(fmt.Sprintf("About: %s\n", p.Description))
		}
		b.WriteString("\n")
		b.WriteString(excerpt(stripTags(p.ContentHTML), excerptLength))
	case e.Err != nil:
		b.WriteString(ErrorStyle.Render(e.Err.Error()))
	case e.Missing:
		b.WriteString(fmt.Sprintf("The publication has no page %q.", e.Slug))
	default:
		b.WriteString("Still loading.")
	}
	return b.String()
}
