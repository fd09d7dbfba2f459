package content

import (
	"fmt"
	"strings"
	"time"

	"folio/types"
)

type recentPostsData struct {
	Publication *struct {
		Posts *struct {
			Edges []postEdge `json:"edges"`
		} `json:"posts"`
	} `json:"publication"`
}

type postEdge struct {
	Node *postNode `json:"node"`
}

type postNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	PublishedAt string `json:"publishedAt"`
	CoverImage  *struct {
		URL string `json:"url"`
	} `json:"coverImage"`
}

type pageBySlugData struct {
	Publication *struct {
		StaticPage *pageNode `json:"staticPage"`
	} `json:"publication"`
}

type pageNode struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content *struct {
		HTML string `json:"html"`
	} `json:"content"`
	SEO *struct {
		Description *string `json:"description"`
	} `json:"seo"`
}

// posts flattens publication.posts.edges[].node in edge order. A missing
// publication yields an empty result.
func (d recentPostsData) posts() ([]types.Post, error) {
	if d.Publication == nil {
		return []types.Post{}, nil
	}
	if d.Publication.Posts == nil {
		return nil, errMalformed("publication has no posts connection")
	}

	out := make([]types.Post, 0, len(d.Publication.Posts.Edges))
	for i, edge := range d.Publication.Posts.Edges {
		if edge.Node == nil {
			return nil, errMalformed(fmt.Sprintf("post edge %d has no node", i))
		}
		post, err := edge.Node.post()
		if err != nil {
			return nil, errMalformed(fmt.Sprintf("post edge %d: %v", i, err))
		}
		out = append(out, post)
	}
	return out, nil
}

func (n postNode) post() (types.Post, error) {
	published, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(n.PublishedAt))
	if err != nil {
		return types.Post{}, fmt.Errorf("publishedAt %q: %w", n.PublishedAt, err)
	}

	p := types.Post{
		ID:          n.ID,
		Title:       n.Title,
		Slug:        n.Slug,
		PublishedAt: published,
	}
	if n.CoverImage != nil && n.CoverImage.URL != "" {
		p.CoverImage = &types.CoverImage{URL: n.CoverImage.URL}
	}
	return p, nil
}

// page unwraps publication.staticPage; ok is false when either level is null.
func (d pageBySlugData) page() (types.Page, bool) {
	if d.Publication == nil || d.Publication.StaticPage == nil {
		return types.Page{}, false
	}
	n := d.Publication.StaticPage

	p := types.Page{
		ID:    n.ID,
		Slug:  n.Slug,
		Title: n.Title,
	}
	if n.Content != nil {
		p.ContentHTML = n.Content.HTML
	}
	if n.SEO != nil && n.SEO.Description != nil {
		p.Description = *n.SEO.Description
	}
	return p, true
}
