// Package content fetches blog posts and static pages for one publication
// from a headless CMS content graph and flattens the nested GraphQL
// responses into plain value objects.
package content

import (
	"context"
	"log/slog"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"folio/gql"
	"folio/types"
)

const tracerName = "folio/content"

// Config wires a Gateway. Executor is required; an empty Host is accepted
// and simply yields no data.
type Config struct {
	Executor gql.Executor
	Host     string
	PageSize int
	Logger   *slog.Logger
	Tracer   trace.Tracer
}

// Gateway is safe for concurrent use. It holds no mutable state.
type Gateway struct {
	exec     gql.Executor
	host     string
	pageSize int
	logger   *slog.Logger
	tracer   trace.Tracer

	postsDoc *gql.Document
	pageDoc  *gql.Document
}

// NewGateway validates cfg and binds the gateway to its query documents.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.Executor == nil {
		return nil, goerrors.New("content gateway requires an executor", goerrors.CategoryValidation)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "content")

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		logger.Warn("content host is not configured; every fetch will return no data")
	}

	return &Gateway{
		exec:     cfg.Executor,
		host:     host,
		pageSize: pageSize,
		logger:   logger,
		tracer:   tracer,
		postsDoc: recentPostsDoc,
		pageDoc:  pageBySlugDoc,
	}, nil
}

// Host returns the publication host the gateway is bound to.
func (g *Gateway) Host() string { return g.host }

// PageSize returns the number of posts requested by ListRecentPosts.
func (g *Gateway) PageSize() int { return g.pageSize }

// ListRecentPosts returns the publication's most recent posts in source
// order. The slice is never nil; on failure it is empty and err is a
// classified go-errors value.
func (g *Gateway) ListRecentPosts(ctx context.Context) ([]types.Post, error) {
	ctx, span := g.tracer.Start(ctx, "content.ListRecentPosts",
		trace.WithAttributes(
			attribute.String("content.host", g.host),
			attribute.Int("content.first", g.pageSize),
			attribute.String("graphql.operation.name", g.postsDoc.Name()),
			attribute.String("graphql.operation.type", g.postsDoc.Operation()),
		))
	defer span.End()

	g.logger.DebugContext(ctx, "listing recent posts", "host", g.host, "first", g.pageSize)

	req, err := g.postsDoc.Request(map[string]any{"host": g.host, "first": g.pageSize})
	if err != nil {
		return []types.Post{}, g.fail(span, opListRecentPosts, err)
	}

	var data recentPostsData
	if err := g.exec.Execute(ctx, req, &data); err != nil {
		return []types.Post{}, g.fail(span, opListRecentPosts, err)
	}

	posts, err := data.posts()
	if err != nil {
		return []types.Post{}, g.fail(span, opListRecentPosts, err)
	}

	span.SetAttributes(attribute.Int("content.posts", len(posts)))
	return posts, nil
}

// GetPageBySlug fetches one static page. A page that does not exist is
// reported with ok == false and a nil error.
func (g *Gateway) GetPageBySlug(ctx context.Context, slug string) (page types.Page, ok bool, err error) {
	slug = strings.TrimSpace(slug)

	ctx, span := g.tracer.Start(ctx, "content.GetPageBySlug",
		trace.WithAttributes(
			attribute.String("content.host", g.host),
			attribute.String("content.slug", slug),
			attribute.String("graphql.operation.name", g.pageDoc.Name()),
			attribute.String("graphql.operation.type", g.pageDoc.Operation()),
		))
	defer span.End()

	g.logger.DebugContext(ctx, "fetching page", "host", g.host, "slug", slug)

	if slug == "" {
		return types.Page{}, false, g.fail(span, opGetPageBySlug, errSlugRequired())
	}

	req, err := g.pageDoc.Request(map[string]any{"host": g.host, "slug": slug})
	if err != nil {
		return types.Page{}, false, g.fail(span, opGetPageBySlug, err)
	}

	var data pageBySlugData
	if err := g.exec.Execute(ctx, req, &data); err != nil {
		return types.Page{}, false, g.fail(span, opGetPageBySlug, err)
	}

	page, ok = data.page()
	span.SetAttributes(attribute.Bool("content.found", ok))
	if !ok {
		g.logger.DebugContext(ctx, "page not found", "host", g.host, "slug", slug)
	}
	return page, ok, nil
}

// fail classifies err, records it on the span and logs it once.
func (g *Gateway) fail(span trace.Span, op string, err error) error {
	classified := classify(op, g.host, err)

	span.RecordError(classified)
	span.SetStatus(codes.Error, classified.Message)

	goerrors.LogBySeverity(g.logger.With("operation", op, "host", g.host), classified)
	return classified
}
