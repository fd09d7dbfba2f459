// Package export writes JSON snapshots of a publication's posts and pages to
// object storage.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	readability "github.com/go-shiori/go-readability"

	"folio/storage"
	"folio/types"
)

const (
	latestName   = "latest.json"
	cacheControl = "public, max-age=300"

	// fixed width so keys sort chronologically
	snapshotStamp = "20060102T150405.000000000Z"
)

// ContentSource is the read side of the content gateway.
type ContentSource interface {
	Host() string
	ListRecentPosts(ctx context.Context) ([]types.Post, error)
	GetPageBySlug(ctx context.Context, slug string) (types.Page, bool, error)
}

// ObjectStore stores snapshot documents.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType, cacheControl string) error
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	List(ctx context.Context, bucket, prefix string) ([]string, error)
}

// Config wires an Exporter. Store may be nil when only Build is used.
type Config struct {
	Source ContentSource
	Store  ObjectStore
	Bucket string
	Prefix string
	Pages  []string
	Logger *slog.Logger
}

// Exporter builds and uploads snapshots.
type Exporter struct {
	source ContentSource
	store  ObjectStore
	bucket string
	prefix string
	pages  []string
	logger *slog.Logger

	now    func() time.Time
	textOf func(host, slug, html string) string
}

// Result describes an uploaded snapshot.
type Result struct {
	Key      string
	Snapshot types.Snapshot
}

// New returns an Exporter for cfg. It fails when cfg has no content source.
func New(cfg Config) (*Exporter, error) {
	if cfg.Source == nil {
		return nil, goerrors.New("exporter requires a content source", goerrors.CategoryValidation)
	}
	if cfg.Store != nil && cfg.Bucket == "" {
		return nil, goerrors.New("exporter requires a bucket", goerrors.CategoryValidation)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		source: cfg.Source,
		store:  cfg.Store,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		pages:  cfg.Pages,
		logger: logger.With("component", "export"),
		now:    func() time.Time { return time.Now().UTC() },
		textOf: readableText,
	}, nil
}

// Build fetches posts and every configured page. A failed post listing or
// page fetch aborts the build; pages that do not exist are recorded as
// missing.
func (e *Exporter) Build(ctx context.Context) (types.Snapshot, error) {
	posts, err := e.source.ListRecentPosts(ctx)
	if err != nil {
		return types.Snapshot{}, err
	}

	snap := types.Snapshot{
		Host:        e.source.Host(),
		GeneratedAt: e.now(),
		Posts:       posts,
		Pages:       make([]types.SnapshotPage, 0, len(e.pages)),
	}

	for _, slug := range e.pages {
		page, ok, err := e.source.GetPageBySlug(ctx, slug)
		if err != nil {
			return types.Snapshot{}, err
		}
		if !ok {
			e.logger.WarnContext(ctx, "page missing from publication", "slug", slug)
			snap.Missing = append(snap.Missing, slug)
			continue
		}
		page.ContentHTML = stripImagesFromHTML(page.ContentHTML)
		snap.Pages = append(snap.Pages, types.SnapshotPage{
			Page:        page,
			ContentText: e.textOf(snap.Host, page.Slug, page.ContentHTML),
		})
	}
	return snap, nil
}

// Export builds a snapshot and uploads it under a timestamped key and as
// the latest snapshot.
func (e *Exporter) Export(ctx context.Context) (Result, error) {
	if e.store == nil {
		return Result{}, goerrors.New("snapshot storage is not configured", goerrors.CategoryValidation)
	}

	snap, err := e.Build(ctx)
	if err != nil {
		return Result{}, err
	}

	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Result{}, err
	}

	key := e.prefix + snap.GeneratedAt.Format(snapshotStamp) + ".json"
	for _, k := range []string{key, e.prefix + latestName} {
		if err := e.store.Put(ctx, e.bucket, k, bytes.NewReader(body), "application/json", cacheControl); err != nil {
			return Result{}, goerrors.Wrap(err, goerrors.CategoryExternal, "failed to upload snapshot").
				WithMetadata(map[string]any{"bucket": e.bucket, "key": k})
		}
	}

	e.logger.InfoContext(ctx, "snapshot exported",
		"bucket", e.bucket, "key", key, "posts", len(snap.Posts), "pages", len(snap.Pages), "missing", len(snap.Missing))
	return Result{Key: key, Snapshot: snap}, nil
}

// Latest reads the most recently exported snapshot.
func (e *Exporter) Latest(ctx context.Context) (types.Snapshot, error) {
	if e.store == nil {
		return types.Snapshot{}, goerrors.New("snapshot storage is not configured", goerrors.CategoryValidation)
	}

	rc, err := e.store.Get(ctx, e.bucket, e.prefix+latestName)
	if err != nil {
		if storage.IsNotFound(err) {
			return types.Snapshot{}, goerrors.Wrap(err, goerrors.CategoryNotFound, "no snapshot has been exported")
		}
		return types.Snapshot{}, goerrors.Wrap(err, goerrors.CategoryExternal, "failed to read snapshot")
	}
	defer rc.Close()

	var snap types.Snapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return types.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

// Snapshots lists timestamped snapshot keys, newest first.
func (e *Exporter) Snapshots(ctx context.Context) ([]string, error) {
	if e.store == nil {
		return nil, goerrors.New("snapshot storage is not configured", goerrors.CategoryValidation)
	}

	keys, err := e.store.List(ctx, e.bucket, e.prefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasSuffix(k, ".json") && !strings.HasSuffix(k, "/"+latestName) && k != latestName {
			out = append(out, k)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}

var imgTagRe = regexp.MustCompile(`(?i)<img\b[^>]*>`)

func stripImagesFromHTML(html string) string {
	if strings.TrimSpace(html) == "" {
		return html
	}
	return imgTagRe.ReplaceAllString(html, "")
}

// readableText renders page HTML as plain text. Failures yield "".
func readableText(host, slug, html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	pageURL := &url.URL{Scheme: "https", Host: host, Path: "/" + slug}
	doc := "<html><head><title>" + slug + "</title></head><body><article>" + html + "</article></body></html>"

	article, err := readability.FromReader(strings.NewReader(doc), pageURL)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.TextContent)
}
