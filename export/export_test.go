package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	goerrors "github.com/goliatone/go-errors"

	"folio/types"
)

type fakeSource struct {
	posts   []types.Post
	pages   map[string]types.Page
	listErr error
	pageErr error
}

func (f *fakeSource) Host() string { return "blog.example.dev" }

func (f *fakeSource) ListRecentPosts(ctx context.Context) ([]types.Post, error) {
	if f.listErr != nil {
		return []types.Post{}, f.listErr
	}
	return f.posts, nil
}

func (f *fakeSource) GetPageBySlug(ctx context.Context, slug string) (types.Page, bool, error) {
	if f.pageErr != nil {
		return types.Page{}, false, f.pageErr
	}
	p, ok := f.pages[slug]
	return p, ok, nil
}

type putCall struct {
	bucket, key, contentType, cacheControl string
	body                                   []byte
}

type fakeStore struct {
	objects map[string][]byte
	puts    []putCall
	putErr  error
	getErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Put(ctx context.Context, bucket, key string, body io.Reader, contentType, cacheControl string) error {
	if f.putErr != nil {
		return f.putErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = b
	f.puts = append(f.puts, putCall{bucket, key, contentType, cacheControl, b})
	return nil
}

func (f *fakeStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.objects[key]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey"}
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeStore) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func newTestExporter(t *testing.T, src ContentSource, store ObjectStore, pages ...string) *Exporter {
	t.Helper()
	e, err := New(Config{
		Source: src,
		Store:  store,
		Bucket: "folio-snapshots",
		Prefix: "snapshots/",
		Pages:  pages,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	e.textOf = func(host, slug, html string) string { return slug + "@" + host }
	return e
}

func sampleSource() *fakeSource {
	return &fakeSource{
		posts: []types.Post{
			{ID: "p1", Title: "First", Slug: "first"},
			{ID: "p2", Title: "Second", Slug: "second"},
		},
		pages: map[string]types.Page{
			"about": {ID: "pg1", Slug: "about", Title: "About", ContentHTML: `<p>Hi</p><IMG src="me.png" alt="me"><p>Bye</p>`},
		},
	}
}

func TestBuild(t *testing.T) {
	e := newTestExporter(t, sampleSource(), nil, "about", "uses")

	snap, err := e.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if snap.Host != "blog.example.dev" || len(snap.Posts) != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if len(snap.Pages) != 1 {
		t.Fatalf("Pages = %+v", snap.Pages)
	}
	page := snap.Pages[0]
	if page.ContentHTML != "<p>Hi</p><p>Bye</p>" {
		t.Fatalf("images not stripped: %q", page.ContentHTML)
	}
	if page.ContentText != "about@blog.example.dev" {
		t.Fatalf("ContentText = %q", page.ContentText)
	}
	if !reflect.DeepEqual(snap.Missing, []string{"uses"}) {
		t.Fatalf("Missing = %v", snap.Missing)
	}
}

func TestBuildFailures(t *testing.T) {
	listErr := goerrors.New("content graph unreachable", goerrors.CategoryExternal)
	pageErr := goerrors.New("content graph unreachable", goerrors.CategoryExternal)

	cases := []struct {
		name string
		src  *fakeSource
		want error
	}{
		{"list", &fakeSource{listErr: listErr}, listErr},
		{"page", &fakeSource{pageErr: pageErr}, pageErr},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newTestExporter(t, c.src, nil, "about")
			if _, err := e.Build(context.Background()); !errors.Is(err, c.want) {
				t.Fatalf("Build error = %v; want %v", err, c.want)
			}
		})
	}
}

func TestExportUploadsTimestampedAndLatest(t *testing.T) {
	store := newFakeStore()
	e := newTestExporter(t, sampleSource(), store, "about")

	res, err := e.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if res.Key != "snapshots/20240601T120000.000000000Z.json" {
		t.Fatalf("Key = %q", res.Key)
	}
	if len(store.puts) != 2 || store.puts[1].key != "snapshots/latest.json" {
		t.Fatalf("puts = %+v", store.puts)
	}
	for _, p := range store.puts {
		if p.bucket != "folio-snapshots" || p.contentType != "application/json" || p.cacheControl == "" {
			t.Fatalf("put = %+v", p)
		}
	}

	var stored types.Snapshot
	if err := json.Unmarshal(store.objects[res.Key], &stored); err != nil {
		t.Fatalf("stored snapshot is not JSON: %v", err)
	}
	if len(stored.Posts) != 2 || stored.Pages[0].Slug != "about" {
		t.Fatalf("stored = %+v", stored)
	}

	latest, err := e.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if !latest.GeneratedAt.Equal(res.Snapshot.GeneratedAt) || len(latest.Posts) != 2 {
		t.Fatalf("latest = %+v", latest)
	}

	keys, err := e.Snapshots(context.Background())
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{res.Key}) {
		t.Fatalf("Snapshots = %v", keys)
	}
}

func TestExportSameSecondKeepsBothSnapshots(t *testing.T) {
	store := newFakeStore()
	e := newTestExporter(t, sampleSource(), store, "about")

	var keys []string
	for _, ns := range []int{100, 900} {
		e.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, ns, time.UTC) }
		res, err := e.Export(context.Background())
		if err != nil {
			t.Fatalf("Export: %v", err)
		}
		keys = append(keys, res.Key)
	}
	if keys[0] == keys[1] {
		t.Fatalf("exports in the same second share key %q", keys[0])
	}

	listed, err := e.Snapshots(context.Background())
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	if !reflect.DeepEqual(listed, []string{keys[1], keys[0]}) {
		t.Fatalf("Snapshots = %v; want newest first %v", listed, []string{keys[1], keys[0]})
	}
}

func TestExportUploadFailure(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("access denied")
	e := newTestExporter(t, sampleSource(), store)

	_, err := e.Export(context.Background())
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("Export error = %v; want external", err)
	}
}

func TestLatestWithoutSnapshot(t *testing.T) {
	e := newTestExporter(t, sampleSource(), newFakeStore())

	_, err := e.Latest(context.Background())
	if !goerrors.IsNotFound(err) {
		t.Fatalf("Latest error = %v; want not found", err)
	}
}

func TestExportWithoutStore(t *testing.T) {
	e := newTestExporter(t, sampleSource(), nil)
	if _, err := e.Export(context.Background()); !goerrors.IsValidation(err) {
		t.Fatalf("Export error = %v; want validation", err)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("New without source succeeded")
	}
	if _, err := New(Config{Source: sampleSource(), Store: newFakeStore()}); err == nil {
		t.Fatalf("New with store but no bucket succeeded")
	}
}

func TestStripImagesFromHTML(t *testing.T) {
	cases := map[string]string{
		"":                                     "",
		"<p>text</p>":                          "<p>text</p>",
		`<p><img src="a.png"/>caption</p>`:     "<p>caption</p>",
		`<IMG SRC="b.png">` + `<img alt='x' >`: "",
	}
	for in, want := range cases {
		if got := stripImagesFromHTML(in); got != want {
			t.Fatalf("stripImagesFromHTML(%q) = %q; want %q", in, got, want)
		}
	}
}
