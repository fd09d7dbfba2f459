package gql

import (
	"reflect"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

const slugQuery = `query PageBySlug($host: String!, $slug: String!, $draft: Boolean = false) {
  publication(host: $host) { staticPage(slug: $slug) { id } }
}`

func TestParseDocument(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		wantErr bool
		wantOp  string
		wantVar []string
	}{
		{"named query", slugQuery, false, "PageBySlug", []string{"draft", "host", "slug"}},
		{"anonymous", `{ me { id } }`, false, "", []string{}},
		{"empty", "   ", true, "", nil},
		{"syntax error", `query { publication(host: ) }`, true, "", nil},
		{"two operations", `query A { a } query B { b }`, true, "", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc, err := ParseDocument(c.query)
			if c.wantErr {
				if err == nil {
					t.Fatalf("ParseDocument(%q) succeeded; want error", c.query)
				}
				if !goerrors.IsValidation(err) {
					t.Fatalf("error category = %v; want validation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDocument error: %v", err)
			}
			if doc.Name() != c.wantOp {
				t.Fatalf("Name() = %q; want %q", doc.Name(), c.wantOp)
			}
			if got := doc.Variables(); !reflect.DeepEqual(got, c.wantVar) {
				t.Fatalf("Variables() = %v; want %v", got, c.wantVar)
			}
		})
	}
}

func TestDocumentRequest(t *testing.T) {
	doc := MustParseDocument(slugQuery)

	cases := []struct {
		name     string
		vars     map[string]any
		wantCode string
	}{
		{"all required", map[string]any{"host": "blog.example.dev", "slug": "about"}, ""},
		{"optional supplied", map[string]any{"host": "h", "slug": "s", "draft": true}, ""},
		{"missing required", map[string]any{"host": "h"}, TextCodeInvalidRequest},
		{"nil required", map[string]any{"host": "h", "slug": nil}, TextCodeInvalidRequest},
		{"undeclared", map[string]any{"host": "h", "slug": "s", "first": 10}, TextCodeInvalidRequest},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req, err := doc.Request(c.vars)
			if got := TextCode(err); got != c.wantCode {
				t.Fatalf("TextCode(err) = %q; want %q (err=%v)", got, c.wantCode, err)
			}
			if c.wantCode != "" {
				return
			}
			if req.OperationName != "PageBySlug" {
				t.Fatalf("OperationName = %q", req.OperationName)
			}
			if req.Query != slugQuery {
				t.Fatalf("Query was altered")
			}
			if !reflect.DeepEqual(req.Variables, c.vars) {
				t.Fatalf("Variables = %v; want %v", req.Variables, c.vars)
			}
		})
	}
}

func TestDocumentRequestCopiesVariables(t *testing.T) {
	doc := MustParseDocument(slugQuery)
	vars := map[string]any{"host": "h", "slug": "a"}

	req, err := doc.Request(vars)
	if err != nil {
		t.Fatalf("Request error: %v", err)
	}
	vars["slug"] = "b"
	if req.Variables["slug"] != "a" {
		t.Fatalf("request variables share the caller's map")
	}
}
