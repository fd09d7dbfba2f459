package gql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Document is a parsed, single-operation GraphQL query document.
type Document struct {
	source    string
	name      string
	operation ast.Operation
	variables map[string]bool // variable name -> required
}

// ParseDocument parses query and records its operation and declared variables.
// Documents holding anything other than exactly one operation are rejected.
func ParseDocument(query string) (*Document, error) {
	if strings.TrimSpace(query) == "" {
		return nil, invalidRequest("empty graphql document", nil)
	}

	parsed, err := parser.ParseQuery(&ast.Source{Name: "document", Input: query})
	if err != nil {
		return nil, invalidRequest("invalid graphql document", err)
	}
	if len(parsed.Operations) != 1 {
		return nil, invalidRequest(fmt.Sprintf("expected one operation, found %d", len(parsed.Operations)), nil)
	}

	op := parsed.Operations[0]
	vars := make(map[string]bool, len(op.VariableDefinitions))
	for _, def := range op.VariableDefinitions {
		vars[def.Variable] = def.Type != nil && def.Type.NonNull && def.DefaultValue == nil
	}

	return &Document{
		source:    query,
		name:      op.Name,
		operation: op.Operation,
		variables: vars,
	}, nil
}

// MustParseDocument is ParseDocument for package-level query constants.
func MustParseDocument(query string) *Document {
	doc, err := ParseDocument(query)
	if err != nil {
		panic(err)
	}
	return doc
}

// Name returns the operation name, empty for anonymous operations.
func (d *Document) Name() string { return d.name }

// Operation returns the operation kind (query, mutation, subscription).
func (d *Document) Operation() string { return string(d.operation) }

// Variables returns the declared variable names in sorted order.
func (d *Document) Variables() []string {
	names := make([]string, 0, len(d.variables))
	for name := range d.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Request binds vars to the document. Every supplied variable must be
// declared and every required variable must be present and non-nil.
func (d *Document) Request(vars map[string]any) (Request, error) {
	for name := range vars {
		if _, ok := d.variables[name]; !ok {
			return Request{}, invalidRequest(fmt.Sprintf("variable $%s is not declared by %s", name, d.label()), nil)
		}
	}
	for _, name := range d.Variables() {
		if !d.variables[name] {
			continue
		}
		if v, ok := vars[name]; !ok || v == nil {
			return Request{}, invalidRequest(fmt.Sprintf("required variable $%s missing for %s", name, d.label()), nil)
		}
	}

	bound := make(map[string]any, len(vars))
	for k, v := range vars {
		bound[k] = v
	}
	return Request{Query: d.source, Variables: bound, OperationName: d.name}, nil
}

func (d *Document) label() string {
	if d.name != "" {
		return d.name
	}
	return "anonymous " + string(d.operation)
}
