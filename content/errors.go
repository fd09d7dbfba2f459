package content

import (
	goerrors "github.com/goliatone/go-errors"

	"folio/gql"
)

// TextCodeSlugRequired marks a page lookup attempted without a slug.
const TextCodeSlugRequired = "CONTENT_SLUG_REQUIRED"

const (
	opListRecentPosts = "list_recent_posts"
	opGetPageBySlug   = "get_page_by_slug"
)

func errMalformed(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryExternal).WithTextCode(gql.TextCodeMalformedResponse)
}

func errSlugRequired() *goerrors.Error {
	return goerrors.New("page slug is required", goerrors.CategoryBadInput).
		WithTextCode(TextCodeSlugRequired).
		WithSeverity(goerrors.SeverityWarning)
}

// classify turns any failure into a go-errors value tagged with the
// operation and host. Errors without a category are treated as transport
// failures.
func classify(op, host string, err error) *goerrors.Error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, richErr.Category, op)
	} else {
		richErr = goerrors.Wrap(err, goerrors.CategoryExternal, op).WithTextCode(gql.TextCodeTransport)
	}
	return richErr.WithMetadata(map[string]any{
		"operation": op,
		"host":      host,
	})
}

// IsFetchFailure reports whether err is a transport or decode failure of the
// content graph, as opposed to bad caller input.
func IsFetchFailure(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryExternal) ||
		goerrors.IsCategory(err, goerrors.CategoryOperation)
}

// IsBadInput reports whether err was caused by invalid caller input.
func IsBadInput(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryBadInput) ||
		goerrors.IsCategory(err, goerrors.CategoryValidation)
}
