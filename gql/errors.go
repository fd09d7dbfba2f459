package gql

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to every error produced by this package.
const (
	TextCodeInvalidRequest    = "GQL_INVALID_REQUEST"
	TextCodeTransport         = "GQL_TRANSPORT_FAILED"
	TextCodeHTTPStatus        = "GQL_HTTP_STATUS"
	TextCodeMalformedResponse = "GQL_MALFORMED_RESPONSE"
	TextCodeErrorPayload      = "GQL_ERROR_PAYLOAD"
	TextCodeContextDone       = "GQL_CONTEXT_DONE"
)

func invalidRequest(message string, source error) *goerrors.Error {
	if source == nil {
		return goerrors.New(message, goerrors.CategoryValidation).WithTextCode(TextCodeInvalidRequest)
	}
	return goerrors.Wrap(source, goerrors.CategoryValidation, message).WithTextCode(TextCodeInvalidRequest)
}

func malformed(message string, source error) *goerrors.Error {
	if source == nil {
		return goerrors.New(message, goerrors.CategoryExternal).WithTextCode(TextCodeMalformedResponse)
	}
	return goerrors.Wrap(source, goerrors.CategoryExternal, message).WithTextCode(TextCodeMalformedResponse)
}

// transportFailure classifies cancellation and timeouts as operation errors,
// everything else as an external failure.
func transportFailure(ctx context.Context, err error) *goerrors.Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return goerrors.Wrap(ctxErr, goerrors.CategoryOperation, "graphql request abandoned").
			WithTextCode(TextCodeContextDone)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "graphql request timed out").
			WithTextCode(TextCodeContextDone)
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "graphql request failed").
		WithTextCode(TextCodeTransport)
}

// TextCode returns the text code of a classified error, or "" for anything
// this package did not produce.
func TextCode(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode
	}
	return ""
}
