package gql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultTimeout bounds a request when the caller's context carries no deadline.
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 8 << 20
	maxErrorBody     = 512
)

// Request is one GraphQL operation ready to be sent.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Executor runs a request and decodes the response's data object into out.
type Executor interface {
	Execute(ctx context.Context, req Request, out any) error
}

// envelope is the standard GraphQL response body.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors gqlerror.List   `json:"errors,omitempty"`
}

// Client executes GraphQL requests over HTTP POST.
type Client struct {
	endpoint   string
	httpClient *http.Client
	headers    http.Header
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithHeader sets a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if value != "" {
			c.headers.Set(key, value)
		}
	}
}

// WithToken sends token in the Authorization header.
func WithToken(token string) Option {
	return WithHeader("Authorization", token)
}

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a client for the GraphQL endpoint.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, invalidRequest("graphql endpoint is required", nil)
	}

	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		headers: make(http.Header),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Execute posts req and decodes the data object into out. A nil out discards
// the data after the envelope has been checked.
func (c *Client) Execute(ctx context.Context, req Request, out any) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return invalidRequest("failed to marshal graphql request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return invalidRequest("failed to create graphql request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for key, values := range c.headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return transportFailure(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transportFailure(ctx, err)
	}

	if resp.StatusCode != http.StatusOK {
		return goerrors.New(fmt.Sprintf("content graph returned %d", resp.StatusCode), goerrors.CategoryExternal).
			WithTextCode(TextCodeHTTPStatus).
			WithCode(resp.StatusCode).
			WithMetadata(map[string]any{
				"operation": req.OperationName,
				"body":      truncate(raw, maxErrorBody),
			})
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return malformed("response is not a graphql envelope", err)
	}

	if len(env.Errors) > 0 {
		messages := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			if e != nil {
				messages = append(messages, e.Message)
			}
		}
		return goerrors.Wrap(env.Errors, goerrors.CategoryExternal, "content graph returned errors").
			WithTextCode(TextCodeErrorPayload).
			WithMetadata(map[string]any{
				"operation": req.OperationName,
				"messages":  messages,
			})
	}

	if len(env.Data) == 0 || bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		return malformed("response carries no data", nil)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return malformed("response data does not match the expected shape", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
