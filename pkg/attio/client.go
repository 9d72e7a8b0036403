// Package attio is a typed client for the Attio REST API. Every operation
// issues exactly one request and pipes the response through pkg/schema.
package attio

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/Gobusters/ectologger"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appctx "github.com/Ramsey-B/aster/pkg/context"
	asterrors "github.com/Ramsey-B/aster/pkg/errors"
	"github.com/Ramsey-B/aster/pkg/httpclient"
	"github.com/Ramsey-B/aster/pkg/metrics"
	"github.com/Ramsey-B/aster/pkg/schema"
)

const (
	DefaultBaseURL  = "https://api.attio.com"
	DefaultPageSize = 250

	// maxErrorBody caps how much of a failed response is kept on the error
	maxErrorBody = 2048
)

type Options struct {
	BaseURL  string
	Token    string
	PageSize int
}

type Client struct {
	http    httpclient.Doer
	schemas *schema.Schemas
	logger  ectologger.Logger
	opts    Options
}

func NewClient(doer httpclient.Doer, schemas *schema.Schemas, opts Options, logger ectologger.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}

	return &Client{
		http:    doer,
		schemas: schemas,
		logger:  logger,
		opts:    opts,
	}
}

// Schemas returns the decoder the client validates responses with.
func (c *Client) Schemas() *schema.Schemas {
	return c.schemas
}

// token prefers the caller's token carried on the context over the configured one.
func (c *Client) token(ctx context.Context) string {
	if token := appctx.GetAuthToken(ctx); token != "" {
		return token
	}
	return c.opts.Token
}

func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.opts.BaseURL + "/" + strings.Join(escaped, "/")
}

func (c *Client) pageQuery(opts PageOptions) map[string]any {
	limit := opts.Limit
	if limit <= 0 {
		limit = c.opts.PageSize
	}
	return map[string]any{
		"limit":  limit,
		"offset": opts.Offset,
	}
}

// jsonHTTP sends one request and returns the body of a 2xx response.
func (c *Client) jsonHTTP(ctx context.Context, method, endpoint string, query map[string]any, body any) ([]byte, string, error) {
	target := endpoint
	if query != nil {
		built, err := httpclient.BuildURL(endpoint, query)
		if err != nil {
			return nil, endpoint, &asterrors.RemoteRequestFailure{Method: method, URL: endpoint, Err: err}
		}
		target = built
	}

	req, err := httpclient.NewJSONRequest(ctx, method, target, body, c.token(ctx))
	if err != nil {
		return nil, target, &asterrors.RemoteRequestFailure{Method: method, URL: target, Err: err}
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, target, &asterrors.RemoteRequestFailure{Method: method, URL: target, Err: err}
	}

	if !resp.IsSuccess() {
		failure := &asterrors.RemoteRequestFailure{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(resp.Body), maxErrorBody),
		}
		c.logger.WithContext(ctx).WithFields(map[string]any{
			"method":      method,
			"url":         target,
			"status_code": resp.StatusCode,
		}).Warn("Attio request failed")
		return nil, target, failure
	}

	return resp.Body, target, nil
}

// decoded attaches the request to a schema violation and records it.
func (c *Client) decoded(ctx context.Context, method, target string, err error) error {
	var violation *asterrors.SchemaViolation
	if errors.As(err, &violation) {
		metrics.RecordSchemaViolation(violation.Schema)
		c.logger.WithContext(ctx).WithError(err).Error("Attio response did not match schema")
		return violation.AddRequest(method, target)
	}
	return err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

var _ httpclient.Doer = (*httpclient.Client)(nil)

// endSpan records err on the span, if any, and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
