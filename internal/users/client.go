package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Sid16p/Task-7---Fetch-API/internal/users"

// Fetcher retrieves the full user list.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]UserRecord, error)
}

// Client issues a plain GET against a fixed URL. It sets no timeout of its
// own; a request waits as long as the transport does.
type Client struct {
	url        string
	httpClient *http.Client
	tracer     trace.Tracer
	validate   *validator.Validate
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{},
		tracer:     otel.Tracer(tracerName),
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) URL() string {
	return c.url
}

// FetchAll requests the user list. Every failure is a *FetchError: transport
// problems are KindNetwork, non-2xx responses KindHTTPStatus, and bodies that
// are not a non-empty JSON array of named users KindNoData.
func (c *Client) FetchAll(ctx context.Context) ([]UserRecord, error) {
	ctx, span := c.tracer.Start(ctx, "users.FetchAll",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", c.url)),
	)
	defer span.End()

	records, err := c.fetch(ctx, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("users.count", len(records)))
	return records, nil
}

func (c *Client) fetch(ctx context.Context, span trace.Span) ([]UserRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, networkError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, statusText(resp))
	}

	var records []UserRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, noDataError(fmt.Errorf("decode body: %w", err))
	}

	if len(records) == 0 {
		return nil, noDataError(nil)
	}

	for i := range records {
		if err := c.validate.Struct(&records[i]); err != nil {
			return nil, noDataError(fmt.Errorf("record %d: %w", i, err))
		}
	}

	return records, nil
}

// statusText returns the reason phrase of the response, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
