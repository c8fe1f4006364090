// Package httpplanner provides a planner.Client implementation backed by the
// planning service's JSON API.
package httpplanner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"finplan/pkg/domain"
	"finplan/pkg/metrics"
	"finplan/pkg/planner"
	"finplan/pkg/serrors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	// UnavailableMessage is shown to the user when the service cannot be reached.
	UnavailableMessage = "could not reach planning service"

	// DefaultMaxReportSize bounds the size of a downloaded report.
	DefaultMaxReportSize int64 = 32 << 20

	maxJSONSize int64 = 4 << 20

	tracerName = "finplan/pkg/planner/httpplanner"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the root of the service, e.g. "http://localhost:5000".
	BaseURL string
	// MaxReportSize bounds report downloads. Zero selects DefaultMaxReportSize.
	MaxReportSize int64
	// Instruments records call durations. Optional.
	Instruments *metrics.Instruments
	// TracerProvider creates the client spans. Defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Client talks to the planning service and fulfills the planner.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient    *http.Client
	baseURL       *url.URL
	maxReportSize int64
	instruments   *metrics.Instruments
	tracer        trace.Tracer
}

// Ensure Client conforms to the planner.Client interface at compile time.
var _ planner.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client.
func New(httpClient *http.Client, opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("could not parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}
	if opts.MaxReportSize <= 0 {
		opts.MaxReportSize = DefaultMaxReportSize
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       u,
		maxReportSize: opts.MaxReportSize,
		instruments:   opts.Instruments,
		tracer:        opts.TracerProvider.Tracer(tracerName),
	}, nil
}

// envelope is the response body shape shared by every JSON endpoint.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// Countries implements planner.Client.
func (c *Client) Countries(ctx context.Context) ([]domain.Country, error) {
	return getList[domain.Country](ctx, c, "countries")
}

// Industries implements planner.Client.
func (c *Client) Industries(ctx context.Context) ([]domain.Industry, error) {
	return getList[domain.Industry](ctx, c, "industries")
}

// Currencies implements planner.Client.
func (c *Client) Currencies(ctx context.Context) ([]domain.Currency, error) {
	return getList[domain.Currency](ctx, c, "currencies")
}

func getList[T any](ctx context.Context, c *Client, name string) ([]T, error) {
	var env envelope[[]T]
	if err := c.doJSON(ctx, http.MethodGet, name, nil, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, rejected(env.Error, "could not load "+name)
	}

	return env.Data, nil
}

// CalculateRecommendations posts the merged submission and returns the
// computed recommendation set.
func (c *Client) CalculateRecommendations(
	ctx context.Context,
	submission domain.Submission,
) (*domain.RecommendationSet, error) {
	body, err := json.Marshal(submission)
	if err != nil {
		return nil, fmt.Errorf("could not marshal submission: %w", err)
	}

	var env envelope[*domain.RecommendationSet]
	if err := c.doJSON(ctx, http.MethodPost, "calculate-recommendations", body, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, rejected(env.Error, "could not calculate recommendations")
	}
	if env.Data == nil {
		return nil, serrors.With(serrors.ErrUnavailable, "planning service returned no recommendations")
	}

	return env.Data, nil
}

// GenerateReport requests a report file. A 2xx answer is the file itself;
// anything else is expected to carry a JSON error.
func (c *Client) GenerateReport(ctx context.Context, r planner.ReportRequest) (*planner.Report, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("could not marshal report request: %w", err)
	}

	ctx, rc := c.begin(ctx, "generate-report")
	resp, err := c.send(ctx, http.MethodPost, "generate-report", body)
	if err != nil {
		rc.end("unavailable")

		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := errorFromBody(resp, "could not generate report")
		rc.end(outcomeOf(err))

		return nil, err
	}

	data, err := readLimited(resp.Body, c.maxReportSize)
	if err != nil {
		rc.end("unavailable")

		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not download report")
	}
	if len(data) == 0 {
		rc.end("unavailable")

		return nil, serrors.With(serrors.ErrUnavailable, "planning service returned an empty report")
	}
	rc.end("ok")

	return &planner.Report{
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    filenameOf(resp.Header.Get("Content-Disposition")),
		Data:        data,
	}, nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body []byte, out any) error {
	ctx, rc := c.begin(ctx, endpoint)
	resp, err := c.send(ctx, method, endpoint, body)
	if err != nil {
		rc.end("unavailable")

		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := errorFromBody(resp, "planning service answered "+resp.Status)
		rc.end(outcomeOf(err))

		return err
	}

	b, err := readLimited(resp.Body, maxJSONSize)
	if err != nil {
		rc.end("unavailable")

		return serrors.Wrap(serrors.ErrUnavailable, err, UnavailableMessage)
	}
	if err := json.Unmarshal(b, out); err != nil {
		rc.end("unavailable")

		return serrors.Wrap(serrors.ErrUnavailable, err, "planning service returned an invalid response")
	}
	rc.end("ok")

	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath("api", endpoint).String(), rd)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, UnavailableMessage)
	}

	return resp, nil
}

// call tracks one round trip to the service for tracing and metrics.
type call struct {
	ctx      context.Context //nolint: containedctx
	client   *Client
	endpoint string
	start    time.Time
	span     trace.Span
}

func (c *Client) begin(ctx context.Context, endpoint string) (context.Context, *call) {
	ctx, span := c.tracer.Start(ctx, "planner."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("planner.endpoint", endpoint)))

	return ctx, &call{ctx: ctx, client: c, endpoint: endpoint, start: time.Now(), span: span}
}

func (cl *call) end(outcome string) {
	cl.span.SetAttributes(attribute.String("planner.outcome", outcome))
	if outcome != "ok" {
		cl.span.SetStatus(codes.Error, outcome)
	}
	cl.span.End()
	cl.client.instruments.ObserveRemoteCall(cl.ctx, cl.endpoint, outcome, time.Since(cl.start))
}

// errorFromBody turns a non-2xx answer into a semantic error. A JSON body
// with an "error" field is a rejection carrying the service's message;
// anything else means the service is unusable.
func errorFromBody(resp *http.Response, fallback string) error {
	b, _ := readLimited(resp.Body, maxJSONSize)

	var env envelope[json.RawMessage]
	if err := json.Unmarshal(b, &env); err == nil && env.Error != "" {
		return serrors.With(serrors.ErrRejected, "%s", env.Error)
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return serrors.With(serrors.ErrRejected, "%s", fallback)
	}

	return serrors.Wrap(serrors.ErrUnavailable,
		fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))), "%s", UnavailableMessage)
}

func rejected(msg, fallback string) error {
	if msg == "" {
		msg = fallback
	}

	return serrors.With(serrors.ErrRejected, "%s", msg)
}

func outcomeOf(err error) string {
	if errors.Is(err, serrors.ErrRejected) {
		return "rejected"
	}

	return "unavailable"
}

var errTooLarge = errors.New("response too large")

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if int64(len(b)) > limit {
		return nil, errTooLarge
	}

	return b, nil
}

func filenameOf(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}

	return params["filename"]
}
