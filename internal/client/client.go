package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/frfront/internal/config"
	"github.com/your-org/frfront/internal/observability"
)

const (
	RequestIDHeader  = "X-Request-ID"
	maxResponseBytes = 256 << 20
	maxLoggedBody    = 2 << 10
)

// Client calls the facial recognition service. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	logBodies bool
	maxBody   int64
	logger    *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the transport built from the timeouts in the config.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func New(cfg config.APIConfig, opts ...Option) (*Client, error) {
	raw := config.NormalizeBaseURL(cfg.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", raw)
	}

	c := &Client{
		base:      base,
		http:      newHTTPClient(cfg),
		userAgent: cfg.UserAgent,
		logBodies: cfg.LogBodies,
		maxBody:   maxResponseBytes,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// newHTTPClient maps the connect/read/write timeouts onto net/http: the dial
// and TLS handshake get the connect timeout, waiting for response headers
// gets the read timeout, and the whole exchange is bounded by their sum.
func newHTTPClient(cfg config.APIConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = cfg.ConnectTimeout
	transport.ResponseHeaderTimeout = cfg.ReadTimeout

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.ConnectTimeout + cfg.ReadTimeout + cfg.WriteTimeout,
	}
}

// BaseURL returns the normalised service URL.
func (c *Client) BaseURL() string { return c.base.String() }

type call struct {
	endpoint Endpoint
	params   map[string]string // unescaped path values
	query    url.Values
	fields   map[string]string
	file     *File
}

func (c *Client) invoke(ctx context.Context, cl call, out any) error {
	body, _, err := c.exchange(ctx, cl)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		observability.UpstreamErrors.WithLabelValues(cl.endpoint.Name, "decode").Inc()
		return &TransportError{Operation: cl.endpoint.Name, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) exchange(ctx context.Context, cl call) ([]byte, http.Header, error) {
	op := cl.endpoint.Name

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return nil, nil, &TransportError{Operation: op, Err: err}
	}
	requestID := req.Header.Get(RequestIDHeader)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.UpstreamErrors.WithLabelValues(op, "transport").Inc()
		c.logger.Warn("upstream request failed",
			"operation", op,
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", requestID,
			"error", err,
		)
		return nil, nil, &TransportError{Operation: op, Err: err}
	}
	defer resp.Body.Close()

	// one byte past the limit tells a full body from a cut one
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err == nil && int64(len(body)) > c.maxBody {
		err = fmt.Errorf("response exceeds %d bytes", c.maxBody)
	}
	duration := time.Since(start)
	observability.UpstreamRequestDuration.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Observe(duration.Seconds())

	c.logger.Debug("upstream request",
		"operation", op,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", duration.String(),
		"bytes", len(body),
		"request_id", requestID,
	)
	if c.logBodies {
		c.logger.Debug("upstream response body", "operation", op, "request_id", requestID, "body", truncate(body))
	}

	if err != nil {
		observability.UpstreamErrors.WithLabelValues(op, "transport").Inc()
		return nil, nil, &TransportError{Operation: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observability.UpstreamErrors.WithLabelValues(op, "status").Inc()
		return nil, nil, newAPIError(op, resp, body)
	}
	return body, resp.Header, nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	escaped := make(map[string]string, len(cl.params))
	for k, v := range cl.params {
		escaped[k] = url.PathEscape(v)
	}
	path, err := cl.endpoint.Expand(escaped)
	if err != nil {
		return nil, err
	}
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	target := c.base.ResolveReference(ref)
	if len(cl.query) > 0 {
		target.RawQuery = cl.query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	if cl.endpoint.Multipart() {
		buf, ct, err := encodeMultipart(cl.endpoint.Fields, cl.fields, cl.endpoint.FilePart, cl.file)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	}

	req, err := http.NewRequestWithContext(ctx, cl.endpoint.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestIDFrom(ctx))
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

type requestIDKey struct{}

// WithRequestID makes the next calls made with ctx reuse id instead of
// generating a fresh one, so a screen action and its upstream calls share it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestIDFrom(ctx context.Context) string {
	if id := RequestIDFromContext(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func truncate(body []byte) string {
	if len(body) <= maxLoggedBody {
		return string(bytes.ToValidUTF8(body, []byte("?")))
	}
	return string(bytes.ToValidUTF8(body[:maxLoggedBody], []byte("?"))) + "…"
}
