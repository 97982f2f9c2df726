package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
	"github.com/google/uuid"
)

// BaseURLFunc returns the backend base address. It is consulted on every
// call so configuration changes are picked up without rebuilding the gateway.
type BaseURLFunc func() string

// RequestOptions are the HTTP options of a single call.
//
// Body may be nil (no body), a *Form (sent as multipart/form-data) or any
// value encodable as JSON.
type RequestOptions struct {
	Method string
	Body   any
	Header http.Header
}

// Gateway performs every HTTP call to the backend.
type Gateway struct {
	baseURL    BaseURLFunc
	httpClient *http.Client
	logger     logging.Logger
}

// GatewayOption customizes a Gateway.
type GatewayOption func(*Gateway)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) { g.httpClient = c }
}

// WithLogger sets the logger used for per-call debug records.
func WithLogger(l logging.Logger) GatewayOption {
	return func(g *Gateway) { g.logger = l }
}

// NewGateway builds a Gateway reading its base address from baseURL.
func NewGateway(baseURL BaseURLFunc, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logging.Discard(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Request sends one request to path (relative to the base address) and
// classifies the response:
//
//  1. non-2xx status: *HTTPError;
//  2. DELETE, 204 or a non-JSON content type: nil result, body ignored;
//  3. otherwise the body, which must be valid JSON (else *ParseError).
//
// A non-empty token is sent as "Authorization: Token <token>".
func (g *Gateway) Request(ctx context.Context, path string, opts RequestOptions, token string) (json.RawMessage, error) {
	base := ""
	if g.baseURL != nil {
		base = strings.TrimSpace(g.baseURL())
	}
	if base == "" {
		return nil, ErrConfiguration
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, contentType, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(base, "/")+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	// the body encoding owns Content-Type; multipart must never carry JSON
	req.Header.Del("Content-Type")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.AuthorizationScheme+" "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	started := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Debug(ctx, "api call failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, g.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	g.logger.Debug(ctx, "api call", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	if method == http.MethodDelete || resp.StatusCode == http.StatusNoContent || !isJSON(resp.Header.Get("Content-Type")) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, g.handleRequestError(ctx, err)
	}
	if !json.Valid(data) {
		return nil, &ParseError{Shape: "json", Err: fmt.Errorf("malformed body from %s %s", method, path)}
	}
	return json.RawMessage(data), nil
}

// handleRequestError distinguishes caller cancellation from transport failures.
func (g *Gateway) handleRequestError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("request canceled: %w", ctxErr)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Form:
		if b == nil {
			return nil, "", nil
		}
		return b.encode()
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal body: %w", err)
		}
		return bytes.NewReader(data), common.ContentTypeJSON, nil
	}
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == common.ContentTypeJSON || strings.HasSuffix(mt, "+json")
}

// validator is implemented by every response shape.
type validator interface {
	Validate() error
}

// decode unmarshals raw into a new T and validates it.
func decode[T any, PT interface {
	*T
	validator
}](raw json.RawMessage, shape string) (*T, error) {
	if raw == nil {
		return nil, &ParseError{Shape: shape, Err: fmt.Errorf("empty response")}
	}
	v := PT(new(T))
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, &ParseError{Shape: shape, Err: err}
	}
	if err := v.Validate(); err != nil {
		return nil, &ParseError{Shape: shape, Err: err}
	}
	return (*T)(v), nil
}
