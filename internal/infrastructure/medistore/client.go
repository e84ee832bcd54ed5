// Package medistore is the client of the MediStore REST API and its auth
// service. Every remote problem is normalized to *Failure; precondition
// violations are rejected before any I/O with domain errors.
//
// Quantity changes are keyed by cart line id while removals are keyed by the
// catalog (medicine) id. The method signatures keep the two apart.
package medistore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/medistore/storefront/internal/domain/identity"
	"github.com/medistore/storefront/internal/infrastructure/telemetry"
)

// Client talks to the remote API on behalf of the credential found in the
// request context. Safe for concurrent use.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *telemetry.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics records every call on m
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithHTTPClient replaces the HTTP client; its timeout is left untouched
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client with the given configuration
func NewClient(config ClientConfig, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope is the union of the API's two response shapes:
// {success, message, data} and {data, error}.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

// call describes one remote request
type call struct {
	op     string
	method string
	url    string
	body   any
	attrs  []attribute.KeyValue
}

func (c *Client) api(path string) string {
	return c.config.BaseURL + path
}

// do performs the call and decodes the API envelope. out, when non-nil,
// receives the envelope data.
func (c *Client) do(ctx context.Context, cl call, out any) (*envelope, error) {
	var env *envelope
	err := c.exchange(ctx, cl, func(status int, raw []byte) error {
		var err error
		env, err = decodeEnvelope(cl.op, status, raw, out)
		return err
	})
	return env, err
}

// doRaw performs the call for endpoints that answer without the envelope
func (c *Client) doRaw(ctx context.Context, cl call, out *json.RawMessage) error {
	return c.exchange(ctx, cl, func(status int, raw []byte) error {
		if status < 200 || status >= 300 {
			return remoteStatusFailure(cl.op, status, raw)
		}
		*out = append(json.RawMessage(nil), raw...)
		return nil
	})
}

// exchange sends the request inside a client span and hands the response to
// handle. Every call is counted and timed.
func (c *Client) exchange(ctx context.Context, cl call, handle func(status int, raw []byte) error) error {
	ctx, span := telemetry.StartClientSpan(ctx, cl.method, cl.op, cl.attrs...)
	defer span.End()
	start := time.Now()

	status, raw, err := c.send(ctx, cl)
	if status > 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err == nil {
		err = handle(status, raw)
	}

	outcome := "ok"
	if f, ok := AsFailure(err); ok {
		outcome = string(f.Kind)
	} else if err != nil {
		outcome = "error"
	}
	c.metrics.ObserveRemoteCall(cl.op, outcome, time.Since(start))

	if err != nil {
		telemetry.RecordError(span, err)
		c.logger.Warn("remote call failed",
			zap.String("operation", cl.op),
			zap.String("outcome", outcome),
			zap.Int("status", status),
			zap.Error(err),
		)
		return err
	}
	telemetry.SetOK(span)
	c.logger.Debug("remote call",
		zap.String("operation", cl.op),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
	)
	return nil
}

func (c *Client) send(ctx context.Context, cl call) (int, []byte, error) {
	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return 0, nil, fmt.Errorf("medistore %s: encode request: %w", cl.op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, cl.url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("medistore %s: failed to create request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred := identity.CredentialFromContext(ctx); !cred.Empty() {
		req.Header.Set("Cookie", string(cred))
	}
	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &Failure{Kind: KindTransport, Operation: cl.op, Message: "Something went wrong", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, &Failure{Kind: KindTransport, Operation: cl.op, Status: resp.StatusCode, Message: "Something went wrong", Err: err}
	}
	return resp.StatusCode, raw, nil
}

// remoteStatusFailure builds the failure for a non-2xx answer, preferring
// the message the API sent.
func remoteStatusFailure(op string, status int, raw []byte) *Failure {
	var env envelope
	msg := ""
	if err := json.Unmarshal(raw, &env); err == nil {
		msg = firstNonEmpty(env.Message, errorMessage(env.Error))
	}
	if msg == "" {
		msg = requestFailedMessage(status)
	}
	return &Failure{Kind: KindRemote, Operation: op, Status: status, Message: msg}
}

func decodeEnvelope(op string, status int, raw []byte, out any) (*envelope, error) {
	if status < 200 || status >= 300 {
		return nil, remoteStatusFailure(op, status, raw)
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) == 0 {
		return &env, nil
	}
	if decodeErr := json.Unmarshal(raw, &env); decodeErr != nil {
		return nil, &Failure{Kind: KindDecode, Operation: op, Status: status, Message: "Malformed response from server", Err: decodeErr}
	}
	if env.Success != nil && !*env.Success {
		return nil, &Failure{Kind: KindRemote, Operation: op, Status: status,
			Message: firstNonEmpty(env.Message, errorMessage(env.Error), "Request failed")}
	}
	if msg := errorMessage(env.Error); msg != "" {
		return nil, &Failure{Kind: KindRemote, Operation: op, Status: status, Message: msg}
	}

	if out != nil && !isNull(env.Data) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &Failure{Kind: KindDecode, Operation: op, Status: status, Message: "Malformed response from server", Err: err}
		}
	}
	return &env, nil
}

// errorMessage extracts a message from the error member, which may be
// null, a string or an object with a message.
func errorMessage(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	if string(raw) == "false" {
		return ""
	}
	return "Request failed"
}

// explicitNull reports a member present with the literal null
func explicitNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
