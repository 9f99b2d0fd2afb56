//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/boombim-admin/internal/config"
	"github.com/oshokin/boombim-admin/internal/domain/alarm"
	"github.com/oshokin/boombim-admin/internal/domain/auth"
	"github.com/oshokin/boombim-admin/internal/domain/failure"
	"github.com/oshokin/boombim-admin/internal/logger"
	"github.com/oshokin/boombim-admin/internal/version"
)

const (
	// LoginPath is the administrator login endpoint.
	LoginPath = "/api/admin/login"
	// SendAlarmPath is the broadcast endpoint.
	SendAlarmPath = "/api/alarm/send"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// TokenSource provides the bearer token for outgoing requests.
type TokenSource interface {
	Get(ctx context.Context) (string, bool)
}

// UnauthorizedHandler reacts to a 401 response from any call.
type UnauthorizedHandler func(ctx context.Context)

// APIError is the error body returned by the backend for non-2xx responses.
type APIError struct {
	Status  int    `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

// Client wraps a resty client bound to the admin API.
type Client struct {
	// http is the underlying resty client with the request and response hooks installed.
	http *resty.Client
	// tokens supplies the bearer token, nil means requests are never authorized.
	tokens TokenSource
	// userAgent is sent with every request.
	userAgent string
	// timeout bounds a single call including reading the body.
	timeout time.Duration

	// mu guards subscribers and nextID.
	mu          sync.Mutex
	subscribers map[uint64]UnauthorizedHandler
	nextID      uint64
}

// Option configures client behaviour.
type Option func(*Client)

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// anonymousKey marks a request context that must not carry the bearer token.
type anonymousKey struct{}

var (
	// errBaseURLRequired is returned when the base URL is missing.
	errBaseURLRequired = errors.New("base url must be provided")

	//nolint:gochecknoglobals // Shared codec configuration.
	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// New creates a client for baseURL that reads bearer tokens from tokens.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	c := &Client{
		tokens:      tokens,
		userAgent:   defaultUserAgent(),
		timeout:     config.DefaultTimeout,
		subscribers: make(map[uint64]UnauthorizedHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	transportLogger := logger.Logger().Desugar().WithOptions(logger.WithLevel(zapcore.WarnLevel)).Sugar()

	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(c.timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", c.userAgent).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetLogger(transportLogger.Named("http")).
		OnBeforeRequest(c.decorateRequest).
		OnAfterResponse(c.inspectResponse)

	return c, nil
}

// OnUnauthorized registers handler for 401 responses and returns a function removing it.
func (c *Client) OnUnauthorized(handler UnauthorizedHandler) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.subscribers[id] = handler

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		delete(c.subscribers, id)
	}
}

// Login exchanges credentials for a token pair. The request never carries a bearer token.
func (c *Client) Login(ctx context.Context, credentials auth.Credentials) (*auth.TokenPair, error) {
	ctx = context.WithValue(ctx, anonymousKey{}, true)

	var pair auth.TokenPair
	if err := c.post(ctx, LoginPath, credentials, &pair, failure.MessageLogin); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &pair, nil
}

// SendAlarm submits a broadcast and returns the delivery summary.
func (c *Client) SendAlarm(ctx context.Context, request *alarm.Request) (*alarm.Result, error) {
	var result alarm.Result
	if err := c.post(ctx, SendAlarmPath, request, &result, failure.MessageSend); err != nil {
		return nil, fmt.Errorf("send alarm: %w", err)
	}

	return &result, nil
}

// post sends body to path and decodes a successful response into result.
// fallback is shown when the backend rejects the call without a message.
func (c *Client) post(ctx context.Context, path string, body, result any, fallback string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		logger.WarnKV(ctx, "Request failed", "path", path, "error", err)

		return failure.NetworkUnavailable(err)
	}

	status := resp.StatusCode()
	logger.DebugKV(ctx, "Response received", "path", path, "status", status, "duration", resp.Time().String())

	if status == http.StatusUnauthorized {
		apiErr, _ := decodeAPIError(resp.Body())

		return failure.Unauthorized(apiErr.Code, apiErr.Message, apiErr.Time)
	}

	if !resp.IsSuccess() {
		apiErr, ok := decodeAPIError(resp.Body())
		if !ok {
			return failure.NetworkUnavailable(fmt.Errorf("unexpected status %d without error body", status))
		}

		return failure.ServerRejected(status, apiErr.Code, apiErr.Message, apiErr.Time, fallback)
	}

	if err = json.Unmarshal(resp.Body(), result); err != nil {
		return failure.NetworkUnavailable(fmt.Errorf("decode response: %w", err))
	}

	return nil
}

// decorateRequest attaches the request id and, unless the call is anonymous, the bearer token.
func (c *Client) decorateRequest(_ *resty.Client, r *resty.Request) error {
	r.SetHeader(RequestIDHeader, uuid.NewString())

	ctx := r.Context()
	if anonymous, _ := ctx.Value(anonymousKey{}).(bool); anonymous || c.tokens == nil {
		return nil
	}

	if token, ok := c.tokens.Get(ctx); ok {
		r.SetAuthToken(token)
	}

	return nil
}

// inspectResponse notifies subscribers when the server reports the token as invalid.
func (c *Client) inspectResponse(_ *resty.Client, resp *resty.Response) error {
	if resp.StatusCode() != http.StatusUnauthorized {
		return nil
	}

	ctx := resp.Request.Context()
	logger.WarnKV(ctx, "Server rejected the session", "path", resp.Request.URL)

	c.emitUnauthorized(ctx)

	return nil
}

// emitUnauthorized calls every subscriber outside the lock.
func (c *Client) emitUnauthorized(ctx context.Context) {
	c.mu.Lock()
	handlers := make([]UnauthorizedHandler, 0, len(c.subscribers))

	for _, h := range c.subscribers {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(ctx)
	}
}

// decodeAPIError parses a backend error body. ok is false for bodies without any known field.
func decodeAPIError(body []byte) (APIError, bool) {
	var apiErr APIError
	if len(body) == 0 {
		return apiErr, false
	}

	if err := json.Unmarshal(body, &apiErr); err != nil {
		return APIError{}, false
	}

	ok := apiErr.Message != "" || apiErr.Code != 0 || apiErr.Status != 0

	return apiErr, ok
}

// defaultUserAgent names the console build and, when detectable, the local actor.
func defaultUserAgent() string {
	ua := version.UserAgent()

	if actor, err := DetectActor(); err == nil {
		ua += " (" + actor.String() + ")"
	}

	return ua
}
