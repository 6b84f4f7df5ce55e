package vndb

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	token          Token
	maxConcurrent  int
	delay          time.Duration
	timeout        time.Duration
	userAgent      string
	baseURL        string
	httpClient     *http.Client
	logger         zerolog.Logger
	metrics        *Metrics
	limiter        *rate.Limiter
	tracerProvider trace.TracerProvider
}

func defaultOptions() clientOptions {
	return clientOptions{
		maxConcurrent: DefaultMaxConcurrentRequests,
		baseURL:       DefaultBaseURL,
		logger:        zerolog.Nop(),
	}
}

// WithToken sets the API token sent as "Authorization: Token <token>"
func WithToken(token string) Option {
	return func(o *clientOptions) {
		o.token = Token(token)
	}
}

// WithMaxConcurrentRequests bounds the number of requests in flight.
// Zero or a negative value keeps the default of 10.
func WithMaxConcurrentRequests(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.maxConcurrent = n
		}
	}
}

// WithDelay holds each concurrency permit for d after its response arrives
func WithDelay(d time.Duration) Option {
	return func(o *clientOptions) {
		o.delay = d
	}
}

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithBaseURL points the client at another origin, e.g. a test server
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithLogger sets the logger used for request debug output
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithMetrics records request metrics on m
func WithMetrics(m *Metrics) Option {
	return func(o *clientOptions) {
		o.metrics = m
	}
}

// WithRateLimit adds a token bucket in front of the concurrency gate.
// It is applied in addition to WithDelay, not instead of it.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(o *clientOptions) {
		if limit > 0 {
			o.limiter = rate.NewLimiter(limit, max(burst, 1))
		}
	}
}

// WithTracerProvider traces each request with a client span
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *clientOptions) {
		o.tracerProvider = tp
	}
}
