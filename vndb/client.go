package vndb

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"
	"weak"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	// Version is reported in the default user agent
	Version = "0.4.0"
	// DefaultMaxConcurrentRequests is the concurrency cap of a new client
	DefaultMaxConcurrentRequests = 10

	tracerName = "github.com/s0up4200/govndb/vndb"
)

// DefaultUserAgent is sent when no custom user agent is configured
var DefaultUserAgent = "govndb/" + Version

// Token is an API token
type Token string

// Header renders the Authorization header value
func (t Token) Header() string {
	return "Token " + string(t)
}

// Client is a handle on the kana API. It owns the concurrency gate and the
// connection settings; the handles returned by Get and Post only refer to it
// weakly and fail with ErrDisconnected once it is closed or collected.
type Client struct {
	state *clientState
}

type clientState struct {
	sem        *semaphore.Weighted
	capacity   int
	token      Token
	delay      time.Duration
	timeout    time.Duration
	userAgent  string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	metrics    *Metrics
	limiter    *rate.Limiter
	tracer     trace.Tracer
	closed     atomic.Bool
	counts     resourceCounts
}

// New creates a client. Without options it allows 10 concurrent requests
// and sends no token, delay, timeout or custom user agent.
func New(opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	tp := o.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Client{state: &clientState{
		sem:        semaphore.NewWeighted(int64(o.maxConcurrent)),
		capacity:   o.maxConcurrent,
		token:      o.token,
		delay:      o.delay,
		timeout:    o.timeout,
		userAgent:  o.userAgent,
		baseURL:    strings.TrimRight(o.baseURL, "/"),
		httpClient: httpClient,
		logger:     o.logger.With().Str("component", "vndb").Logger(),
		metrics:    o.metrics,
		limiter:    o.limiter,
		tracer:     tp.Tracer(tracerName),
	}}
}

// NewWithToken creates a client that authenticates with token
func NewWithToken(token string, opts ...Option) *Client {
	return New(append([]Option{WithToken(token)}, opts...)...)
}

// Close disconnects every handle derived from the client. Requests already
// holding a permit finish normally.
func (c *Client) Close() error {
	c.state.closed.Store(true)
	return nil
}

// HasToken reports whether the client authenticates its requests
func (c *Client) HasToken() bool {
	return c.state.token != ""
}

// MaxConcurrentRequests returns the size of the concurrency gate
func (c *Client) MaxConcurrentRequests() int {
	return c.state.capacity
}

// Get returns the handle for the GET endpoints
func (c *Client) Get() GetHandle {
	return GetHandle{handle: c.handle()}
}

// Post returns the handle for the POST query endpoints
func (c *Client) Post() PostHandle {
	return PostHandle{handle: c.handle()}
}

func (c *Client) handle() handle {
	return handle{ref: weak.Make(c.state)}
}

// handle is a non-owning reference to a client's state
type handle struct {
	ref weak.Pointer[clientState]
}

func (h handle) upgrade() (*clientState, error) {
	s := h.ref.Value()
	if s == nil || s.closed.Load() {
		return nil, ErrDisconnected
	}
	return s, nil
}
