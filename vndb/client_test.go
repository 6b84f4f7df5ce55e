package vndb

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const statsBody = `{"chars":112000,"producers":15000,"releases":95000,"staff":30000,"tags":2800,"traits":3200,"vn":48000}`

// newTestClient starts a stub server and returns a client pointed at it
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := New(append([]Option{WithBaseURL(server.URL)}, opts...)...)
	return client, server
}

func statsHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, statsBody)
}

func TestNewDefaults(t *testing.T) {
	client := New()
	assert.Equal(t, DefaultMaxConcurrentRequests, client.MaxConcurrentRequests())
	assert.False(t, client.HasToken())
	assert.Equal(t, DefaultBaseURL, client.state.baseURL)

	client = New(WithMaxConcurrentRequests(0))
	assert.Equal(t, 10, client.MaxConcurrentRequests())

	client = NewWithToken("abc", WithMaxConcurrentRequests(3))
	assert.True(t, client.HasToken())
	assert.Equal(t, 3, client.MaxConcurrentRequests())
}

func TestRequestHeaders(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		wantAuth  string
		wantAgent string
	}{
		{name: "anonymous", wantAgent: DefaultUserAgent},
		{name: "token", opts: []Option{WithToken("abc-123")}, wantAuth: "Token abc-123", wantAgent: DefaultUserAgent},
		{name: "custom agent", opts: []Option{WithUserAgent("vn-bot/1.0")}, wantAgent: "vn-bot/1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got http.Header
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				_, _ = io.WriteString(w, `{"results":[],"more":false}`)
			}, tt.opts...)

			_, err := client.Post().Release().Send(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.wantAuth, got.Get("Authorization"))
			assert.Equal(t, tt.wantAgent, got.Get("User-Agent"))
			assert.Equal(t, "application/json", got.Get("Content-Type"))
			assert.Equal(t, "application/json", got.Get("Accept"))
		})
	}
}

func TestGetHasNoContentType(t *testing.T) {
	var contentType, method, path string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		method = r.Method
		path = r.URL.Path
		statsHandler(w, r)
	})

	stats, err := client.Get().Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(48000), stats.VN)
	assert.Equal(t, "", contentType)
	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, "/stats", path)
}

func TestRequestErrors(t *testing.T) {
	t.Run("status with body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Invalid filter", http.StatusBadRequest)
		})

		_, err := client.Post().Release().Filters(MustQueryFilter(`["nope"]`)).Send(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRequestFailed)

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
		assert.Equal(t, "Invalid filter", reqErr.Reason)
		assert.Equal(t, "[400] Invalid filter", err.Error())
	})

	t.Run("status without body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.Get().Schema(context.Background())
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.True(t, reqErr.IsNotFound())
		assert.Equal(t, "Not Found", reqErr.Reason)
	})

	t.Run("throttled", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.Get().Stats(context.Background())
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.True(t, reqErr.IsRateLimited())
	})

	t.Run("malformed body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"chars":`)
		})

		_, err := client.Get().Stats(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrJSON)
		assert.NotErrorIs(t, err, ErrRequestFailed)
	})

	t.Run("invalid id in body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"results":[{"id":"v1"}],"more":false}`)
		})

		_, err := client.Post().Release().Send(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrJSON)
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(statsHandler))
		server.Close()
		client := New(WithBaseURL(server.URL))

		_, err := client.Get().Stats(context.Background())
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, 0, reqErr.StatusCode)
	})
}

func TestAuthInfo(t *testing.T) {
	t.Run("without token", func(t *testing.T) {
		var hits atomic.Int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		})

		_, err := client.Get().AuthInfo(context.Background())
		assert.ErrorIs(t, err, ErrTokenNeeded)
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("with token", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/authinfo", r.URL.Path)
			assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
			_, _ = io.WriteString(w, `{"id":"u2","username":"yorhel","permissions":["listread"]}`)
		}, WithToken("secret"))

		info, err := client.Get().AuthInfo(context.Background())
		require.NoError(t, err)
		assert.Equal(t, UserID("u2"), info.ID)
		assert.True(t, info.Can(PermissionListRead))
		assert.False(t, info.Can(PermissionListWrite))
	})
}

func TestConcurrencyCap(t *testing.T) {
	var inFlight, peak atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		inFlight.Add(-1)
		statsHandler(w, r)
	}, WithMaxConcurrentRequests(3))

	var g errgroup.Group
	for range 10 {
		g.Go(func() error {
			_, err := client.Get().Stats(context.Background())
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Positive(t, peak.Load())
}

func TestPacingDelay(t *testing.T) {
	const delay = 150 * time.Millisecond
	client, _ := newTestClient(t, statsHandler, WithMaxConcurrentRequests(1), WithDelay(delay))
	ctx := context.Background()

	start := time.Now()
	_, err := client.Get().Stats(ctx)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), delay, "first caller must not wait for its own delay")

	_, err = client.Get().Stats(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestCancelWhileWaitingForPermit(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			<-release
		}
		statsHandler(w, r)
	}, WithMaxConcurrentRequests(1))

	first := make(chan error, 1)
	go func() {
		_, err := client.Get().Stats(context.Background())
		first <- err
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Get().Stats(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), calls.Load())

	close(release)
	require.NoError(t, <-first)

	_, err = client.Get().Stats(context.Background())
	assert.NoError(t, err)
}

func TestCloseWhileWaitingForPermit(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			<-release
		}
		statsHandler(w, r)
	}, WithMaxConcurrentRequests(1))

	first := make(chan error, 1)
	go func() {
		_, err := client.Get().Stats(context.Background())
		first <- err
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	queued := make(chan error, 1)
	get := client.Get()
	go func() {
		_, err := get.Stats(context.Background())
		queued <- err
	}()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, client.Close())
	close(release)

	require.NoError(t, <-first)
	assert.ErrorIs(t, <-queued, ErrDisconnected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTimeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/schema" {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		statsHandler(w, r)
	}, WithTimeout(50*time.Millisecond), WithMaxConcurrentRequests(1))

	_, err := client.Get().Schema(context.Background())
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, reqErr.IsTimeout())

	// the permit came back
	_, err = client.Get().Stats(context.Background())
	assert.NoError(t, err)
}

func TestRateLimit(t *testing.T) {
	client, _ := newTestClient(t, statsHandler, WithRateLimit(rate.Every(50*time.Millisecond), 1))

	start := time.Now()
	for range 3 {
		_, err := client.Get().Stats(context.Background())
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestDisconnectedAfterClose(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		statsHandler(w, r)
	})

	get := client.Get()
	pending := client.Post().VisualNovel().Fields(VisualNovelTitleField)
	require.NoError(t, client.Close())

	_, err := get.Stats(context.Background())
	assert.ErrorIs(t, err, ErrDisconnected)

	_, err = pending.Send(context.Background())
	assert.ErrorIs(t, err, ErrDisconnected)

	_, err = client.Post().Tag().Send(context.Background())
	assert.ErrorIs(t, err, ErrDisconnected)

	assert.Equal(t, int32(0), hits.Load())
}

func TestDisconnectedAfterCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(statsHandler))
	t.Cleanup(server.Close)

	get := func() GetHandle {
		return New(WithBaseURL(server.URL)).Get()
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		_, err := get.Stats(context.Background())
		return errors.Is(err, ErrDisconnected)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFindReleaseEndToEnd(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/release", r.URL.Path)

		var body map[string]json.RawMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.JSONEq(t, `["id","=","r80"]`, string(body["filters"]))

		var fields string
		assert.NoError(t, json.Unmarshal(body["fields"], &fields))
		assert.ElementsMatch(t, []string{"title", "alttitle"}, strings.Split(fields, ","))

		_, _ = io.WriteString(w, `{"results":[{"id":"r80","title":"Ever17 -the out of infinity-","alttitle":null}],"more":false}`)
	})

	resp, err := client.FindRelease("r80").
		Fields(ReleaseTitle, ReleaseAltTitle).
		Send(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	release := resp.Results[0]
	assert.Equal(t, ReleaseID("r80"), release.ID)
	require.NotNil(t, release.Title)
	assert.Equal(t, "Ever17 -the out of infinity-", *release.Title)
	assert.Nil(t, release.AltTitle)
	assert.False(t, resp.More)
}

func TestResultsClampedOnWire(t *testing.T) {
	var results json.RawMessage
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		results = body["results"]
		_, _ = io.WriteString(w, `{"results":[],"more":true}`)
	})

	resp, err := client.SearchVisualNovel("ever17").Results(250).Send(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "100", string(results))
	assert.True(t, resp.More)
}

func TestRawQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ulist", r.URL.Path)
		_, _ = io.WriteString(w, `{"results":[{"id":"v17","vote":90}],"more":false}`)
	})

	resp, err := client.Post().Raw(EndpointUList).User("u2").RawFields("vote").Send(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.JSONEq(t, `{"id":"v17","vote":90}`, string(resp.Results[0]))
}
