package vndb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// maxReasonSize caps how much of an error body ends up in RequestError.Reason
const maxReasonSize = 4 << 10

// request describes one exchange with the API
type request struct {
	method   string
	endpoint Endpoint
	params   url.Values
	body     any
}

// do performs exactly one HTTP exchange. The concurrency permit it takes is
// returned on every path, after the pacing delay when one is configured.
func (s *clientState) do(ctx context.Context, r request) (_ []byte, err error) {
	requestID := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "vndb "+r.method+" "+r.endpoint.String(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", r.method),
			attribute.String("vndb.endpoint", r.endpoint.String()),
			attribute.String("vndb.request_id", requestID),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	log := s.logger.With().Str("request_id", requestID).Str("endpoint", r.endpoint.String()).Logger()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			s.metrics.recordError(r.endpoint, "rate_limit")
			return nil, &RequestError{Reason: fmt.Sprintf("rate limiter: %v", err), Err: err}
		}
	}

	waitStart := time.Now()
	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.metrics.recordError(r.endpoint, "permit")
		return nil, &RequestError{Reason: fmt.Sprintf("waiting for a request slot: %v", err), Err: err}
	}
	waited := time.Since(waitStart)
	s.metrics.recordPermitWait(waited)
	// Close may have happened while this call was queued
	if s.closed.Load() {
		s.sem.Release(1)
		return nil, ErrDisconnected
	}
	defer s.releasePermit()

	s.metrics.inFlight(r.endpoint, 1)
	defer s.metrics.inFlight(r.endpoint, -1)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := s.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("method", r.method).
		Str("url", req.URL.String()).
		Dur("permit_wait", waited).
		Msg("Making VNDB API request")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.metrics.recordRequest(r.method, r.endpoint, 0, time.Since(start))
		s.metrics.recordError(r.endpoint, "transport")
		return nil, &RequestError{Reason: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	s.metrics.recordRequest(r.method, r.endpoint, resp.StatusCode, elapsed)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if err != nil {
		s.metrics.recordError(r.endpoint, "transport")
		return nil, &RequestError{Reason: fmt.Sprintf("failed to read response body: %v", err), Err: err}
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", elapsed).
		Msg("VNDB API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.metrics.recordError(r.endpoint, "status")
		return nil, &RequestError{StatusCode: resp.StatusCode, Reason: failureReason(resp.StatusCode, body)}
	}

	return body, nil
}

func (s *clientState) newRequest(ctx context.Context, r request) (*http.Request, error) {
	target := r.endpoint.URL(s.baseURL)
	if len(r.params) > 0 {
		target += "?" + r.params.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, newJSONError(err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, &RequestError{Reason: fmt.Sprintf("failed to create request: %v", err), Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", s.token.Header())
	}
	userAgent := s.userAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)

	return req, nil
}

// releasePermit hands the permit back, immediately or once the pacing delay
// has passed. The caller never waits for the delay.
func (s *clientState) releasePermit() {
	if s.delay <= 0 {
		s.sem.Release(1)
		return
	}
	go func() {
		time.Sleep(s.delay)
		s.sem.Release(1)
	}()
}

func failureReason(status int, body []byte) string {
	if len(body) > maxReasonSize {
		body = body[:maxReasonSize]
	}
	reason := strings.TrimSpace(string(body))
	if reason == "" {
		reason = http.StatusText(status)
	}
	return reason
}

// fetch performs r and decodes the JSON response into T
func fetch[T any](ctx context.Context, s *clientState, r request) (T, error) {
	var out T
	body, err := s.do(ctx, r)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		var jsonErr *JSONError
		if errors.As(err, &jsonErr) {
			return out, err
		}
		return out, newJSONError(err)
	}
	return out, nil
}
