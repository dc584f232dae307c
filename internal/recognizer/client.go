// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

// Package recognizer is the HTTP client for the external face-recognition
// service that turns camera frames into employee sightings. Rollcall only
// drives enrollment and health checks here; the recognition results come
// back through the ingest endpoints.
//
// All calls pass a token-bucket rate limiter and a circuit breaker, so a
// slow or dead AI service cannot stall the write path or pile up goroutines.
package recognizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/rollcall-hq/rollcall/internal/config"
	"github.com/rollcall-hq/rollcall/internal/logging"
	"github.com/rollcall-hq/rollcall/internal/metrics"
)

const breakerName = "recognizer"

// ErrDisabled is returned when the recognizer integration is turned off.
var ErrDisabled = errors.New("recognizer: integration disabled")

// EnrollRequest asks the recognition service to learn one employee's face.
type EnrollRequest struct {
	CompanyID  string `json:"companyId"`
	EmployeeID string `json:"employeeId"`
	PhotoRef   string `json:"photoRef"`
}

// EnrollResult reports the outcome of an enrollment call.
type EnrollResult struct {
	Enrolled bool   `json:"enrolled"`
	FaceID   string `json:"faceId,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Client calls the face-recognition service with circuit breaker and
// rate-limit protection.
type Client struct {
	baseURL string
	apiKey  string
	enabled bool

	httpClient *http.Client
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[[]byte]
}

// New creates a recognizer client from config. The breaker opens after a 60%
// failure rate over at least 10 requests and probes again after 2 minutes.
func New(cfg *config.RecognizerConfig) *Client {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	burst := int(cfg.RatePerSecond)
	if burst < 1 {
		burst = 1
	}

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("recognizer circuit opening")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("recognizer circuit state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Client{
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		enabled:    cfg.Enabled,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst),
		cb:         cb,
	}
}

// Enabled reports whether the integration is active.
func (c *Client) Enabled() bool {
	return c.enabled
}

// Ping verifies the recognition service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.call(ctx, "ping", http.MethodGet, "/health", nil)
	return err
}

// Enroll registers an employee's reference photo with the recognition
// service so future camera sightings can be matched to them.
func (c *Client) Enroll(ctx context.Context, req *EnrollRequest) (*EnrollResult, error) {
	raw, err := c.call(ctx, "enroll", http.MethodPost, "/v1/faces", req)
	if err != nil {
		return nil, err
	}
	var result EnrollResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("recognizer: failed to decode enroll response: %w", err)
	}
	return &result, nil
}

// Unenroll removes an employee's face from the recognition service.
func (c *Client) Unenroll(ctx context.Context, companyID, employeeID string) error {
	path := fmt.Sprintf("/v1/faces/%s/%s", companyID, employeeID)
	_, err := c.call(ctx, "unenroll", http.MethodDelete, path, nil)
	return err
}

// call runs one request through the limiter and the breaker, recording
// metrics per operation.
func (c *Client) call(ctx context.Context, operation, method, path string, body interface{}) ([]byte, error) {
	if !c.enabled {
		return nil, ErrDisabled
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("recognizer: rate limit wait: %w", err)
	}

	raw, err := c.cb.Execute(func() ([]byte, error) {
		return c.do(ctx, method, path, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecognizerRequests.WithLabelValues(operation, "rejected").Inc()
			logging.Warn().Err(err).Str("operation", operation).Msg("recognizer request rejected by breaker")
		} else {
			metrics.RecognizerRequests.WithLabelValues(operation, "failure").Inc()
		}
		return nil, err
	}

	metrics.RecognizerRequests.WithLabelValues(operation, "success").Inc()
	return raw, nil
}

// do performs the raw HTTP exchange.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("recognizer: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("recognizer: failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognizer: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("recognizer: failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("recognizer: unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}
	return raw, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
