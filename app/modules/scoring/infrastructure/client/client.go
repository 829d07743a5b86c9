package scoringclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 4.0
	breakerTripAfter = 5
	breakerCooldown  = 30 * time.Second
)

// Config configures the scoring API client.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	// RateLimit caps requests per second across every query.
	RateLimit float64
}

// Client queries the remote scoring service over GraphQL. Requests are paced
// and pass through a circuit breaker so an unreachable service fails fast.
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
	logger   *slog.Logger
}

// New creates a client for cfg.Endpoint.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if logger == nil {
		logger = slog.Default()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "scoring-api",
		Timeout: breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfter
		},
		IsSuccessful: func(err error) bool {
			// Payload problems are not an outage.
			return err == nil || errors.Is(err, shared.ErrData)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Scoring API circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Client{
		endpoint: cfg.Endpoint,
		http:     &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		breaker:  breaker,
		logger:   logger,
	}
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do posts a query and decodes its data member into out. Transport failures
// are NetworkErrors; unexpected payloads are DataErrors.
func (c *Client) do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &shared.NetworkError{Endpoint: c.endpoint, Err: err}
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.post(ctx, operation, query, variables, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &shared.NetworkError{Endpoint: c.endpoint, Err: err}
	}
	return err
}

func (c *Client) post(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode %s query: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &shared.NetworkError{Endpoint: c.endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &shared.NetworkError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &shared.NetworkError{Endpoint: c.endpoint, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &shared.NetworkError{
			Endpoint: c.endpoint,
			Err:      fmt.Errorf("%s: status %d: %s", operation, resp.StatusCode, strings.TrimSpace(string(payload))),
		}
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return shared.DataErrorf("%s: decode response: %v", operation, err)
	}
	if len(env.Errors) > 0 {
		msgs := make([]string, len(env.Errors))
		for i, e := range env.Errors {
			msgs[i] = e.Message
		}
		return shared.DataErrorf("%s: %s", operation, strings.Join(msgs, "; "))
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return shared.DataErrorf("%s: empty data", operation)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return shared.DataErrorf("%s: decode data: %v", operation, err)
	}

	c.logger.DebugContext(ctx, "Scoring API query completed", slog.String("operation", operation))
	return nil
}
