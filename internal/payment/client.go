package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vetcarepro/clinic-api/pkg/circuitbreaker"
	"github.com/vetcarepro/clinic-api/pkg/logger"
	"github.com/vetcarepro/clinic-api/pkg/metrics"
)

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the hosted checkout provider over its JSON API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewClient(cfg ClientConfig, log *logger.Logger, m *metrics.Metrics) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "payment-provider",
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		}),
		logger:  log,
		metrics: m,
	}
}

type providerError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (c *Client) CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	body := map[string]interface{}{
		"amount":         params.Amount,
		"currency":       params.Currency,
		"description":    params.Description,
		"reference":      params.Reference,
		"customer_email": params.CustomerEmail,
		"success_url":    params.SuccessURL,
		"cancel_url":     params.CancelURL,
	}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", body, &session); err != nil {
		c.metrics.ProviderRequests.WithLabelValues("create_session", "error").Inc()
		return nil, err
	}
	c.metrics.ProviderRequests.WithLabelValues("create_session", "success").Inc()
	return &session, nil
}

func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	var session Session
	path := fmt.Sprintf("/v1/checkout/sessions/%s", sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &session); err != nil {
		c.metrics.ProviderRequests.WithLabelValues("retrieve_session", "error").Inc()
		return nil, err
	}
	c.metrics.ProviderRequests.WithLabelValues("retrieve_session", "success").Inc()
	return &session, nil
}

func (c *Client) Refund(ctx context.Context, transactionID string, amount float64) (*Refund, error) {
	body := map[string]interface{}{
		"transaction_id": transactionID,
		"amount":         amount,
	}
	var refund Refund
	if err := c.do(ctx, http.MethodPost, "/v1/refunds", body, &refund); err != nil {
		c.metrics.ProviderRequests.WithLabelValues("refund", "error").Inc()
		return nil, err
	}
	c.metrics.ProviderRequests.WithLabelValues("refund", "success").Inc()
	return &refund, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.breaker.Execute(func() error {
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("failed to marshal request: %w", err)
			}
			reader = bytes.NewReader(raw)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		c.metrics.ProviderLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			return fmt.Errorf("provider request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			var perr providerError
			if err := json.NewDecoder(resp.Body).Decode(&perr); err == nil && perr.Message != "" {
				return fmt.Errorf("provider returned %d: %s", resp.StatusCode, perr.Message)
			}
			return fmt.Errorf("provider returned %d", resp.StatusCode)
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("failed to decode provider response: %w", err)
			}
		}
		return nil
	})
}
