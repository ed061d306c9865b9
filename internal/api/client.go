package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rentadmin/internal/config"
	"rentadmin/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client is the stateless transport boundary to the rental platform REST
// API. It never retries and never caches; every failure is terminal for
// that attempt.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zerolog.Logger

	Users      *UsersService
	Properties *PropertiesService
	Bookings   *BookingsService
}

// New constructs a client from platform config.
func New(cfg config.PlatformConfig, logger *zerolog.Logger) *Client {
	timeout := cfg.RequestTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
	c.Users = &UsersService{client: c}
	c.Properties = &PropertiesService{client: c}
	c.Bookings = &BookingsService{client: c}
	return c
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Message: err.Error(), Err: err}
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return &TransportError{Message: err.Error(), Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(data)))
	if err != nil {
		return &TransportError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, path string, form *Form, out any) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return &TransportError{Message: err.Error(), Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Message: err.Error(), Err: err}
	}
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	requestID := uuid.NewString()
	c.addHeaders(req, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Msg("platform request failed")
		return &TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("platform request")

	if resp.StatusCode >= 300 {
		return c.errorFrom(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err), Err: err}
	}
	return nil
}

func (c *Client) errorFrom(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode == http.StatusUnprocessableEntity {
		var envelope struct {
			Messages map[string][]string `json:"messages"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Messages) > 0 {
			return &ValidationError{Messages: envelope.Messages}
		}
	}

	message := http.StatusText(resp.StatusCode)
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			message = envelope.Error
		} else if envelope.Message != "" {
			message = envelope.Message
		}
	}

	return &TransportError{Status: resp.StatusCode, Message: message}
}

func (c *Client) addHeaders(req *http.Request, requestID string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
}

// outcome maps an operation error to a metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsNotFound(err):
		return "not_found"
	default:
		if _, ok := AsValidation(err); ok {
			return "validation"
		}
		return "error"
	}
}

func track(resource, operation string, err error) {
	metrics.IncAPIRequest(resource, operation, outcome(err))
}
