// Package sms sends text messages through the Twilio Messages API.
//
// The client is nil-safe: when credentials are not configured, NewClient
// returns nil and callers disable SMS-dependent features.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.twilio.com"

// Client is an HTTP client for the Twilio Messages endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accountSID string
	authToken  string
	fromNumber string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a Twilio client with rate limiting. Returns nil if any
// credential is missing (SMS disabled).
func NewClient(accountSID, authToken, fromNumber string, requestsPerMinute int, logger *slog.Logger) *Client {
	if accountSID == "" || authToken == "" || fromNumber == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// messageResponse is the subset of Twilio's create-message response we use.
type messageResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Send delivers one SMS. Any non-2xx response is returned as an error; the
// caller decides whether to retry.
func (c *Client) Send(ctx context.Context, to, body string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.fromNumber)
	form.Set("Body", body)

	u := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	var msg messageResponse
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("decode twilio response (%d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("twilio returned %d (code %d): %s", resp.StatusCode, msg.Code, msg.Message)
	}

	c.logger.Info("SMS sent", "to", to, "sid", msg.SID, "status", msg.Status)
	return nil
}
