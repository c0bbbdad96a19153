// Package directions fetches transit routes from the Google Directions API
// and normalizes them into ordered route legs. The route is fetched exactly
// once, at alert creation; the stored snapshot is never re-queried.
package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/yoohyunk/punctualBE/internal/alert"
)

// ErrNoRoute means the provider returned no usable transit route.
var ErrNoRoute = errors.New("no transit route found")

// Provider returns a transit route between two places, anchored on either a
// desired arrival or a desired departure time.
type Provider interface {
	Route(ctx context.Context, origin, destination string, targetType alert.TargetType, targetTime time.Time) ([]alert.RouteLeg, error)
}

const defaultBaseURL = "https://maps.googleapis.com"

// GoogleClient is the Directions API implementation of Provider.
type GoogleClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewGoogleClient creates a Directions client. Returns nil if apiKey is
// empty (route lookup disabled).
func NewGoogleClient(apiKey string, logger *slog.Logger) *GoogleClient {
	if apiKey == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GoogleClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(5), 1),
		logger:     logger,
	}
}

// directionsResponse is the subset of the Directions payload we consume.
type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Steps []struct {
				TravelMode string `json:"travel_mode"`
				Duration   struct {
					Value int `json:"value"`
				} `json:"duration"`
				Distance struct {
					Text string `json:"text"`
				} `json:"distance"`
				TransitDetails *struct {
					Line struct {
						Name      string `json:"name"`
						ShortName string `json:"short_name"`
					} `json:"line"`
					DepartureStop struct {
						Name string `json:"name"`
					} `json:"departure_stop"`
				} `json:"transit_details"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route fetches a transit route and flattens its steps into route legs.
func (c *GoogleClient) Route(ctx context.Context, origin, destination string, targetType alert.TargetType, targetTime time.Time) ([]alert.RouteLeg, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	params.Set("mode", "transit")
	params.Set("alternatives", "false")
	params.Set("key", c.apiKey)
	anchor := strconv.FormatInt(targetTime.Unix(), 10)
	if targetType == alert.TargetArrival {
		params.Set("arrival_time", anchor)
	} else {
		params.Set("departure_time", anchor)
	}

	u := c.baseURL + "/maps/api/directions/json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions returned %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	var dr directionsResponse
	if err := json.Unmarshal(raw, &dr); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	switch dr.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, ErrNoRoute
	default:
		return nil, fmt.Errorf("directions status %s: %s", dr.Status, dr.ErrorMessage)
	}
	if len(dr.Routes) == 0 || len(dr.Routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	steps := dr.Routes[0].Legs[0].Steps
	legs := make([]alert.RouteLeg, 0, len(steps))
	for _, s := range steps {
		leg := alert.RouteLeg{
			Mode:            alert.ModeWalk,
			DurationSeconds: s.Duration.Value,
			Distance:        s.Distance.Text,
		}
		if s.TravelMode == "TRANSIT" && s.TransitDetails != nil {
			leg.Mode = alert.ModeTransit
			leg.Distance = ""
			leg.LineName = s.TransitDetails.Line.ShortName
			if leg.LineName == "" {
				leg.LineName = s.TransitDetails.Line.Name
			}
			leg.DepartureStop = s.TransitDetails.DepartureStop.Name
		}
		legs = append(legs, leg)
	}
	if len(legs) == 0 {
		return nil, ErrNoRoute
	}

	c.logger.Info("Route fetched", "origin", origin, "destination", destination, "legs", len(legs))
	return legs, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
