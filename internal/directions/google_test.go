package directions

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoohyunk/punctualBE/internal/alert"
)

const sampleDirections = `{
	"status": "OK",
	"routes": [{
		"legs": [{
			"steps": [
				{
					"travel_mode": "WALKING",
					"duration": {"value": 720},
					"distance": {"text": "0.9 km"}
				},
				{
					"travel_mode": "TRANSIT",
					"duration": {"value": 2280},
					"distance": {"text": "12.4 km"},
					"transit_details": {
						"line": {"name": "Dalhousie/Somerset", "short_name": "Route 9"},
						"departure_stop": {"name": "7 Ave SW"}
					}
				}
			]
		}]
	}]
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(t *testing.T, handler http.HandlerFunc) *GoogleClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewGoogleClient("test-key", testLogger())
	c.baseURL = srv.URL
	return c
}

func TestNewGoogleClientRequiresKey(t *testing.T) {
	assert.Nil(t, NewGoogleClient("", testLogger()))
	assert.NotNil(t, NewGoogleClient("key", testLogger()))
}

func TestRoute(t *testing.T) {
	var gotQuery url.Values
	target := time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(sampleDirections))
	})

	legs, err := c.Route(context.Background(), "Home", "University of Calgary", alert.TargetArrival, target)
	require.NoError(t, err)

	assert.Equal(t, "Home", gotQuery.Get("origin"))
	assert.Equal(t, "University of Calgary", gotQuery.Get("destination"))
	assert.Equal(t, "transit", gotQuery.Get("mode"))
	assert.Equal(t, strconv.FormatInt(target.Unix(), 10), gotQuery.Get("arrival_time"))
	assert.Empty(t, gotQuery.Get("departure_time"))

	require.Len(t, legs, 2)
	assert.Equal(t, alert.RouteLeg{
		Mode:            alert.ModeWalk,
		DurationSeconds: 720,
		Distance:        "0.9 km",
	}, legs[0])
	assert.Equal(t, alert.RouteLeg{
		Mode:            alert.ModeTransit,
		DurationSeconds: 2280,
		LineName:        "Route 9",
		DepartureStop:   "7 Ave SW",
	}, legs[1])
}

func TestRouteDepartureAnchor(t *testing.T) {
	var gotQuery url.Values
	target := time.Date(2026, time.March, 9, 8, 10, 0, 0, time.UTC)
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(sampleDirections))
	})

	_, err := c.Route(context.Background(), "Home", "Work", alert.TargetDeparture, target)
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(target.Unix(), 10), gotQuery.Get("departure_time"))
	assert.Empty(t, gotQuery.Get("arrival_time"))
}

func TestRouteLineNameFallback(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "OK",
			"routes": [{"legs": [{"steps": [{
				"travel_mode": "TRANSIT",
				"duration": {"value": 600},
				"transit_details": {
					"line": {"name": "Crowfoot Line", "short_name": ""},
					"departure_stop": {"name": "Tuscany Station"}
				}
			}]}]}]
		}`))
	})

	legs, err := c.Route(context.Background(), "a", "b", alert.TargetArrival, time.Now())
	require.NoError(t, err)
	require.Len(t, legs, 1)
	assert.Equal(t, "Crowfoot Line", legs[0].LineName, "falls back to the full line name")
}

func TestRouteZeroResults(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
	})

	_, err := c.Route(context.Background(), "a", "b", alert.TargetArrival, time.Now())
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestRouteAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "The provided API key is invalid."}`))
	})

	_, err := c.Route(context.Background(), "a", "b", alert.TargetArrival, time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoRoute)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestRouteHTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Route(context.Background(), "a", "b", alert.TargetArrival, time.Now())
	assert.ErrorContains(t, err, "502")
}

func TestRouteEmptyRoutes(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "routes": []}`))
	})

	_, err := c.Route(context.Background(), "a", "b", alert.TargetArrival, time.Now())
	assert.ErrorIs(t, err, ErrNoRoute)
}
