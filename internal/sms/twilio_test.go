package sms

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewClientRequiresCredentials(t *testing.T) {
	assert.Nil(t, NewClient("", "token", "+15550001111", 60, testLogger()))
	assert.Nil(t, NewClient("AC123", "", "+15550001111", 60, testLogger()))
	assert.Nil(t, NewClient("AC123", "token", "", 60, testLogger()))
	assert.NotNil(t, NewClient("AC123", "token", "+15550001111", 60, testLogger()))
}

func TestSend(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotBody string
	var gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotTo = r.PostForm.Get("To")
		gotFrom = r.PostForm.Get("From")
		gotBody = r.PostForm.Get("Body")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM123","status":"queued"}`))
	}))
	defer srv.Close()

	c := NewClient("AC123", "token", "+15550001111", 60, testLogger())
	c.baseURL = srv.URL

	err := c.Send(context.Background(), "+14035551234", "Time to leave!")
	require.NoError(t, err)
	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "AC123", gotUser)
	assert.Equal(t, "token", gotPass)
	assert.Equal(t, "+14035551234", gotTo)
	assert.Equal(t, "+15550001111", gotFrom)
	assert.Equal(t, "Time to leave!", gotBody)
}

func TestSendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":21211,"message":"Invalid 'To' Phone Number"}`))
	}))
	defer srv.Close()

	c := NewClient("AC123", "token", "+15550001111", 60, testLogger())
	c.baseURL = srv.URL

	err := c.Send(context.Background(), "not-a-number", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "21211")
	assert.Contains(t, err.Error(), "Invalid 'To' Phone Number")
}

func TestSendMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	c := NewClient("AC123", "token", "+15550001111", 60, testLogger())
	c.baseURL = srv.URL

	err := c.Send(context.Background(), "+14035551234", "hi")
	assert.ErrorContains(t, err, "decode twilio response")
}

func TestSendCancelledContext(t *testing.T) {
	c := NewClient("AC123", "token", "+15550001111", 60, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Send(ctx, "+14035551234", "hi")
	assert.Error(t, err)
}
