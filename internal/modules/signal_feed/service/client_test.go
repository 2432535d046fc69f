package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(Config{URL: srv.URL, Timeout: time.Second})
}

func TestFetch(t *testing.T) {
	c := serve(t, http.StatusOK, `[
		{"symbol":"ETHUSDT","eventType":"PULLBACK","createTimestamp":1700000000000},
		{"symbol":"SOLUSDT","eventType":"RALLY","createTimestamp":1700000001000,"extra":1}
	]`)

	events, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "ETHUSDT", events[0].Symbol)
	assert.Equal(t, "PULLBACK", events[0].EventType)
	assert.Equal(t, int64(1700000001000), events[1].CreateTimestamp)
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `oops`},
		{name: "not json", status: http.StatusOK, body: `<html>blocked</html>`},
		{name: "object instead of array", status: http.StatusOK, body: `{"code":0}`},
		{name: "entry without symbol", status: http.StatusOK, body: `[{"eventType":"RALLY","createTimestamp":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := serve(t, tt.status, tt.body)

			events, err := c.Fetch(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFetch))
			assert.Nil(t, events)
		})
	}
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := NewClient(Config{URL: srv.URL, Timeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := c.Fetch(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestDecodeEmpty(t *testing.T) {
	events, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, events)
}
