package ownhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestAddHeaderTransport(t *testing.T) {
	agents := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents <- r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := New()
	res, err := client.Get(server.URL)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, UserAgent, <-agents)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom")
	res, err = client.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "custom", <-agents)
}

func TestThrottleTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	// one request every 50ms after the first one
	limiter := rate.NewLimiter(rate.Every(50*time.Millisecond), 1)
	client := &http.Client{Transport: NewThrottleTransport(nil, limiter)}

	start := time.Now()
	for i := 0; i < 3; i++ {
		res, err := client.Get(server.URL)
		require.NoError(t, err)
		res.Body.Close()
	}
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestNewThrottled(t *testing.T) {
	_, ok := NewThrottled(0).Transport.(*AddHeaderTransport)
	assert.True(t, ok)

	transport := NewThrottled(0.5).Transport.(*AddHeaderTransport)
	_, ok = transport.T.(*ThrottleTransport)
	assert.True(t, ok)
}
