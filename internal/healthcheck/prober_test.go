package healthcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_Healthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewProber(2 * time.Second)
	assert.NoError(t, p.Probe(context.Background(), server.URL+"/health"))
}

func TestProbe_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewProber(2 * time.Second)
	err := p.Probe(context.Background(), server.URL+"/health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestProbe_ConnectionRefused(t *testing.T) {
	p := NewProber(500 * time.Millisecond)
	err := p.Probe(context.Background(), "http://127.0.0.1:1/health")
	assert.Error(t, err)
}

func TestWaitHealthy_SucceedsAfterWarmup(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewProber(time.Second)
	err := p.WaitHealthy(context.Background(), server.URL+"/health", 10*time.Second, 10*time.Millisecond)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestWaitHealthy_WindowExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := NewProber(time.Second)
	start := time.Now()
	err := p.WaitHealthy(context.Background(), server.URL+"/health", 300*time.Millisecond, 50*time.Millisecond)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not become healthy")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCheckEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	p := NewProber(time.Second)
	results := p.CheckEndpoints(context.Background(), []string{
		server.URL + "/health",
		server.URL + "/status",
	})

	require.Len(t, results, 2)
	assert.True(t, results[0].Healthy)
	assert.Equal(t, http.StatusOK, results[0].StatusCode)
	assert.False(t, results[1].Healthy)
	assert.Contains(t, results[1].Message, "404")
}
