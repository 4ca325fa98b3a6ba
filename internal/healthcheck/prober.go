// Package healthcheck probes the HTTP surface of a deployed Trinity stack.
//
// A probe is a GET with a fixed connect timeout; WaitHealthy polls a probe
// with exponential backoff inside a bounded window and is used as the
// post-start health gate of the provisioning sequencer.
package healthcheck

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/synapticos/trinityctl/internal/util/retry"
)

// Prober issues HTTP health probes with bounded timeouts.
type Prober struct {
	client *http.Client
}

// NewProber creates a prober with the given connect timeout.
// The overall per-request timeout is twice the connect timeout.
func NewProber(connectTimeout time.Duration) *Prober {
	dialer := &net.Dialer{Timeout: connectTimeout}
	return &Prober{
		client: &http.Client{
			Timeout: 2 * connectTimeout,
			Transport: &http.Transport{
				DialContext:       dialer.DialContext,
				DisableKeepAlives: true,
			},
		},
	}
}

// Probe issues a single GET and returns nil for any 2xx response.
func (p *Prober) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return retry.Fatal(fmt.Errorf("invalid probe url %s: %w", url, err))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("probe %s returned status %d", url, resp.StatusCode)
	}
	return nil
}

// WaitHealthy polls url until it answers 2xx or the window elapses.
func (p *Prober) WaitHealthy(ctx context.Context, url string, window, initialDelay time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	err := retry.WithExponentialBackoff(waitCtx,
		func() error { return p.Probe(waitCtx, url) },
		retry.WithMaxRetries(maxAttemptsFor(window, initialDelay)),
		retry.WithInitialDelay(initialDelay),
		retry.WithMaxDelay(10*time.Second),
	)
	if err != nil {
		return fmt.Errorf("service did not become healthy within %v: %w", window, err)
	}
	return nil
}

// maxAttemptsFor sizes the retry budget so the backoff schedule spans the
// polling window even when every probe fails instantly.
func maxAttemptsFor(window, initialDelay time.Duration) int {
	if initialDelay <= 0 {
		initialDelay = time.Second
	}
	attempts := int(window / initialDelay)
	if attempts < 3 {
		attempts = 3
	}
	return attempts
}

// EndpointStatus is the result of probing a single endpoint once.
type EndpointStatus struct {
	Endpoint   string        `json:"endpoint"`
	Healthy    bool          `json:"healthy"`
	StatusCode int           `json:"statusCode,omitempty"`
	Latency    time.Duration `json:"latency"`
	Message    string        `json:"message,omitempty"`
}

// CheckEndpoints probes each URL once and collects per-endpoint results.
func (p *Prober) CheckEndpoints(ctx context.Context, urls []string) []EndpointStatus {
	results := make([]EndpointStatus, 0, len(urls))
	for _, url := range urls {
		results = append(results, p.checkOne(ctx, url))
	}
	return results
}

func (p *Prober) checkOne(ctx context.Context, url string) EndpointStatus {
	status := EndpointStatus{Endpoint: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		status.Message = err.Error()
		return status
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	status.Latency = time.Since(start)
	if err != nil {
		status.Message = err.Error()
		return status
	}
	defer resp.Body.Close()

	status.StatusCode = resp.StatusCode
	status.Healthy = resp.StatusCode >= 200 && resp.StatusCode <= 299
	if !status.Healthy {
		status.Message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	return status
}
