package handlers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSmokeProber struct {
	mu       sync.Mutex
	inFlight int32
	maxSeen  int32
	failEach int // every Nth probe fails; 0 means never
	count    int
}

func (s *stubSmokeProber) Probe(context.Context, string) error {
	cur := atomic.AddInt32(&s.inFlight, 1)
	defer atomic.AddInt32(&s.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&s.maxSeen)
		if cur <= seen || atomic.CompareAndSwapInt32(&s.maxSeen, seen, cur) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	if s.failEach > 0 && s.count%s.failEach == 0 {
		return errors.New("probe failed")
	}
	return nil
}

// saveAndRestoreSmokeFactories saves and restores smoke factory functions.
func saveAndRestoreSmokeFactories(t *testing.T) {
	t.Helper()
	origNewProber := newSmokeProber
	t.Cleanup(func() { newSmokeProber = origNewProber })
}

func TestSmoke_AllSucceed(t *testing.T) {
	saveAndRestoreSmokeFactories(t)

	prober := &stubSmokeProber{}
	newSmokeProber = func() smokeProber { return prober }

	output := captureOutput(func() {
		require.NoError(t, Smoke(context.Background(), writeTestConfig(t), 10, 3))
	})
	assert.Contains(t, output, "Requests:  10")
	assert.Contains(t, output, "Failed:    0")
	assert.Contains(t, output, "Latency p95")
	assert.LessOrEqual(t, atomic.LoadInt32(&prober.maxSeen), int32(3))
}

func TestSmoke_FailuresFailTheCommand(t *testing.T) {
	saveAndRestoreSmokeFactories(t)

	newSmokeProber = func() smokeProber { return &stubSmokeProber{failEach: 2} }

	_ = captureOutput(func() {
		err := Smoke(context.Background(), writeTestConfig(t), 10, 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "5 of 10 probes failed")
	})
}

func TestSmoke_InvalidRequestCount(t *testing.T) {
	saveAndRestoreSmokeFactories(t)

	err := Smoke(context.Background(), writeTestConfig(t), 0, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1")
}

func TestRunSmoke_Report(t *testing.T) {
	prober := &stubSmokeProber{failEach: 5}
	report := runSmoke(context.Background(), prober, "http://127.0.0.1/health", 10, 4)

	assert.Equal(t, 10, report.Requests)
	assert.Equal(t, 2, report.Failures)
	assert.Len(t, report.Latencies, 8)
}

func TestPercentile(t *testing.T) {
	sorted := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, time.Duration(10), percentile(sorted, 100))
	assert.Equal(t, time.Duration(9), percentile(sorted, 95))
	assert.Equal(t, time.Duration(5), percentile(sorted, 50))
	assert.Equal(t, time.Duration(0), percentile(nil, 95))
}
