package handlers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/synapticos/trinityctl/internal/config"
	"github.com/synapticos/trinityctl/internal/healthcheck"
)

// smokeProber is the part of the prober the smoke handler uses.
type smokeProber interface {
	Probe(ctx context.Context, url string) error
}

// Factory function variables for smoke - can be replaced in tests.
var (
	// newSmokeProber creates the HTTP prober.
	newSmokeProber = func() smokeProber {
		return healthcheck.NewProber(config.LoadTimeouts().HealthConnect)
	}
)

// SmokeReport summarizes a smoke run.
type SmokeReport struct {
	Requests  int
	Failures  int
	Latencies []time.Duration
}

// Smoke probes the health endpoint requests times with bounded concurrency
// and reports the latency distribution. Any failed probe fails the command.
func Smoke(ctx context.Context, configPath string, requests, concurrency int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if requests < 1 {
		return fmt.Errorf("requests must be at least 1")
	}
	if concurrency < 1 {
		concurrency = 1
	}

	url := endpointURLs(cfg)[0]
	fmt.Printf("Probing %s: %d requests, %d concurrent\n", url, requests, concurrency)

	report := runSmoke(ctx, newSmokeProber(), url, requests, concurrency)
	printSmokeReport(report)

	if report.Failures > 0 {
		return fmt.Errorf("%d of %d probes failed", report.Failures, report.Requests)
	}
	return nil
}

// runSmoke fires the probes and collects latencies.
func runSmoke(ctx context.Context, prober smokeProber, url string, requests, concurrency int) *SmokeReport {
	report := &SmokeReport{Requests: requests}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := 0; i < requests; i++ {
		g.Go(func() error {
			start := time.Now()
			err := prober.Probe(gctx, url)
			elapsed := time.Since(start)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failures++
				// Probe errors are counted, not propagated; the run
				// always completes all requests.
				return nil
			}
			report.Latencies = append(report.Latencies, elapsed)
			return nil
		})
	}
	_ = g.Wait()

	return report
}

// printSmokeReport prints the latency distribution.
func printSmokeReport(report *SmokeReport) {
	fmt.Println()
	fmt.Printf("  Requests:  %d\n", report.Requests)
	fmt.Printf("  Succeeded: %d\n", report.Requests-report.Failures)
	fmt.Printf("  Failed:    %d\n", report.Failures)

	if len(report.Latencies) == 0 {
		fmt.Println()
		return
	}

	sorted := make([]time.Duration, len(report.Latencies))
	copy(sorted, report.Latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	fmt.Println()
	fmt.Printf("  Latency min: %v\n", sorted[0].Round(time.Millisecond))
	fmt.Printf("  Latency avg: %v\n", (total / time.Duration(len(sorted))).Round(time.Millisecond))
	fmt.Printf("  Latency p95: %v\n", percentile(sorted, 95).Round(time.Millisecond))
	fmt.Printf("  Latency max: %v\n", sorted[len(sorted)-1].Round(time.Millisecond))
	fmt.Println()
}

// percentile returns the pth percentile of a sorted latency slice.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := (len(sorted) - 1) * p / 100
	return sorted[idx]
}
