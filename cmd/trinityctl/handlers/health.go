package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/synapticos/trinityctl/internal/config"
	"github.com/synapticos/trinityctl/internal/healthcheck"
	"github.com/synapticos/trinityctl/internal/ui"
)

// endpointChecker is the part of the prober the health handler uses.
type endpointChecker interface {
	CheckEndpoints(ctx context.Context, urls []string) []healthcheck.EndpointStatus
}

// Factory function variables for health - can be replaced in tests.
var (
	// newHealthProber creates the HTTP prober.
	newHealthProber = func() endpointChecker {
		return healthcheck.NewProber(config.LoadTimeouts().HealthConnect)
	}

	// watchInterval is the delay between probes in watch mode.
	watchInterval = 5 * time.Second
)

// Health probes the deployed stack's HTTP surface.
//
// Each endpoint is probed once and reported. With watch the probes repeat
// every watchInterval until the context is canceled. The command fails
// when any endpoint is unhealthy in a one-shot run.
func Health(ctx context.Context, configPath string, watch, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if watch {
		return watchHealth(ctx, cfg, jsonOutput)
	}
	return showHealth(ctx, cfg, jsonOutput, true)
}

// showHealth probes every endpoint once. When failOnUnhealthy is set, any
// unhealthy endpoint turns into an error after reporting.
func showHealth(ctx context.Context, cfg *config.Config, jsonOutput, failOnUnhealthy bool) error {
	results := newHealthProber().CheckEndpoints(ctx, endpointURLs(cfg))

	if jsonOutput {
		if err := printHealthJSON(results); err != nil {
			return err
		}
	} else {
		printHealthFormatted(cfg, results, isInteractiveTTY())
	}

	if failOnUnhealthy {
		for _, ep := range results {
			if !ep.Healthy {
				return fmt.Errorf("endpoint %s is unhealthy: %s", ep.Endpoint, ep.Message)
			}
		}
	}
	return nil
}

// watchHealth continuously probes the endpoints.
func watchHealth(ctx context.Context, cfg *config.Config, jsonOutput bool) error {
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	// Show immediately first; watch mode keeps going through failures
	if err := showHealth(ctx, cfg, jsonOutput, false); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !jsonOutput {
				fmt.Print("\033[H\033[2J")
			}
			if err := showHealth(ctx, cfg, jsonOutput, false); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	}
}

// printHealthJSON outputs probe results as JSON.
func printHealthJSON(results []healthcheck.EndpointStatus) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal health status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printHealthFormatted outputs probe results as status rows.
func printHealthFormatted(cfg *config.Config, results []healthcheck.EndpointStatus, styled bool) {
	fmt.Println()
	fmt.Printf("  Trinity %s (%s)\n", cfg.Version, cfg.Environment)
	fmt.Println()
	for _, ep := range results {
		extra := ep.Message
		if ep.Healthy {
			extra = ep.Latency.Round(time.Millisecond).String()
		}
		fmt.Println(ui.StatusRow(ep.Endpoint, ep.Healthy, extra, styled))
	}
	fmt.Println()
}
