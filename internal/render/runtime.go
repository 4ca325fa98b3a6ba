// Package render generates the configuration files written during
// provisioning: the runtime JSON config, the nginx reverse-proxy site,
// and the systemd unit files.
//
// Rendering is pure — it produces [File] values in memory; writing them to
// disk is the render step's job. The runtime config is built from a typed
// struct and marshaled with encoding/json, so the output is valid JSON with
// all fields fully expanded, including the deployment timestamp.
package render

import (
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/synapticos/trinityctl/internal/config"
)

// RuntimeConfig is the runtime configuration consumed by the Trinity
// services. It is serialized to <config_dir>/runtime.json.
type RuntimeConfig struct {
	Environment string    `json:"environment"`
	Version     string    `json:"version"`
	DeployedAt  time.Time `json:"deployed_at"`
	RunID       string    `json:"run_id"`

	API          RuntimeAPI          `json:"api"`
	Orchestrator RuntimeOrchestrator `json:"orchestrator"`
	Paths        RuntimePaths        `json:"paths"`
}

// RuntimeAPI is the HTTP surface section of the runtime config.
type RuntimeAPI struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// RuntimeOrchestrator carries the orchestrator tuning knobs.
type RuntimeOrchestrator struct {
	MaxWorkers            int     `json:"max_workers"`
	CoherenceThreshold    float64 `json:"coherence_threshold"`
	UpdateIntervalSeconds int     `json:"update_interval_seconds"`
	ModelTimeoutSeconds   int     `json:"model_timeout_seconds"`
	RetentionDays         int     `json:"retention_days"`
	LearningRate          float64 `json:"learning_rate"`
	NeuralPlasticity      float64 `json:"neural_plasticity"`
}

// RuntimePaths points the services at their writable directories.
type RuntimePaths struct {
	DataDir string `json:"data_dir"`
	LogDir  string `json:"log_dir"`
}

// BuildRuntimeConfig assembles the runtime config from the deployment
// config. A zero MaxWorkers resolves to twice the CPU count.
func BuildRuntimeConfig(cfg *config.Config, runID string, now time.Time) RuntimeConfig {
	workers := cfg.Orchestrator.MaxWorkers
	if workers == 0 {
		workers = runtime.NumCPU() * 2
	}

	return RuntimeConfig{
		Environment: cfg.Environment,
		Version:     cfg.Version,
		DeployedAt:  now.UTC().Truncate(time.Second),
		RunID:       runID,
		API: RuntimeAPI{
			Host: "127.0.0.1",
			Port: cfg.API.Port,
		},
		Orchestrator: RuntimeOrchestrator{
			MaxWorkers:            workers,
			CoherenceThreshold:    cfg.Orchestrator.CoherenceThreshold,
			UpdateIntervalSeconds: int(cfg.Orchestrator.UpdateInterval.Seconds()),
			ModelTimeoutSeconds:   int(cfg.Orchestrator.ModelTimeout.Seconds()),
			RetentionDays:         cfg.Orchestrator.RetentionDays,
			LearningRate:          cfg.Orchestrator.LearningRate,
			NeuralPlasticity:      cfg.Orchestrator.NeuralPlasticity,
		},
		Paths: RuntimePaths{
			DataDir: cfg.Paths.DataDir,
			LogDir:  cfg.Paths.LogDir,
		},
	}
}

// Marshal serializes the runtime config as indented JSON.
func (r RuntimeConfig) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal runtime config: %w", err)
	}
	return append(data, '\n'), nil
}
