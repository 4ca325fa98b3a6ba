package config

import "time"

// Config is the full deployment configuration for a Trinity environment.
type Config struct {
	// Environment is the deployment environment name (e.g. "production").
	Environment string `yaml:"environment"`

	// Version is the release version being provisioned.
	Version string `yaml:"version"`

	// ServiceUser is the system account the services run as.
	ServiceUser string `yaml:"service_user"`

	// Host is the remote deploy target. Optional for local provisioning.
	Host HostConfig `yaml:"host,omitempty"`

	// Paths is the directory layout on the target host.
	Paths PathsConfig `yaml:"paths"`

	// Packages are the OS packages required by the stack.
	Packages []string `yaml:"packages"`

	// API holds the HTTP surface configuration.
	API APIConfig `yaml:"api"`

	// Orchestrator holds the runtime tuning knobs written into the
	// generated runtime config.
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`

	// Preflight holds minimum host resource requirements.
	Preflight PreflightConfig `yaml:"preflight"`

	// PreflightCheckEnabled toggles preflight checks (default: true).
	PreflightCheckEnabled *bool `yaml:"preflight_check_enabled,omitempty"`
}

// HostConfig identifies the remote deploy target.
type HostConfig struct {
	// Address is the hostname or IP of the target host.
	Address string `yaml:"address,omitempty"`

	// User is the SSH login user (default: root).
	User string `yaml:"user,omitempty"`

	// Port is the SSH port (default: 22).
	Port int `yaml:"port,omitempty"`

	// PrivateKeyPath is the path to the SSH private key.
	PrivateKeyPath string `yaml:"private_key_path,omitempty"`
}

// PathsConfig is the directory layout applied on the target host.
type PathsConfig struct {
	InstallDir string `yaml:"install_dir"`
	ConfigDir  string `yaml:"config_dir"`
	DataDir    string `yaml:"data_dir"`
	LogDir     string `yaml:"log_dir"`
}

// All returns the managed directories in creation order.
func (p PathsConfig) All() []string {
	return []string{p.InstallDir, p.ConfigDir, p.DataDir, p.LogDir}
}

// APIConfig configures the HTTP surface of the stack.
type APIConfig struct {
	// Port is the port the Trinity API binds locally.
	Port int `yaml:"port"`

	// ProxyPort is the public port nginx listens on.
	ProxyPort int `yaml:"proxy_port"`
}

// OrchestratorConfig carries the tuning knobs of the orchestrator service.
// These are serialized verbatim into the generated runtime JSON config.
type OrchestratorConfig struct {
	// MaxWorkers is the orchestrator worker pool size.
	// Zero means twice the CPU count, resolved at render time.
	MaxWorkers int `yaml:"max_workers"`

	// CoherenceThreshold gates task routing, in [0,1].
	CoherenceThreshold float64 `yaml:"coherence_threshold"`

	// UpdateInterval is the state persistence interval.
	UpdateInterval time.Duration `yaml:"update_interval"`

	// ModelTimeout bounds a single model invocation.
	ModelTimeout time.Duration `yaml:"model_timeout"`

	// RetentionDays is how long recorded state is kept.
	RetentionDays int `yaml:"retention_days"`

	// LearningRate and NeuralPlasticity are passed through to the
	// orchestrator unchanged.
	LearningRate     float64 `yaml:"learning_rate"`
	NeuralPlasticity float64 `yaml:"neural_plasticity"`
}

// PreflightConfig holds minimum host resource requirements.
type PreflightConfig struct {
	// MinDiskGB is the minimum free disk space on the install volume.
	MinDiskGB int `yaml:"min_disk_gb"`

	// MinMemoryGB is the minimum available memory.
	MinMemoryGB int `yaml:"min_memory_gb"`
}

// PreflightEnabled reports whether preflight checks should run.
// Defaults to true when not explicitly set.
func (c *Config) PreflightEnabled() bool {
	return c.PreflightCheckEnabled == nil || *c.PreflightCheckEnabled
}

// SSHUser returns the configured SSH user, defaulting to root.
func (h HostConfig) SSHUser() string {
	if h.User == "" {
		return "root"
	}
	return h.User
}

// SSHPort returns the configured SSH port, defaulting to 22.
func (h HostConfig) SSHPort() int {
	if h.Port == 0 {
		return 22
	}
	return h.Port
}

// applyDefaults fills in defaults for fields left empty in the YAML file.
func applyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "production"
	}
	if cfg.ServiceUser == "" {
		cfg.ServiceUser = "synaptic"
	}
	if cfg.Paths.InstallDir == "" {
		cfg.Paths.InstallDir = "/opt/synapticos"
	}
	if cfg.Paths.ConfigDir == "" {
		cfg.Paths.ConfigDir = "/etc/synapticos"
	}
	if cfg.Paths.DataDir == "" {
		cfg.Paths.DataDir = "/var/lib/synapticos"
	}
	if cfg.Paths.LogDir == "" {
		cfg.Paths.LogDir = "/var/log/synapticos"
	}
	if len(cfg.Packages) == 0 {
		cfg.Packages = []string{
			"nginx",
			"ufw",
			"python3",
			"python3-venv",
			"sqlite3",
			"curl",
		}
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = DefaultAPIPort
	}
	if cfg.API.ProxyPort == 0 {
		cfg.API.ProxyPort = DefaultProxyPort
	}
	if cfg.Orchestrator.CoherenceThreshold == 0 {
		cfg.Orchestrator.CoherenceThreshold = 0.85
	}
	if cfg.Orchestrator.UpdateInterval == 0 {
		cfg.Orchestrator.UpdateInterval = 5 * time.Second
	}
	if cfg.Orchestrator.ModelTimeout == 0 {
		cfg.Orchestrator.ModelTimeout = 5 * time.Minute
	}
	if cfg.Orchestrator.RetentionDays == 0 {
		cfg.Orchestrator.RetentionDays = 30
	}
	if cfg.Orchestrator.LearningRate == 0 {
		cfg.Orchestrator.LearningRate = 0.001
	}
	if cfg.Orchestrator.NeuralPlasticity == 0 {
		cfg.Orchestrator.NeuralPlasticity = 0.95
	}
	if cfg.Preflight.MinDiskGB == 0 {
		cfg.Preflight.MinDiskGB = 5
	}
	if cfg.Preflight.MinMemoryGB == 0 {
		cfg.Preflight.MinMemoryGB = 1
	}
}
