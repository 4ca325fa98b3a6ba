package config

// DefaultConfigFilename is the default configuration filename.
const DefaultConfigFilename = "trinity.yaml"

// Systemd unit names managed by the provisioning sequencer.
const (
	ServiceAPI          = "trinity-api"
	ServiceOrchestrator = "trinity-orchestrator"
	ServiceManager      = "trinity-manager"
	ServiceNginx        = "nginx"
)

// TrinityServices lists the stack's own units in start order.
// nginx is handled separately since it is an OS-packaged unit.
var TrinityServices = []string{
	ServiceAPI,
	ServiceOrchestrator,
	ServiceManager,
}

// Default listen ports.
const (
	DefaultAPIPort   = 8080
	DefaultProxyPort = 80
)
