package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/synapticos/trinityctl/internal/config"
	"github.com/synapticos/trinityctl/internal/healthcheck"
	"github.com/synapticos/trinityctl/internal/platform/system"
	"github.com/synapticos/trinityctl/internal/render"
	"github.com/synapticos/trinityctl/internal/ui"
)

// DoctorStatus represents the deployment diagnostic status.
type DoctorStatus struct {
	Environment string                       `json:"environment"`
	Version     string                       `json:"version"`
	Host        HostHealth                   `json:"host"`
	Configs     ConfigHealth                 `json:"configs"`
	Services    map[string]ServiceHealth     `json:"services"`
	Endpoints   []healthcheck.EndpointStatus `json:"endpoints,omitempty"`
}

// HostHealth represents base host state managed by provisioning.
type HostHealth struct {
	ServiceUser     bool     `json:"serviceUser"`
	Directories     bool     `json:"directories"`
	MissingDirs     []string `json:"missingDirs,omitempty"`
	Packages        bool     `json:"packages"`
	MissingPackages []string `json:"missingPackages,omitempty"`
	FirewallActive  bool     `json:"firewallActive"`
}

// ConfigHealth represents the rendered configuration files.
type ConfigHealth struct {
	RuntimeConfig bool `json:"runtimeConfig"`
	NginxSite     bool `json:"nginxSite"`
	Units         bool `json:"units"`
}

// ServiceHealth represents one systemd unit.
type ServiceHealth struct {
	Active  bool `json:"active"`
	Enabled bool `json:"enabled"`
}

// Factory function variables for doctor - can be replaced in tests.
var (
	// newDoctorRunner creates the command runner for host inspection.
	newDoctorRunner = func() system.Runner {
		return system.NewExecRunner()
	}

	// newDoctorProber creates the HTTP prober.
	newDoctorProber = func() endpointChecker {
		return healthcheck.NewProber(config.LoadTimeouts().HealthConnect)
	}

	// statPath checks whether a path exists.
	statPath = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}
)

// Doctor handles the doctor command. It inspects everything the
// provisioning pipeline manages and reports what is missing or unhealthy.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	status := gatherDoctorStatus(ctx, cfg)

	if jsonOutput {
		return printDoctorJSON(status)
	}
	return printDoctorFormatted(status, isInteractiveTTY())
}

// gatherDoctorStatus collects the full diagnostic picture.
func gatherDoctorStatus(ctx context.Context, cfg *config.Config) *DoctorStatus {
	runner := newDoctorRunner()
	status := &DoctorStatus{
		Environment: cfg.Environment,
		Version:     cfg.Version,
		Services:    make(map[string]ServiceHealth),
	}

	status.Host = gatherHostHealth(ctx, cfg, runner)
	status.Configs = ConfigHealth{
		RuntimeConfig: statPath(render.RuntimeConfigPath(cfg.Paths.ConfigDir)),
		NginxSite:     statPath(render.NginxSitePath),
		Units:         unitsPresent(),
	}

	sm := system.NewServiceManager(runner)
	for _, service := range allUnits() {
		active, _ := sm.IsActive(ctx, service)
		enabled, _ := sm.IsEnabled(ctx, service)
		status.Services[service] = ServiceHealth{Active: active, Enabled: enabled}
	}

	status.Endpoints = newDoctorProber().CheckEndpoints(ctx, endpointURLs(cfg))
	return status
}

func gatherHostHealth(ctx context.Context, cfg *config.Config, runner system.Runner) HostHealth {
	health := HostHealth{}

	users := system.NewUserManager(runner)
	health.ServiceUser, _ = users.Exists(ctx, cfg.ServiceUser)

	health.Directories = true
	for _, dir := range cfg.Paths.All() {
		if !statPath(dir) {
			health.Directories = false
			health.MissingDirs = append(health.MissingDirs, dir)
		}
	}

	pm := system.NewPackageManager(runner)
	if missing, err := pm.Missing(ctx, cfg.Packages); err == nil {
		health.Packages = len(missing) == 0
		health.MissingPackages = missing
	}

	if output, err := runner.Run(ctx, "ufw", "status"); err == nil {
		health.FirewallActive = strings.Contains(output, "Status: active")
	}

	return health
}

func unitsPresent() bool {
	for _, service := range config.TrinityServices {
		if !statPath(render.UnitPath(service)) {
			return false
		}
	}
	return true
}

// allUnits lists every unit doctor inspects, proxy first.
func allUnits() []string {
	units := []string{config.ServiceNginx}
	return append(units, config.TrinityServices...)
}

// printDoctorJSON outputs status as JSON.
func printDoctorJSON(status *DoctorStatus) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printDoctorFormatted outputs status as a formatted report.
func printDoctorFormatted(status *DoctorStatus, styled bool) error {
	fmt.Println()
	title := fmt.Sprintf("Trinity deployment: %s (%s)", status.Environment, status.Version)
	fmt.Printf("  %s\n", title)
	fmt.Println("  " + strings.Repeat("═", len(title)))
	fmt.Println()

	fmt.Println("  Host")
	fmt.Println("  " + strings.Repeat("─", 35))
	fmt.Println(ui.StatusRow("Service user", status.Host.ServiceUser, "", styled))
	dirExtra := ""
	if len(status.Host.MissingDirs) > 0 {
		dirExtra = "missing: " + strings.Join(status.Host.MissingDirs, ", ")
	}
	fmt.Println(ui.StatusRow("Directories", status.Host.Directories, dirExtra, styled))
	pkgExtra := ""
	if len(status.Host.MissingPackages) > 0 {
		pkgExtra = "missing: " + strings.Join(status.Host.MissingPackages, ", ")
	}
	fmt.Println(ui.StatusRow("Packages", status.Host.Packages, pkgExtra, styled))
	if status.Host.FirewallActive {
		fmt.Println(ui.StatusRow("Firewall", true, "", styled))
	} else {
		fmt.Println(ui.WarnRow("Firewall", "inactive", styled))
	}
	fmt.Println()

	fmt.Println("  Configuration")
	fmt.Println("  " + strings.Repeat("─", 35))
	fmt.Println(ui.StatusRow("Runtime config", status.Configs.RuntimeConfig, "", styled))
	fmt.Println(ui.StatusRow("Nginx site", status.Configs.NginxSite, "", styled))
	fmt.Println(ui.StatusRow("Systemd units", status.Configs.Units, "", styled))
	fmt.Println()

	fmt.Println("  Services")
	fmt.Println("  " + strings.Repeat("─", 35))
	for _, service := range allUnits() {
		svc := status.Services[service]
		extra := ""
		if svc.Active && !svc.Enabled {
			extra = "not enabled at boot"
		}
		fmt.Println(ui.StatusRow(service, svc.Active, extra, styled))
	}
	fmt.Println()

	if len(status.Endpoints) > 0 {
		fmt.Println("  Endpoints")
		fmt.Println("  " + strings.Repeat("─", 35))
		for _, ep := range status.Endpoints {
			extra := ep.Message
			if ep.Healthy {
				extra = ep.Latency.Round(time.Millisecond).String()
			}
			fmt.Println(ui.StatusRow(ep.Endpoint, ep.Healthy, extra, styled))
		}
		fmt.Println()
	}

	return nil
}
