package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/synapticos/trinityctl/internal/config"
)

// File is a rendered configuration file ready to be written to the host.
type File struct {
	Path    string
	Content []byte
	Mode    os.FileMode
}

// NginxSitePath is where the reverse-proxy site is installed.
const NginxSitePath = "/etc/nginx/sites-available/trinity.conf"

// NginxSiteLinkPath is the sites-enabled symlink target.
const NginxSiteLinkPath = "/etc/nginx/sites-enabled/trinity.conf"

// UnitPath returns the systemd unit file path for a Trinity service.
func UnitPath(service string) string {
	return filepath.Join("/etc/systemd/system", service+".service")
}

// RuntimeConfigPath returns the runtime JSON config path for a config dir.
func RuntimeConfigPath(configDir string) string {
	return filepath.Join(configDir, "runtime.json")
}

// serviceEntrypoints maps each Trinity unit to its installed entrypoint.
var serviceEntrypoints = map[string]struct {
	description string
	script      string
}{
	config.ServiceAPI: {
		description: "Trinity AI API server",
		script:      "trinity_api_server.py",
	},
	config.ServiceOrchestrator: {
		description: "Trinity quantum orchestrator",
		script:      "quantum_orchestrator.py",
	},
	config.ServiceManager: {
		description: "Trinity consciousness manager",
		script:      "trinity_manager.py",
	},
}

// RenderAll produces every configuration file for a provisioning run.
func RenderAll(cfg *config.Config, runID string, now time.Time) ([]File, error) {
	files := make([]File, 0, len(config.TrinityServices)+2)

	runtimeCfg := BuildRuntimeConfig(cfg, runID, now)
	runtimeJSON, err := runtimeCfg.Marshal()
	if err != nil {
		return nil, err
	}
	files = append(files, File{
		Path:    RuntimeConfigPath(cfg.Paths.ConfigDir),
		Content: runtimeJSON,
		Mode:    0640,
	})

	site, err := RenderNginxSite(cfg)
	if err != nil {
		return nil, err
	}
	files = append(files, File{Path: NginxSitePath, Content: site, Mode: 0644})

	for _, service := range config.TrinityServices {
		unit, err := RenderUnit(cfg, service)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Path: UnitPath(service), Content: unit, Mode: 0644})
	}

	return files, nil
}

// RenderNginxSite renders the reverse-proxy site config.
func RenderNginxSite(cfg *config.Config) ([]byte, error) {
	var buf bytes.Buffer
	data := nginxSiteData{
		ProxyPort:  cfg.API.ProxyPort,
		APIPort:    cfg.API.Port,
		ServerName: fmt.Sprintf("trinity-%s", cfg.Environment),
	}
	if err := nginxSiteTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render nginx site: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderUnit renders the systemd unit file for a Trinity service.
func RenderUnit(cfg *config.Config, service string) ([]byte, error) {
	entry, ok := serviceEntrypoints[service]
	if !ok {
		return nil, fmt.Errorf("unknown service %q", service)
	}

	var buf bytes.Buffer
	data := unitData{
		Description:      entry.description,
		User:             cfg.ServiceUser,
		ExecStart:        fmt.Sprintf("/usr/bin/python3 %s", filepath.Join(cfg.Paths.InstallDir, entry.script)),
		WorkingDirectory: cfg.Paths.InstallDir,
		ConfigPath:       RuntimeConfigPath(cfg.Paths.ConfigDir),
		DataDir:          cfg.Paths.DataDir,
		LogDir:           cfg.Paths.LogDir,
	}
	if err := unitTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render unit %s: %w", service, err)
	}
	return buf.Bytes(), nil
}

// WriteFiles persists rendered files, creating parent directories as needed.
func WriteFiles(files []File) error {
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", f.Path, err)
		}
		if err := os.WriteFile(f.Path, f.Content, f.Mode); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
	}
	return nil
}
