// Package configs contains the provisioning step that renders and installs
// the generated configuration files: the runtime JSON config, the nginx
// reverse-proxy site, and the systemd units.
package configs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/synapticos/trinityctl/internal/provisioning"
	"github.com/synapticos/trinityctl/internal/render"
)

// Factory function variables - can be replaced in tests.
var (
	readFile   = os.ReadFile
	readLink   = os.Readlink
	removeFile = os.Remove
	makeLink   = os.Symlink
	writeFiles = render.WriteFiles
	timeNow    = time.Now
)

// nginxDefaultSiteLink is the distro-shipped default site that shadows ours.
const nginxDefaultSiteLink = "/etc/nginx/sites-enabled/default"

// RenderStep writes the generated configuration files to the host.
type RenderStep struct{}

// NewRenderStep creates the configuration rendering step.
func NewRenderStep() *RenderStep {
	return &RenderStep{}
}

// Name implements provisioning.Step.
func (s *RenderStep) Name() string { return "render-configs" }

// Check implements provisioning.Step. The step is satisfied when the static
// files (nginx site, units) on disk match what we would render and the
// runtime config on disk matches the configured values. The runtime config's
// deploy stamp records the run that produced it, so it is deliberately
// excluded from the comparison.
func (s *RenderStep) Check(ctx *provisioning.Context) (bool, error) {
	files, err := render.RenderAll(ctx.Config, ctx.State.RunID, timeNow())
	if err != nil {
		return false, err
	}

	for _, f := range files {
		existing, err := readFile(f.Path)
		if err != nil {
			// Missing or unreadable file means the step has work to do
			return false, nil
		}
		if f.Path == render.RuntimeConfigPath(ctx.Config.Paths.ConfigDir) {
			if !runtimeConfigCurrent(existing, ctx) {
				return false, nil
			}
			continue
		}
		if !bytes.Equal(existing, f.Content) {
			return false, nil
		}
	}

	target, err := readLink(render.NginxSiteLinkPath)
	if err != nil || target != render.NginxSitePath {
		return false, nil
	}

	return true, nil
}

// Apply implements provisioning.Step.
func (s *RenderStep) Apply(ctx *provisioning.Context) error {
	files, err := render.RenderAll(ctx.Config, ctx.State.RunID, timeNow())
	if err != nil {
		return err
	}

	if err := writeFiles(files); err != nil {
		return err
	}
	for _, f := range files {
		ctx.State.RenderedFiles = append(ctx.State.RenderedFiles, f.Path)
		provisioning.LogResourceCreated(ctx.Observer, s.Name(), "config", f.Path)
	}

	if err := s.enableSite(ctx); err != nil {
		return err
	}

	return nil
}

// enableSite replaces the distro default nginx site with the Trinity one.
func (s *RenderStep) enableSite(ctx *provisioning.Context) error {
	if err := removeFile(nginxDefaultSiteLink); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove default nginx site: %w", err)
	}

	if target, err := readLink(render.NginxSiteLinkPath); err == nil {
		if target == render.NginxSitePath {
			provisioning.LogResourceExists(ctx.Observer, s.Name(), "symlink", render.NginxSiteLinkPath)
			return nil
		}
		if err := removeFile(render.NginxSiteLinkPath); err != nil {
			return fmt.Errorf("failed to remove stale site link: %w", err)
		}
	}

	if err := makeLink(render.NginxSitePath, render.NginxSiteLinkPath); err != nil {
		return fmt.Errorf("failed to enable nginx site: %w", err)
	}
	provisioning.LogResourceCreated(ctx.Observer, s.Name(), "symlink", render.NginxSiteLinkPath)
	return nil
}

// runtimeConfigCurrent reports whether the on-disk runtime config already
// describes the configured deployment. The deploy stamp (deployed_at and
// run_id) records which run wrote the file, not drift, so it is carried
// over before the comparison; every other field counts.
func runtimeConfigCurrent(existing []byte, ctx *provisioning.Context) bool {
	var current render.RuntimeConfig
	if err := json.Unmarshal(existing, &current); err != nil {
		return false
	}
	desired := render.BuildRuntimeConfig(ctx.Config, ctx.State.RunID, timeNow())
	desired.DeployedAt = current.DeployedAt
	desired.RunID = current.RunID
	return current == desired
}
