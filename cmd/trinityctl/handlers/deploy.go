package handlers

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/synapticos/trinityctl/internal/config"
	"github.com/synapticos/trinityctl/internal/ssh"
)

const (
	remoteStagingDir = "/tmp/trinityctl-deploy"
	remoteBinaryPath = remoteStagingDir + "/trinityctl"
	remoteConfigPath = remoteStagingDir + "/trinity.yaml"
)

// Factory function variables for deploy - can be replaced in tests.
var (
	// newCommunicator creates the SSH communicator for the target host.
	newCommunicator = func(cfg *ssh.Config) (ssh.Communicator, error) {
		return ssh.NewClient(cfg)
	}

	// loadPrivateKey reads and validates the SSH private key.
	loadPrivateKey = ssh.LoadKey

	// executablePath resolves the running trinityctl binary.
	executablePath = os.Executable

	// readFile reads a local file.
	readFile = os.ReadFile

	// marshalConfig serializes the config for upload.
	marshalConfig = configToYAML
)

// Deploy pushes the Trinity stack to a remote host. hostOverride, when
// non-empty, takes precedence over the configured host address.
//
// The running trinityctl binary and the loaded configuration are uploaded
// over SSH, then 'trinityctl provision' is executed remotely. The remote
// run is the single source of truth for host state; nothing is installed
// from the network on the target beyond OS packages.
func Deploy(ctx context.Context, configPath, hostOverride, keyPath string, skipHealth bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if hostOverride != "" {
		cfg.Host.Address = hostOverride
	}
	if cfg.Host.Address == "" {
		return fmt.Errorf("no deploy host configured - pass one as an argument or set 'host.address' in the config file")
	}

	if keyPath == "" {
		keyPath = cfg.Host.PrivateKeyPath
	}
	if keyPath == "" {
		return fmt.Errorf("no SSH key configured - set 'host.private_key_path' or pass --key")
	}

	key, err := loadPrivateKey(keyPath)
	if err != nil {
		return err
	}

	comm, err := newCommunicator(&ssh.Config{
		Host:       cfg.Host.Address,
		Port:       cfg.Host.SSHPort(),
		User:       cfg.Host.SSHUser(),
		PrivateKey: key,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Deploying Trinity %s to %s...\n", cfg.Version, cfg.Host.Address)

	if err := uploadArtifacts(ctx, comm, cfg); err != nil {
		return err
	}

	provisionCmd := fmt.Sprintf("%s provision -c %s", remoteBinaryPath, remoteConfigPath)
	if skipHealth {
		provisionCmd += " --skip-health"
	}

	output, err := comm.Execute(ctx, provisionCmd)
	if output != "" {
		fmt.Print(output)
	}
	if err != nil {
		return fmt.Errorf("remote provisioning failed: %w", err)
	}

	fmt.Printf("\nDeployed Trinity %s to %s.\n", cfg.Version, cfg.Host.Address)
	return nil
}

// uploadArtifacts stages the binary and config on the remote host.
func uploadArtifacts(ctx context.Context, comm ssh.Communicator, cfg *config.Config) error {
	if _, err := comm.Execute(ctx, "mkdir -p "+remoteStagingDir); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	binPath, err := executablePath()
	if err != nil {
		return fmt.Errorf("failed to resolve trinityctl binary: %w", err)
	}
	binary, err := readFile(binPath)
	if err != nil {
		return fmt.Errorf("failed to read trinityctl binary: %w", err)
	}

	fmt.Printf("  Uploading %s (%d MB)...\n", path.Base(remoteBinaryPath), len(binary)/(1<<20))
	if err := comm.UploadFile(ctx, remoteBinaryPath, binary, 0755); err != nil {
		return err
	}

	configYAML, err := marshalConfig(cfg)
	if err != nil {
		return err
	}
	if err := comm.UploadFile(ctx, remoteConfigPath, configYAML, 0600); err != nil {
		return err
	}

	return nil
}

// configToYAML serializes the loaded config through the standard writer so
// the remote copy carries the same header and layout as a local file.
func configToYAML(cfg *config.Config) ([]byte, error) {
	tmp, err := os.CreateTemp("", "trinity-*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to stage config: %w", err)
	}
	defer os.Remove(tmp.Name())
	_ = tmp.Close()

	if err := config.WriteYAML(cfg, tmp.Name()); err != nil {
		return nil, err
	}
	return os.ReadFile(tmp.Name())
}
