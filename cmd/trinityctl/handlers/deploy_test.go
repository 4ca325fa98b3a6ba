package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synapticos/trinityctl/internal/ssh"
)

// saveAndRestoreDeployFactories saves and restores deploy factory functions.
func saveAndRestoreDeployFactories(t *testing.T) {
	t.Helper()
	origNewCommunicator := newCommunicator
	origLoadKey := loadPrivateKey
	origExecutable := executablePath
	origReadFile := readFile
	origMarshal := marshalConfig
	t.Cleanup(func() {
		newCommunicator = origNewCommunicator
		loadPrivateKey = origLoadKey
		executablePath = origExecutable
		readFile = origReadFile
		marshalConfig = origMarshal
	})
}

// writeDeployConfig writes a config with a deploy host and returns its path.
func writeDeployConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trinity.yaml")
	content := `environment: production
version: 2.0.0
host:
  address: 10.0.0.5
  private_key_path: /home/op/.ssh/id_ed25519
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDeploy_HappyPath(t *testing.T) {
	saveAndRestoreDeployFactories(t)

	mock := ssh.NewMockCommunicator()
	newCommunicator = func(cfg *ssh.Config) (ssh.Communicator, error) {
		assert.Equal(t, "10.0.0.5", cfg.Host)
		assert.Equal(t, "root", cfg.User)
		assert.Equal(t, 22, cfg.Port)
		return mock, nil
	}
	loadPrivateKey = func(path string) ([]byte, error) {
		assert.Equal(t, "/home/op/.ssh/id_ed25519", path)
		return []byte("key"), nil
	}
	executablePath = func() (string, error) { return "/usr/local/bin/trinityctl", nil }
	readFile = func(string) ([]byte, error) { return []byte("binary-bytes"), nil }

	output := captureOutput(func() {
		require.NoError(t, Deploy(context.Background(), writeDeployConfig(t), "", "", false))
	})

	assert.True(t, mock.ExecutedWith("mkdir -p /tmp/trinityctl-deploy"))
	assert.True(t, mock.ExecutedWith("/tmp/trinityctl-deploy/trinityctl provision -c /tmp/trinityctl-deploy/trinity.yaml"))

	uploads := mock.Uploads()
	require.Len(t, uploads, 2)
	assert.Equal(t, remoteBinaryPath, uploads[0].Path)
	assert.Equal(t, os.FileMode(0755), uploads[0].Mode)
	assert.Equal(t, remoteConfigPath, uploads[1].Path)
	assert.Equal(t, os.FileMode(0600), uploads[1].Mode)
	// The uploaded config round-trips the loaded values
	assert.Contains(t, string(uploads[1].Content), "version: 2.0.0")

	assert.Contains(t, output, "Deployed Trinity 2.0.0 to 10.0.0.5")
}

func TestDeploy_SkipHealthFlag(t *testing.T) {
	saveAndRestoreDeployFactories(t)

	mock := ssh.NewMockCommunicator()
	newCommunicator = func(*ssh.Config) (ssh.Communicator, error) { return mock, nil }
	loadPrivateKey = func(string) ([]byte, error) { return []byte("key"), nil }
	executablePath = func() (string, error) { return "/usr/local/bin/trinityctl", nil }
	readFile = func(string) ([]byte, error) { return []byte("bin"), nil }

	_ = captureOutput(func() {
		require.NoError(t, Deploy(context.Background(), writeDeployConfig(t), "", "", true))
	})
	assert.True(t, mock.ExecutedWith("--skip-health"))
}

func TestDeploy_HostArgumentOverridesConfig(t *testing.T) {
	saveAndRestoreDeployFactories(t)

	var dialedHost string
	newCommunicator = func(cfg *ssh.Config) (ssh.Communicator, error) {
		dialedHost = cfg.Host
		return ssh.NewMockCommunicator(), nil
	}
	loadPrivateKey = func(string) ([]byte, error) { return []byte("key"), nil }
	executablePath = func() (string, error) { return "/usr/local/bin/trinityctl", nil }
	readFile = func(string) ([]byte, error) { return []byte("bin"), nil }

	_ = captureOutput(func() {
		require.NoError(t, Deploy(context.Background(), writeDeployConfig(t), "10.0.0.7", "", false))
	})
	assert.Equal(t, "10.0.0.7", dialedHost)
}

func TestDeploy_NoHostConfigured(t *testing.T) {
	saveAndRestoreDeployFactories(t)

	err := Deploy(context.Background(), writeTestConfig(t), "", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no deploy host configured")
}

func TestDeploy_KeyFlagOverridesConfig(t *testing.T) {
	saveAndRestoreDeployFactories(t)

	var usedKey string
	loadPrivateKey = func(path string) ([]byte, error) {
		usedKey = path
		return []byte("key"), nil
	}
	newCommunicator = func(*ssh.Config) (ssh.Communicator, error) {
		return ssh.NewMockCommunicator(), nil
	}
	executablePath = func() (string, error) { return "/usr/local/bin/trinityctl", nil }
	readFile = func(string) ([]byte, error) { return []byte("bin"), nil }

	_ = captureOutput(func() {
		require.NoError(t, Deploy(context.Background(), writeDeployConfig(t), "", "/tmp/other_key", false))
	})
	assert.Equal(t, "/tmp/other_key", usedKey)
}

func TestDeploy_RemoteProvisionFails(t *testing.T) {
	saveAndRestoreDeployFactories(t)

	mock := ssh.NewMockCommunicator()
	mock.Respond("provision", "preflight failed", errors.New("exit status 1"))
	newCommunicator = func(*ssh.Config) (ssh.Communicator, error) { return mock, nil }
	loadPrivateKey = func(string) ([]byte, error) { return []byte("key"), nil }
	executablePath = func() (string, error) { return "/usr/local/bin/trinityctl", nil }
	readFile = func(string) ([]byte, error) { return []byte("bin"), nil }

	_ = captureOutput(func() {
		err := Deploy(context.Background(), writeDeployConfig(t), "", "", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "remote provisioning failed")
	})
}

func TestDeploy_UploadFailure(t *testing.T) {
	saveAndRestoreDeployFactories(t)

	mock := ssh.NewMockCommunicator()
	mock.FailUploads(errors.New("connection reset"))
	newCommunicator = func(*ssh.Config) (ssh.Communicator, error) { return mock, nil }
	loadPrivateKey = func(string) ([]byte, error) { return []byte("key"), nil }
	executablePath = func() (string, error) { return "/usr/local/bin/trinityctl", nil }
	readFile = func(string) ([]byte, error) { return []byte("bin"), nil }

	_ = captureOutput(func() {
		err := Deploy(context.Background(), writeDeployConfig(t), "", "", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})
}
