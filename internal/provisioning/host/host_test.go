package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synapticos/trinityctl/internal/config"
	"github.com/synapticos/trinityctl/internal/platform/system"
	"github.com/synapticos/trinityctl/internal/provisioning"
	"github.com/synapticos/trinityctl/internal/util/prerequisites"
)

func testContext(t *testing.T, runner system.Runner) *provisioning.Context {
	t.Helper()
	cfg, err := config.LoadFromBytes([]byte("version: 1.0.0\n"))
	require.NoError(t, err)
	return provisioning.NewContext(context.Background(), cfg, runner)
}

// saveAndRestoreFactories resets the package factory variables after a test.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origGeteuid := geteuid
	origFreeDisk := freeDiskBytes
	origAvailMem := availableMemory
	origCheckTools := checkHostTools
	origStatDir := statDir
	origMakeDirs := makeDirs
	t.Cleanup(func() {
		geteuid = origGeteuid
		freeDiskBytes = origFreeDisk
		availableMemory = origAvailMem
		checkHostTools = origCheckTools
		statDir = origStatDir
		makeDirs = origMakeDirs
	})
}

func stubPreflightOK() {
	geteuid = func() int { return 0 }
	freeDiskBytes = func(string) (uint64, error) { return 100 * gigabyte, nil }
	availableMemory = func() (uint64, error) { return 8 * gigabyte, nil }
	checkHostTools = func() *prerequisites.CheckResults { return &prerequisites.CheckResults{} }
}

func TestPreflightStep_AllChecksPass(t *testing.T) {
	saveAndRestoreFactories(t)
	stubPreflightOK()

	ctx := testContext(t, system.NewMockRunner())
	step := NewPreflightStep()

	done, err := step.Check(ctx)
	require.NoError(t, err)
	assert.False(t, done)

	assert.NoError(t, step.Apply(ctx))
}

func TestPreflightStep_DisabledByConfig(t *testing.T) {
	saveAndRestoreFactories(t)

	ctx := testContext(t, system.NewMockRunner())
	disabled := false
	ctx.Config.PreflightCheckEnabled = &disabled

	done, err := NewPreflightStep().Check(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestPreflightStep_NotRoot(t *testing.T) {
	saveAndRestoreFactories(t)
	stubPreflightOK()
	geteuid = func() int { return 1000 }

	err := NewPreflightStep().Apply(testContext(t, system.NewMockRunner()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root privileges")
}

func TestPreflightStep_InsufficientDisk(t *testing.T) {
	saveAndRestoreFactories(t)
	stubPreflightOK()
	freeDiskBytes = func(string) (uint64, error) { return 1 * gigabyte, nil }

	err := NewPreflightStep().Apply(testContext(t, system.NewMockRunner()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient disk space")
}

func TestPreflightStep_InsufficientMemory(t *testing.T) {
	saveAndRestoreFactories(t)
	stubPreflightOK()
	availableMemory = func() (uint64, error) { return 256 << 20, nil }

	err := NewPreflightStep().Apply(testContext(t, system.NewMockRunner()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient memory")
}

func TestPreflightStep_MissingTools(t *testing.T) {
	saveAndRestoreFactories(t)
	stubPreflightOK()
	checkHostTools = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{
			Missing: []prerequisites.Tool{{Name: "systemctl", Required: true, Description: "units"}},
		}
	}

	err := NewPreflightStep().Apply(testContext(t, system.NewMockRunner()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "systemctl")
}

func TestUserStep_AlreadyExists(t *testing.T) {
	runner := system.NewMockRunner()
	runner.Respond("getent passwd synaptic", "synaptic:x:998:998::/opt/synapticos:/usr/sbin/nologin", nil)

	ctx := testContext(t, runner)
	done, err := NewUserStep().Check(ctx)

	require.NoError(t, err)
	assert.True(t, done)
}

func TestUserStep_CreatesUser(t *testing.T) {
	runner := system.NewMockRunner()
	runner.Respond("getent passwd synaptic", "", errors.New("exit status 2"))

	ctx := testContext(t, runner)
	step := NewUserStep()

	done, err := step.Check(ctx)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, step.Apply(ctx))
	assert.True(t, runner.CalledWith("useradd --system"))
	assert.True(t, ctx.State.UserCreated)
}

func TestDirectoriesStep_CheckAllPresent(t *testing.T) {
	saveAndRestoreFactories(t)
	statDir = func(string) (os.FileInfo, error) { return dirInfo{}, nil }

	done, err := NewDirectoriesStep().Check(testContext(t, system.NewMockRunner()))
	require.NoError(t, err)
	assert.True(t, done)
}

func TestDirectoriesStep_CreatesMissing(t *testing.T) {
	saveAndRestoreFactories(t)
	statDir = func(string) (os.FileInfo, error) { return nil, os.ErrNotExist }

	var created []string
	makeDirs = func(path string, _ os.FileMode) error {
		created = append(created, path)
		return nil
	}

	runner := system.NewMockRunner()
	ctx := testContext(t, runner)
	step := NewDirectoriesStep()

	done, err := step.Check(ctx)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, step.Apply(ctx))
	assert.ElementsMatch(t, ctx.Config.Paths.All(), created)
	assert.ElementsMatch(t, ctx.Config.Paths.All(), ctx.State.CreatedDirs)
	assert.True(t, runner.CalledWith("chown -R synaptic:synaptic /var/lib/synapticos"))
	assert.True(t, runner.CalledWith("chown -R synaptic:synaptic /var/log/synapticos"))
}

func TestPackagesStep_AllInstalled(t *testing.T) {
	runner := system.NewMockRunner()
	runner.Respond("dpkg-query", "install ok installed", nil)

	ctx := testContext(t, runner)
	done, err := NewPackagesStep().Check(ctx)

	require.NoError(t, err)
	assert.True(t, done)
}

func TestPackagesStep_InstallsOnlyMissing(t *testing.T) {
	runner := system.NewMockRunner()
	runner.Respond("dpkg-query", "install ok installed", nil)
	runner.Respond("dpkg-query -W -f=${Status} ufw", "", errors.New("no packages found"))
	runner.Respond("dpkg-query -W -f=${Status} sqlite3", "", errors.New("no packages found"))

	ctx := testContext(t, runner)
	step := NewPackagesStep()

	done, err := step.Check(ctx)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, step.Apply(ctx))
	assert.True(t, runner.CalledWith("apt-get update"))
	assert.True(t, runner.CalledWith("apt-get install -y --no-install-recommends ufw sqlite3"))
	assert.Equal(t, []string{"ufw", "sqlite3"}, ctx.State.InstalledPackages)
}

// progressObserver records Progress updates and delegates everything else.
type progressObserver struct {
	provisioning.Observer
	updates []string
}

func (p *progressObserver) Progress(step string, current, total int) {
	p.updates = append(p.updates, fmt.Sprintf("%s %d/%d", step, current, total))
}

func TestPackagesStep_ReportsProgress(t *testing.T) {
	runner := system.NewMockRunner()
	runner.Respond("dpkg-query", "install ok installed", nil)
	runner.Respond("dpkg-query -W -f=${Status} ufw", "", errors.New("no packages found"))
	runner.Respond("dpkg-query -W -f=${Status} sqlite3", "", errors.New("no packages found"))

	ctx := testContext(t, runner)
	obs := &progressObserver{Observer: ctx.Observer}
	ctx.Observer = obs

	require.NoError(t, NewPackagesStep().Apply(ctx))
	assert.Equal(t, []string{"packages 1/2", "packages 2/2"}, obs.updates)
}

func TestFirewallStep_Check(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
		done   bool
	}{
		{
			name:   "active with rules",
			output: "Status: active\n\nTo  Action  From\nOpenSSH  ALLOW  Anywhere\n80/tcp  ALLOW  Anywhere\n",
			done:   true,
		},
		{
			name:   "active missing port rule",
			output: "Status: active\n\nOpenSSH  ALLOW  Anywhere\n",
			done:   false,
		},
		{
			// 8080/tcp must not satisfy the 80/tcp rule
			name:   "active with superstring rule only",
			output: "Status: active\n\nTo  Action  From\nOpenSSH  ALLOW  Anywhere\n8080/tcp  ALLOW  Anywhere\n",
			done:   false,
		},
		{
			name:   "inactive",
			output: "Status: inactive",
			done:   false,
		},
		{
			name: "ufw missing",
			err:  errors.New("exec: ufw: not found"),
			done: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := system.NewMockRunner()
			runner.Respond("ufw status", tt.output, tt.err)

			done, err := NewFirewallStep().Check(testContext(t, runner))
			require.NoError(t, err)
			assert.Equal(t, tt.done, done)
		})
	}
}

func TestFirewallStep_Apply(t *testing.T) {
	runner := system.NewMockRunner()
	ctx := testContext(t, runner)

	require.NoError(t, NewFirewallStep().Apply(ctx))
	assert.True(t, runner.CalledWith("ufw allow OpenSSH"))
	assert.True(t, runner.CalledWith("ufw allow 80/tcp"))
	assert.True(t, runner.CalledWith("ufw --force enable"))
}

// dirInfo is a minimal os.FileInfo for stubbing statDir.
type dirInfo struct{ os.FileInfo }

func (dirInfo) IsDir() bool { return true }
