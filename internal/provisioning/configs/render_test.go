package configs

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synapticos/trinityctl/internal/config"
	"github.com/synapticos/trinityctl/internal/platform/system"
	"github.com/synapticos/trinityctl/internal/provisioning"
	"github.com/synapticos/trinityctl/internal/render"
)

func testContext(t *testing.T) *provisioning.Context {
	t.Helper()
	cfg, err := config.LoadFromBytes([]byte("version: 1.0.0\n"))
	require.NoError(t, err)
	return provisioning.NewContext(context.Background(), cfg, system.NewMockRunner())
}

func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origReadFile := readFile
	origReadLink := readLink
	origRemoveFile := removeFile
	origMakeLink := makeLink
	origWriteFiles := writeFiles
	origTimeNow := timeNow
	t.Cleanup(func() {
		readFile = origReadFile
		readLink = origReadLink
		removeFile = origRemoveFile
		makeLink = origMakeLink
		writeFiles = origWriteFiles
		timeNow = origTimeNow
	})
}

// renderedOnDisk renders the current config set and stubs readFile to serve
// those contents as if a previous run had written them.
func renderedOnDisk(t *testing.T, ctx *provisioning.Context) {
	t.Helper()
	files, err := render.RenderAll(ctx.Config, "previous-run", time.Now())
	require.NoError(t, err)

	onDisk := make(map[string][]byte, len(files))
	for _, f := range files {
		onDisk[f.Path] = f.Content
	}
	readFile = func(path string) ([]byte, error) {
		content, ok := onDisk[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return content, nil
	}
}

func TestRenderStep_CheckNothingOnDisk(t *testing.T) {
	saveAndRestoreFactories(t)
	readFile = func(string) ([]byte, error) { return nil, os.ErrNotExist }

	done, err := NewRenderStep().Check(testContext(t))
	require.NoError(t, err)
	assert.False(t, done)
}

func TestRenderStep_CheckEverythingCurrent(t *testing.T) {
	saveAndRestoreFactories(t)
	ctx := testContext(t)
	renderedOnDisk(t, ctx)
	readLink = func(string) (string, error) { return render.NginxSitePath, nil }

	done, err := NewRenderStep().Check(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestRenderStep_CheckIgnoresRuntimeDeployStamp(t *testing.T) {
	saveAndRestoreFactories(t)
	ctx := testContext(t)
	renderedOnDisk(t, ctx)
	readLink = func(string) (string, error) { return render.NginxSitePath, nil }

	// A later check renders a different run ID and timestamp but the step
	// must still consider the on-disk runtime config current.
	timeNow = func() time.Time { return time.Now().Add(time.Hour) }

	done, err := NewRenderStep().Check(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestRenderStep_CheckTuningKnobChanged(t *testing.T) {
	saveAndRestoreFactories(t)
	ctx := testContext(t)
	renderedOnDisk(t, ctx)
	readLink = func(string) (string, error) { return render.NginxSitePath, nil }

	// Only the orchestrator tuning changes; environment and version stay
	// the same. The on-disk runtime config is stale and must be rewritten.
	ctx.Config.Orchestrator.CoherenceThreshold = 0.5

	done, err := NewRenderStep().Check(ctx)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestRenderStep_CheckVersionChanged(t *testing.T) {
	saveAndRestoreFactories(t)
	ctx := testContext(t)
	renderedOnDisk(t, ctx)
	readLink = func(string) (string, error) { return render.NginxSitePath, nil }

	ctx.Config.Version = "2.0.0"

	done, err := NewRenderStep().Check(ctx)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestRenderStep_CheckMissingSiteLink(t *testing.T) {
	saveAndRestoreFactories(t)
	ctx := testContext(t)
	renderedOnDisk(t, ctx)
	readLink = func(string) (string, error) { return "", os.ErrNotExist }

	done, err := NewRenderStep().Check(ctx)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestRenderStep_ApplyWritesAndLinks(t *testing.T) {
	saveAndRestoreFactories(t)
	ctx := testContext(t)

	var written []render.File
	writeFiles = func(files []render.File) error {
		written = files
		return nil
	}
	var removed []string
	removeFile = func(path string) error {
		removed = append(removed, path)
		return nil
	}
	readLink = func(string) (string, error) { return "", os.ErrNotExist }
	var linkedFrom, linkedTo string
	makeLink = func(oldname, newname string) error {
		linkedFrom, linkedTo = oldname, newname
		return nil
	}

	require.NoError(t, NewRenderStep().Apply(ctx))

	// runtime.json + nginx site + three units
	assert.Len(t, written, 5)
	assert.Len(t, ctx.State.RenderedFiles, 5)
	assert.Contains(t, ctx.State.RenderedFiles, render.NginxSitePath)
	assert.Contains(t, removed, nginxDefaultSiteLink)
	assert.Equal(t, render.NginxSitePath, linkedFrom)
	assert.Equal(t, render.NginxSiteLinkPath, linkedTo)
}

func TestRenderStep_ApplyReplacesStaleLink(t *testing.T) {
	saveAndRestoreFactories(t)
	ctx := testContext(t)

	writeFiles = func([]render.File) error { return nil }
	var removed []string
	removeFile = func(path string) error {
		removed = append(removed, path)
		return nil
	}
	readLink = func(string) (string, error) { return "/etc/nginx/sites-available/old.conf", nil }
	linked := false
	makeLink = func(string, string) error {
		linked = true
		return nil
	}

	require.NoError(t, NewRenderStep().Apply(ctx))
	assert.Contains(t, removed, render.NginxSiteLinkPath)
	assert.True(t, linked)
}
