package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/notscripter/compose-cli/internal/errors"
	"github.com/notscripter/compose-cli/internal/process"
	"github.com/notscripter/compose-cli/internal/testutil"
)

func TestSync(t *testing.T) {
	h := newHarness(t)
	dir := testutil.WriteProject(t, t.TempDir(), testutil.Project{Name: "MyApp", ID: "com.acme.myapp"})

	require.NoError(t, h.execute("-C", dir, "sync"))

	require.Len(t, h.runner.Commands, 1)
	cmd := h.runner.Commands[0]
	assert.Equal(t, "./gradlew", cmd.Name)
	assert.Equal(t, []string{"--refresh-dependencies"}, cmd.Args)
	assert.Equal(t, dir, cmd.Dir)
	assert.Equal(t, []string{"Syncing project"}, h.reporter.Messages("success"))
}

func TestSync_ConfiguredWrapper(t *testing.T) {
	h := newHarness(t)
	dir := testutil.WriteProject(t, t.TempDir(), testutil.Project{Name: "MyApp", ID: "com.acme.myapp"})
	t.Setenv("COMPOSE_TOOLS_GRADLE", "/opt/gradle/bin/gradle")

	require.NoError(t, h.execute("-C", dir, "sync"))

	require.Len(t, h.runner.Commands, 1)
	assert.Equal(t, "/opt/gradle/bin/gradle", h.runner.Commands[0].Name)
}

func TestSync_NotAProject(t *testing.T) {
	h := newHarness(t)

	err := h.execute("-C", t.TempDir(), "sync")
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
	assert.Empty(t, h.runner.Commands)
	assert.Equal(t, []string{"Sync failed"}, h.reporter.Messages("error"))
}

func TestSync_GradleFails(t *testing.T) {
	h := newHarness(t)
	dir := testutil.WriteProject(t, t.TempDir(), testutil.Project{Name: "MyApp", ID: "com.acme.myapp"})
	h.runner.Handler = func(cmd process.Command) (*process.Result, error) {
		return &process.Result{ExitCode: 1, Output: "BUILD FAILED"},
			oerrors.NewProcessError(cmd.String(), 1, "BUILD FAILED", nil)
	}

	err := h.execute("-C", dir, "sync")
	assert.Equal(t, oerrors.ExitExternalProcess, exitCode(t, err))
	assert.Equal(t, []string{"Syncing project", "Sync failed"}, h.reporter.Messages("error"))
}
