package templates

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notscripter/compose-cli/internal/config"
	oerrors "github.com/notscripter/compose-cli/internal/errors"
	"github.com/notscripter/compose-cli/internal/project"
	"github.com/notscripter/compose-cli/internal/rewrite"
	"github.com/notscripter/compose-cli/internal/testutil"
)

var target = project.Identity{Name: "MyApp", ID: "com.acme.myapp"}

// setup writes a template and points the scratch location at a private
// directory so leftovers can be detected.
func setup(t *testing.T, p testutil.Project) (tmpl, scratchRoot, workDir string) {
	t.Helper()

	scratchRoot = t.TempDir()
	t.Setenv("TMPDIR", scratchRoot)

	tmpl = testutil.WriteProject(t, filepath.Join(t.TempDir(), "EmptyActivity"), p)
	workDir = t.TempDir()
	return tmpl, scratchRoot, workDir
}

func newMaterializer(t *testing.T) *Materializer {
	t.Helper()
	m, err := NewMaterializer(afero.NewOsFs(), nil)
	require.NoError(t, err)
	return m
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "expected %s to be empty", dir)
}

func TestMaterialize(t *testing.T) {
	tmpl, scratchRoot, workDir := setup(t, testutil.Project{Name: "TemplateApp", ID: "org.example.template"})
	dest := filepath.Join(workDir, "MyApp")

	result, err := newMaterializer(t).Materialize(context.Background(), Options{
		Template:    tmpl,
		Target:      target,
		Destination: dest,
	})
	require.NoError(t, err)

	assert.Equal(t, "MyApp", result.Name)
	assert.Equal(t, dest, result.Destination)
	assert.Equal(t, project.Identity{Name: "TemplateApp", ID: "org.example.template"}, result.Source)
	assert.ElementsMatch(t, []string{"main", "test", "androidTest"}, result.Relocated)
	assert.NotEmpty(t, result.Rewritten)

	assert.FileExists(t, filepath.Join(dest, "app/src/main/java/com/acme/myapp/MainActivity.kt"))
	assert.FileExists(t, filepath.Join(dest, "app/src/main/java/com/acme/myapp/ui/theme/Theme.kt"))
	assert.FileExists(t, filepath.Join(dest, "app/src/test/java/com/acme/myapp/ExampleUnitTest.kt"))
	assert.FileExists(t, filepath.Join(dest, "app/src/androidTest/java/com/acme/myapp/ExampleInstrumentedTest.kt"))
	assert.NoDirExists(t, filepath.Join(dest, "app/src/main/java/org"))

	got, err := project.ReadIdentity(afero.NewOsFs(), dest)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	assert.Contains(t, testutil.ReadFile(t, dest, "app/src/main/java/com/acme/myapp/MainActivity.kt"),
		"import com.acme.myapp.ui.theme.MyAppTheme")

	// No rewritable file keeps the template identity.
	rw, err := rewrite.New(afero.NewOsFs(), config.DefaultRewriteInclude)
	require.NoError(t, err)
	err = filepath.Walk(dest, func(path string, info os.FileInfo, err error) error {
		require.NoError(t, err)
		rel, _ := filepath.Rel(dest, path)
		if info.IsDir() || !rw.Matches(rel) {
			return nil
		}
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "org.example.template", rel)
		assert.NotContains(t, string(data), "TemplateApp", rel)
		return nil
	})
	require.NoError(t, err)

	// The template itself is unchanged.
	assert.Contains(t, testutil.ReadFile(t, tmpl, "settings.gradle.kts"), "TemplateApp")

	assertEmptyDir(t, scratchRoot)

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no staging directory may remain next to the destination")
	assert.Equal(t, "MyApp", entries[0].Name())

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestMaterialize_MissingApplicationID(t *testing.T) {
	tmpl, scratchRoot, workDir := setup(t, testutil.Project{
		Name: "TemplateApp", ID: "org.example.template", SkipApplicationID: true,
	})
	dest := filepath.Join(workDir, "MyApp")

	_, err := newMaterializer(t).Materialize(context.Background(), Options{
		Template: tmpl, Target: target, Destination: dest,
	})

	require.ErrorIs(t, err, oerrors.ErrNotFound)
	assert.NoDirExists(t, dest)
	assertEmptyDir(t, scratchRoot)
}

func TestMaterialize_DestinationExists(t *testing.T) {
	tmpl, scratchRoot, workDir := setup(t, testutil.Project{Name: "TemplateApp", ID: "org.example.template"})
	dest := filepath.Join(workDir, "MyApp")
	testutil.WriteFile(t, dest, "notes.txt", "keep me")

	_, err := newMaterializer(t).Materialize(context.Background(), Options{
		Template: tmpl, Target: target, Destination: dest,
	})

	require.ErrorIs(t, err, oerrors.ErrAlreadyExists)
	assert.Equal(t, oerrors.ExitAlreadyExists, oerrors.ExitCodeFromError(err))

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep me", testutil.ReadFile(t, dest, "notes.txt"))
	assertEmptyDir(t, scratchRoot)
}

func TestMaterialize_NoAndroidTestRoot(t *testing.T) {
	tmpl, _, workDir := setup(t, testutil.Project{
		Name: "TemplateApp", ID: "org.example.template", SkipAndroidTest: true,
	})
	dest := filepath.Join(workDir, "MyApp")

	result, err := newMaterializer(t).Materialize(context.Background(), Options{
		Template: tmpl, Target: target, Destination: dest,
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"main", "test"}, result.Relocated)
	assert.FileExists(t, filepath.Join(dest, "app/src/main/java/com/acme/myapp/MainActivity.kt"))
	assert.NoDirExists(t, filepath.Join(dest, "app/src/androidTest"))
}

func TestMaterialize_TemplateNotFound(t *testing.T) {
	workDir := t.TempDir()

	_, err := newMaterializer(t).Materialize(context.Background(), Options{
		Template:    filepath.Join(workDir, "missing"),
		Target:      target,
		Destination: filepath.Join(workDir, "MyApp"),
	})

	require.ErrorIs(t, err, oerrors.ErrNotFound)
	assert.True(t, strings.Contains(err.Error(), "template not found"))
}

func TestMaterialize_Cancelled(t *testing.T) {
	tmpl, scratchRoot, workDir := setup(t, testutil.Project{Name: "TemplateApp", ID: "org.example.template"})
	dest := filepath.Join(workDir, "MyApp")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newMaterializer(t).Materialize(ctx, Options{
		Template: tmpl, Target: target, Destination: dest,
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.NoDirExists(t, dest)
	assertEmptyDir(t, scratchRoot)
}

func TestMaterialize_SameIdentity(t *testing.T) {
	tmpl, _, workDir := setup(t, testutil.Project{Name: "TemplateApp", ID: "org.example.template"})
	dest := filepath.Join(workDir, "Copy")

	result, err := newMaterializer(t).Materialize(context.Background(), Options{
		Template:    tmpl,
		Target:      project.Identity{Name: "TemplateApp", ID: "org.example.template"},
		Destination: dest,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Relocated)
	assert.Empty(t, result.Rewritten)
	assert.FileExists(t, filepath.Join(dest, "app/src/main/java/org/example/template/MainActivity.kt"))
}
