package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/notscripter/compose-cli/internal/errors"
	"github.com/notscripter/compose-cli/internal/testutil"
)

func writeTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteProject(t, filepath.Join(dir, "EmptyActivity"), testutil.Project{Name: "TemplateApp", ID: "org.example.template"})
	testutil.WriteProject(t, filepath.Join(dir, "BottomNavigation"), testutil.Project{Name: "NavApp", ID: "org.example.nav"})
	testutil.WriteFile(t, dir, "EmptyActivity/template.yaml", "description: Empty Compose activity\n")
	return dir
}

type stubPrompter struct {
	inputs map[string]string
	choice string
	asked  []string
}

func (s *stubPrompter) Input(title, _ string) (string, error) {
	s.asked = append(s.asked, title)
	return s.inputs[title], nil
}

func (s *stubPrompter) Select(title string, options []string) (string, error) {
	s.asked = append(s.asked, title)
	if s.choice != "" {
		return s.choice, nil
	}
	return options[0], nil
}

func TestNewInitCmd(t *testing.T) {
	c := subcommand(t, NewRootCmd(), "init")

	assert.Equal(t, "init [name] [package] [location] [template]", c.Use)
	assert.NotEmpty(t, c.Short)
	assert.NotEmpty(t, c.Long)
	for _, name := range []string{"name", "package", "location", "template"} {
		assert.NotNil(t, c.Flags().Lookup(name), name)
	}
}

func TestInit_Positional(t *testing.T) {
	h := newHarness(t)
	tmplDir := writeTemplates(t)
	dest := filepath.Join(t.TempDir(), "my-app")

	err := h.execute("--templates-dir", tmplDir, "init", "MyApp", "com.acme.myapp", dest)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dest, "app/src/main/java/com/acme/myapp/MainActivity.kt"))
	assert.Contains(t, testutil.ReadFile(t, dest, "settings.gradle.kts"), `rootProject.name = "MyApp"`)
	require.Len(t, h.reporter.Messages("success"), 1)
	assert.Contains(t, h.reporter.Messages("success")[0], dest)
}

func TestInit_FlagsOverArgs(t *testing.T) {
	h := newHarness(t)
	tmplDir := writeTemplates(t)
	dest := filepath.Join(t.TempDir(), "nav")

	err := h.execute("--templates-dir", tmplDir, "init", "Ignored", "ignored.pkg",
		"-n", "NavClone", "-p", "com.acme.nav", "-l", dest, "-t", "BottomNavigation")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dest, "app/src/main/java/com/acme/nav/MainActivity.kt"))
	assert.Contains(t, testutil.ReadFile(t, dest, "settings.gradle.kts"), "NavClone")
}

func TestInit_DefaultLocationAndTemplate(t *testing.T) {
	h := newHarness(t)
	tmplDir := writeTemplates(t)
	work := t.TempDir()
	t.Chdir(work)

	require.NoError(t, h.execute("--templates-dir", tmplDir, "init", "MyApp", "com.acme.myapp"))

	// EmptyActivity is the built-in default template.
	assert.FileExists(t, filepath.Join(work, "MyApp", "app/src/main/java/com/acme/myapp/MainActivity.kt"))
}

func TestInit_ConfigDefaultTemplate(t *testing.T) {
	h := newHarness(t)
	tmplDir := writeTemplates(t)
	writeConfig(t, h.config, "defaultTemplate: BottomNavigation\n")
	dest := filepath.Join(t.TempDir(), "app")

	require.NoError(t, h.execute("--templates-dir", tmplDir, "init", "MyApp", "com.acme.myapp", dest))

	// The nav template's theme is renamed after the new project.
	assert.FileExists(t, filepath.Join(dest, "app/src/main/java/com/acme/myapp/ui/theme/Theme.kt"))
	assert.NotContains(t, testutil.ReadFile(t, dest, "app/src/main/java/com/acme/myapp/MainActivity.kt"), "NavApp")
}

func TestInit_Prompts(t *testing.T) {
	h := newHarness(t)
	tmplDir := writeTemplates(t)
	dest := filepath.Join(t.TempDir(), "prompted")

	p := &stubPrompter{inputs: map[string]string{
		"Project name": "Prompted",
		"Package name": "com.acme.prompted",
	}, choice: "EmptyActivity"}
	h.gc.Prompter = p
	h.gc.Interactive = func() bool { return true }

	require.NoError(t, h.execute("--templates-dir", tmplDir, "init", "-l", dest))

	assert.Equal(t, []string{"Project name", "Package name", "Template"}, p.asked)
	assert.FileExists(t, filepath.Join(dest, "app/src/main/java/com/acme/prompted/MainActivity.kt"))
}

func TestInit_NoPromptWhenGiven(t *testing.T) {
	h := newHarness(t)
	tmplDir := writeTemplates(t)
	p := &stubPrompter{}
	h.gc.Prompter = p
	h.gc.Interactive = func() bool { return true }

	dest := filepath.Join(t.TempDir(), "given")
	require.NoError(t, h.execute("--templates-dir", tmplDir, "init", "MyApp", "com.acme.myapp", dest, "EmptyActivity"))
	assert.Empty(t, p.asked)
}

func TestInit_Errors(t *testing.T) {
	t.Run("missing name without terminal", func(t *testing.T) {
		h := newHarness(t)
		err := h.execute("--templates-dir", writeTemplates(t), "init")
		assert.Equal(t, oerrors.ExitMalformedInput, exitCode(t, err))
		assert.Equal(t, []string{"Missing project name"}, h.reporter.Messages("error"))
	})

	t.Run("invalid package", func(t *testing.T) {
		h := newHarness(t)
		err := h.execute("--templates-dir", writeTemplates(t), "init", "MyApp", "myapp")
		assert.Equal(t, oerrors.ExitMalformedInput, exitCode(t, err))
	})

	t.Run("unknown template", func(t *testing.T) {
		h := newHarness(t)
		dest := filepath.Join(t.TempDir(), "x")
		err := h.execute("--templates-dir", writeTemplates(t), "init", "MyApp", "com.acme.myapp", dest, "Nope")
		assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
		assert.NoDirExists(t, dest)
	})

	t.Run("destination exists", func(t *testing.T) {
		h := newHarness(t)
		dest := t.TempDir()
		testutil.WriteFile(t, dest, "keep.txt", "keep")

		err := h.execute("--templates-dir", writeTemplates(t), "init", "MyApp", "com.acme.myapp", dest)
		assert.Equal(t, oerrors.ExitAlreadyExists, exitCode(t, err))

		entries, rErr := os.ReadDir(dest)
		require.NoError(t, rErr)
		assert.Len(t, entries, 1)
	})

	t.Run("template without application id", func(t *testing.T) {
		h := newHarness(t)
		tmplDir := t.TempDir()
		testutil.WriteProject(t, filepath.Join(tmplDir, "Broken"), testutil.Project{
			Name: "TemplateApp", ID: "org.example.template", SkipApplicationID: true,
		})
		dest := filepath.Join(t.TempDir(), "x")

		err := h.execute("--templates-dir", tmplDir, "init", "MyApp", "com.acme.myapp", dest, "Broken")
		assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
		assert.NoDirExists(t, dest)
	})

	t.Run("too many args", func(t *testing.T) {
		h := newHarness(t)
		err := h.execute("init", "a", "b", "c", "d", "e")
		assert.Error(t, err)
	})
}
