package rewrite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notscripter/compose-cli/internal/config"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		replacements []Replacement
		want         string
		wantCount    int
	}{
		{
			name:    "id and name",
			content: "package org.example.template\n\nclass TemplateApp\n",
			replacements: []Replacement{
				{From: "org.example.template", To: "com.acme.myapp"},
				{From: "TemplateApp", To: "MyApp"},
			},
			want:      "package com.acme.myapp\n\nclass MyApp\n",
			wantCount: 2,
		},
		{
			name:    "later entries see earlier output",
			content: "alpha",
			replacements: []Replacement{
				{From: "alpha", To: "beta"},
				{From: "beta", To: "gamma"},
			},
			want:      "gamma",
			wantCount: 2,
		},
		{
			name:         "empty key skipped",
			content:      "unchanged",
			replacements: []Replacement{{From: "", To: "x"}},
			want:         "unchanged",
		},
		{
			name:         "multiple occurrences",
			content:      "a a a",
			replacements: []Replacement{{From: "a", To: "b"}},
			want:         "b b b",
			wantCount:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := Apply(tt.content, tt.replacements)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, n)
		})
	}
}

func TestMatches(t *testing.T) {
	r, err := New(afero.NewMemMapFs(), config.DefaultRewriteInclude)
	require.NoError(t, err)

	assert.True(t, r.Matches("MainActivity.kt"))
	assert.True(t, r.Matches(filepath.Join("app", "src", "main", "java", "Main.kt")))
	assert.True(t, r.Matches("app/build.gradle.kts"))
	assert.True(t, r.Matches("app/src/main/AndroidManifest.xml"))
	assert.True(t, r.Matches("app/src/main/java/Legacy.java"))
	assert.False(t, r.Matches("app/src/main/res/drawable/icon.png"))
	assert.False(t, r.Matches("gradle.properties"))
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(afero.NewMemMapFs(), []string{"[unclosed"})
	assert.ErrorContains(t, err, "invalid rewrite pattern")
}

func TestRewrite(t *testing.T) {
	root := t.TempDir()
	fsys := afero.NewOsFs()

	files := map[string]string{
		"settings.gradle.kts":                   "rootProject.name = \"TemplateApp\"\n",
		"app/build.gradle.kts":                  "applicationId = \"org.example.template\"\n",
		"app/src/main/java/org/example/Main.kt": "package org.example.template\n",
		"app/src/main/res/values/strings.xml":   "<string name=\"app_name\">TemplateApp</string>\n",
		"app/src/main/java/org/example/Util.kt": "object Util\n",
		"app/src/main/res/drawable/readme.txt":  "TemplateApp is not touched here\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	}

	// Back-date the file without keys so an accidental write is visible.
	untouched := filepath.Join(root, "app/src/main/java/org/example/Util.kt")
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(untouched, past, past))

	r, err := New(fsys, config.DefaultRewriteInclude)
	require.NoError(t, err)

	result, err := r.Rewrite(root, []Replacement{
		{From: "org.example.template", To: "com.acme.myapp"},
		{From: "TemplateApp", To: "MyApp"},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Scanned)
	assert.Len(t, result.Modified, 4)
	assert.Equal(t, 4, result.Replacements)

	data, err := os.ReadFile(filepath.Join(root, "settings.gradle.kts"))
	require.NoError(t, err)
	assert.Equal(t, "rootProject.name = \"MyApp\"\n", string(data))

	data, err = os.ReadFile(filepath.Join(root, "app/src/main/res/drawable/readme.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "TemplateApp", "files outside the allow-list keep their content")

	info, err := os.Stat(untouched)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past), "file without keys must not be rewritten")

	info, err = os.Stat(filepath.Join(root, "settings.gradle.kts"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	// File names never change.
	_, err = os.Stat(filepath.Join(root, "app/src/main/java/org/example/Main.kt"))
	assert.NoError(t, err)
}

func TestRewrite_NoReplacements(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/p/a.kt", []byte("x"), 0o644))

	r, err := New(fsys, []string{"**/*.kt"})
	require.NoError(t, err)

	result, err := r.Rewrite("/p", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Empty(t, result.Modified)
}
