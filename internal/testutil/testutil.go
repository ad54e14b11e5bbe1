// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of dir/name.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// Project describes an Android project skeleton written by WriteProject.
type Project struct {
	Name string
	ID   string

	// SkipAndroidTest omits the androidTest source root.
	SkipAndroidTest bool

	// SkipApplicationID writes a module descriptor without applicationId.
	SkipApplicationID bool
}

// WriteProject writes a minimal single-module Compose project into dir and
// returns dir.
func WriteProject(t *testing.T, dir string, p Project) string {
	t.Helper()

	pkg := strings.ReplaceAll(p.ID, ".", "/")

	WriteFile(t, dir, "settings.gradle.kts", `pluginManagement {
    repositories {
        google()
        mavenCentral()
    }
}

rootProject.name = "`+p.Name+`"
include(":app")
`)

	appID := `        applicationId = "` + p.ID + `"` + "\n"
	if p.SkipApplicationID {
		appID = ""
	}
	WriteFile(t, dir, "app/build.gradle.kts", `plugins {
    id("com.android.application")
}

android {
    namespace = "`+p.ID+`"

    defaultConfig {
`+appID+`        minSdk = 24
    }
}
`)

	WriteFile(t, dir, "app/src/main/AndroidManifest.xml", `<manifest xmlns:android="http://schemas.android.com/apk/res/android">
    <application android:label="@string/app_name">
        <activity android:name=".MainActivity" android:exported="true" />
    </application>
</manifest>
`)
	WriteFile(t, dir, "app/src/main/res/values/strings.xml",
		"<resources>\n    <string name=\"app_name\">"+p.Name+"</string>\n</resources>\n")
	WriteFile(t, dir, "app/src/main/res/values/colors.xml",
		"<resources>\n    <color name=\"black\">#FF000000</color>\n</resources>\n")

	WriteFile(t, dir, "app/src/main/java/"+pkg+"/MainActivity.kt", `package `+p.ID+`

import `+p.ID+`.ui.theme.`+p.Name+`Theme

class MainActivity {
    fun onCreate() {
        `+p.Name+`Theme {}
    }
}
`)
	WriteFile(t, dir, "app/src/main/java/"+pkg+"/ui/theme/Theme.kt",
		"package "+p.ID+".ui.theme\n\nfun "+p.Name+"Theme(content: () -> Unit) = content()\n")
	WriteFile(t, dir, "app/src/test/java/"+pkg+"/ExampleUnitTest.kt",
		"package "+p.ID+"\n\nclass ExampleUnitTest\n")
	if !p.SkipAndroidTest {
		WriteFile(t, dir, "app/src/androidTest/java/"+pkg+"/ExampleInstrumentedTest.kt",
			"package "+p.ID+"\n\nclass ExampleInstrumentedTest {\n    val id = \""+p.ID+"\"\n}\n")
	}
	WriteFile(t, dir, "gradle.properties", "android.useAndroidX=true\n")

	return dir
}
