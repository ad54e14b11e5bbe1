// Package gradle invokes a project's Gradle wrapper.
package gradle

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/notscripter/compose-cli/internal/process"
)

// DebugAPKPath is the debug apk location relative to the project root.
var DebugAPKPath = filepath.Join("app", "build", "outputs", "apk", "debug", "app-debug.apk")

// DefaultWrapper returns the wrapper script name for the running OS.
func DefaultWrapper() string {
	if runtime.GOOS == "windows" {
		return "gradlew.bat"
	}
	return "./gradlew"
}

// Wrapper runs gradle tasks in a project directory.
type Wrapper struct {
	runner process.Runner
	bin    string
	dir    string
}

// NewWrapper creates a Wrapper. An empty bin uses DefaultWrapper.
func NewWrapper(runner process.Runner, bin, dir string) *Wrapper {
	if bin == "" || (bin == "./gradlew" && runtime.GOOS == "windows") {
		bin = DefaultWrapper()
	}
	return &Wrapper{runner: runner, bin: bin, dir: dir}
}

// Task runs the given gradle arguments.
func (w *Wrapper) Task(ctx context.Context, args ...string) (*process.Result, error) {
	return w.runner.Run(ctx, process.Command{Name: w.bin, Args: args, Dir: w.dir})
}

// Sync refreshes project dependencies.
func (w *Wrapper) Sync(ctx context.Context) error {
	_, err := w.Task(ctx, "--refresh-dependencies")
	return err
}

// AssembleDebug builds the debug apk.
func (w *Wrapper) AssembleDebug(ctx context.Context) error {
	_, err := w.Task(ctx, "assembleDebug")
	return err
}

// DebugAPK returns the path of the debug apk built by AssembleDebug.
func (w *Wrapper) DebugAPK() string {
	return filepath.Join(w.dir, DebugAPKPath)
}
