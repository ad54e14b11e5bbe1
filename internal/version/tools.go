package version

import (
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/notscripter/compose-cli/internal/process"
)

// toolVersionRegex matches versions like "1.0.41" or "7.1.1-29".
var toolVersionRegex = regexp.MustCompile(`\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// Tool names an external executable and the arguments that print its version.
type Tool struct {
	Name        string
	Bin         string
	VersionArgs []string
}

// ToolInfo describes a detected external executable.
type ToolInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Version string `json:"version"`
	Found   bool   `json:"found"`

	// Message explains why the version is unknown.
	Message string `json:"message,omitempty"`
}

// DetectTool looks tool up in PATH and asks it for its version.
func DetectTool(ctx context.Context, runner process.Runner, tool Tool) ToolInfo {
	path, err := exec.LookPath(tool.Bin)
	if err != nil {
		return ToolInfo{Name: tool.Name, Message: tool.Bin + " not found in PATH"}
	}

	info := ToolInfo{Name: tool.Name, Path: path, Found: true}
	res, err := runner.Run(ctx, process.Command{Name: path, Args: tool.VersionArgs})
	if err != nil {
		info.Message = "failed to get version"
		return info
	}

	v, ok := extractVersion(res.Output)
	if !ok {
		info.Message = "unrecognized version output"
		return info
	}
	info.Version = v
	return info
}

// extractVersion finds the first version number in the tool output.
//
//	Android Debug Bridge version 1.0.41
//	Version: ImageMagick 7.1.1-29 Q16-HDRI x86_64
func extractVersion(out string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		if m := toolVersionRegex.FindString(line); m != "" {
			return m, true
		}
	}
	return "", false
}

// String renders the tool line shown by `compose version`.
func (t ToolInfo) String() string {
	switch {
	case !t.Found:
		return "not found"
	case t.Version == "":
		return t.Path + " (" + t.Message + ")"
	default:
		return t.Version + " (" + t.Path + ")"
	}
}
