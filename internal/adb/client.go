package adb

import (
	"context"
	"fmt"
	"strings"

	oerrors "github.com/notscripter/compose-cli/internal/errors"
	"github.com/notscripter/compose-cli/internal/output"
	"github.com/notscripter/compose-cli/internal/process"
)

// Streamer runs a command and delivers its output line by line.
type Streamer interface {
	Stream(ctx context.Context, cmd process.Command, fn func(line string)) error
}

// Client issues adb commands through a process.Runner.
type Client struct {
	runner process.Runner
	bin    string
}

// NewClient creates a Client using the adb executable bin.
func NewClient(runner process.Runner, bin string) *Client {
	return &Client{runner: runner, bin: bin}
}

func (c *Client) command(args ...string) process.Command {
	return process.Command{Name: c.bin, Args: args}
}

func (c *Client) deviceCommand(device string, args ...string) process.Command {
	return c.command(append([]string{"-s", device}, args...)...)
}

// Devices lists the online devices.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	res, err := c.runner.Run(ctx, c.command("devices", "-l"))
	if err != nil {
		return nil, err
	}
	devices := ParseDevices(res.Output)
	output.Debug("adb devices", "count", len(devices))
	return devices, nil
}

// MainActivity resolves the launcher activity component of appID on device.
func (c *Client) MainActivity(ctx context.Context, device, appID string) (string, error) {
	res, err := c.runner.Run(ctx, c.deviceCommand(device,
		"shell", "cmd", "package", "resolve-activity", "--brief", appID))
	if err != nil {
		return "", err
	}

	for _, line := range process.Lines(res.Output) {
		if strings.Contains(line, "/") {
			return line, nil
		}
	}
	return "", oerrors.NewNotFoundError(
		fmt.Sprintf("no launcher activity for %s", appID),
		device,
		"check that the app is installed and declares a MAIN/LAUNCHER activity",
	)
}

// Install installs the apk on device, replacing an existing installation.
func (c *Client) Install(ctx context.Context, device, apk string) error {
	_, err := c.runner.Run(ctx, c.deviceCommand(device, "install", "-r", apk))
	return err
}

// Launch starts activity on device with the launcher intent.
func (c *Client) Launch(ctx context.Context, device, activity string) error {
	_, err := c.runner.Run(ctx, c.deviceCommand(device,
		"shell", "am", "start",
		"-a", "android.intent.action.MAIN",
		"-c", "android.intent.category.LAUNCHER",
		"-n", activity,
	))
	return err
}

// Logcat streams the device log to fn until ctx is cancelled.
func (c *Client) Logcat(ctx context.Context, s Streamer, device string, fn func(line string)) error {
	return s.Stream(ctx, c.deviceCommand(device, "logcat"), fn)
}
