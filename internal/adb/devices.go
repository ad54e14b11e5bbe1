// Package adb drives the Android Debug Bridge for device selection, install,
// launch and logcat.
package adb

import (
	"fmt"
	"regexp"
	"strings"

	oerrors "github.com/notscripter/compose-cli/internal/errors"
)

// StateDevice is the adb state of an online, authorized device.
const StateDevice = "device"

// UnknownModel is reported when adb does not list a model property.
const UnknownModel = "Unknown"

// Device is one attached device as listed by `adb devices -l`.
type Device struct {
	ID    string
	State string
	Model string
}

// Wireless reports whether the device is connected over TCP or mDNS.
func (d Device) Wireless() bool {
	return strings.Contains(d.ID, ":") || strings.Contains(d.ID, "._tcp") || strings.Contains(d.ID, "._adb-tls-connect")
}

// ParseDevices parses `adb devices -l` output and returns the devices in
// the "device" state. Offline and unauthorized entries are dropped.
func ParseDevices(out string) []Device {
	var devices []Device
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices attached") || strings.HasPrefix(line, "*") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 || parts[1] != StateDevice {
			continue
		}

		d := Device{ID: parts[0], State: parts[1], Model: UnknownModel}
		for _, p := range parts[2:] {
			if k, v, ok := strings.Cut(p, ":"); ok && k == "model" && v != "" {
				d.Model = v
			}
		}
		devices = append(devices, d)
	}
	return devices
}

// SelectDevice picks the device to use. A requested id must be attached;
// without one exactly one device must be attached.
func SelectDevice(devices []Device, requested string) (Device, error) {
	if requested != "" {
		for _, d := range devices {
			if d.ID == requested {
				return d, nil
			}
		}
		return Device{}, oerrors.NewNotFoundError(
			fmt.Sprintf("device %q is not attached", requested), "", "run 'adb devices -l' to list attached devices")
	}

	switch len(devices) {
	case 0:
		return Device{}, oerrors.NewNotFoundError(
			"no devices attached", "", "connect a device or start an emulator")
	case 1:
		return devices[0], nil
	default:
		ids := make([]string, len(devices))
		for i, d := range devices {
			ids[i] = d.ID
		}
		return Device{}, oerrors.NewMalformedInputError(
			fmt.Sprintf("%d devices attached, pick one", len(devices)),
			"device",
			"pass --device with one of: "+strings.Join(ids, ", "),
		)
	}
}

// maxDeviceIDLength bounds device serials accepted from the user.
const maxDeviceIDLength = 256

var deviceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._:\-]+$`)

// ValidateDeviceID rejects device ids that are empty, too long, or contain
// characters adb never uses in a serial.
func ValidateDeviceID(id string) error {
	if id == "" {
		return oerrors.NewMalformedInputError("device id is empty", "device", "")
	}
	if len(id) > maxDeviceIDLength {
		return oerrors.NewMalformedInputError(
			fmt.Sprintf("device id is longer than %d characters", maxDeviceIDLength), "device", "")
	}
	if !deviceIDPattern.MatchString(id) {
		return oerrors.NewMalformedInputError(
			fmt.Sprintf("device id %q contains invalid characters", id), "device", "")
	}
	return nil
}
