//go:build disable_nvml

package nvidia_base

const IsNvmlSupported = false

type NvidiaDevice struct {
	Identifier string
	Name       string
}

// GetDevices never finds a device when built without nvml support
func GetDevices(identifierPrefix string) ([]NvidiaDevice, error) {
	return nil, nil
}

// CleanupAtExit does nothing when built without nvml support
func CleanupAtExit() {
}
