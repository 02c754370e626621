//go:build !disable_nvml

// Package nvidia_base owns the process wide nvml session.
// sensors and the detect command both need device handles, so they share this package.
package nvidia_base

import (
	"fmt"
	"strings"
	"sync"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/cfan/cfan/internal/ui"
)

const IsNvmlSupported = true

type NvidiaDevice struct {
	Identifier   string
	Name         string
	DeviceHandle nvml.Device
}

type nvidiaHandlerImpl struct {
	mu            sync.Mutex
	isInitialized bool
	initErr       error
	devices       []NvidiaDevice
}

var nvidiaHandler = &nvidiaHandlerImpl{}

// GetDeviceID creates the identifier of a device, which is like
//
//	nvidia-<PCI vendor ID><PCI device ID>-<PCI address>
//
// where the PCI address is calculated the same way as libsensors PCI device addresses.
// example: "nvidia-10DE2489-0400"
func GetDeviceID(device nvml.Device) (string, error) {
	pciInfo, ret := device.GetPciInfo()
	if ret != nvml.SUCCESS {
		return "", fmt.Errorf("couldn't get PCI info: %s", nvml.ErrorString(ret))
	}
	pciVendorID := uint16(pciInfo.PciDeviceId & 0xFFFF)
	pciDeviceID := uint16((pciInfo.PciDeviceId >> 16) & 0xFFFF)
	var addr uint32 = (pciInfo.Domain << 16) + (pciInfo.Bus << 8) + (pciInfo.Device << 3)
	return FormatDeviceID(pciVendorID, pciDeviceID, addr), nil
}

func FormatDeviceID(vendorID uint16, deviceID uint16, addr uint32) string {
	return fmt.Sprintf("nvidia-%04X%04X-%04X", vendorID, deviceID, addr)
}

// GetDevices returns all devices whose identifier starts with the given prefix.
// An empty prefix matches every device.
func GetDevices(identifierPrefix string) ([]NvidiaDevice, error) {
	nh := nvidiaHandler
	nh.mu.Lock()
	defer nh.mu.Unlock()

	if !nh.isInitialized {
		nh.init()
	}
	if nh.initErr != nil {
		return nil, nh.initErr
	}

	var result []NvidiaDevice
	for _, device := range nh.devices {
		if strings.HasPrefix(strings.ToLower(device.Identifier), strings.ToLower(identifierPrefix)) {
			result = append(result, device)
		}
	}
	return result, nil
}

func (nh *nvidiaHandlerImpl) init() {
	nh.isInitialized = true
	ret := nvml.Init()
	if ret != nvml.SUCCESS {
		nh.initErr = fmt.Errorf("nvml init: %s", nvml.ErrorString(ret))
		return
	}

	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		nh.initErr = fmt.Errorf("nvml device count: %s", nvml.ErrorString(ret))
		return
	}

	for i := 0; i < count; i++ {
		device, ret := nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			nh.initErr = fmt.Errorf("nvml handle for device %d: %s", i, nvml.ErrorString(ret))
			return
		}
		id, err := GetDeviceID(device)
		if err != nil {
			ui.Warning("NVIDIA device %d: %v", i, err)
			id = fmt.Sprintf("nvidia-index-%d", i)
		}
		name, ret := device.GetName()
		if ret != nvml.SUCCESS {
			name = ""
		}
		nh.devices = append(nh.devices, NvidiaDevice{
			Identifier:   id,
			Name:         name,
			DeviceHandle: device,
		})
	}
}

// CleanupAtExit ends the nvml session, if one was started.
func CleanupAtExit() {
	nh := nvidiaHandler
	nh.mu.Lock()
	defer nh.mu.Unlock()

	if nh.isInitialized && nh.initErr == nil {
		// nothing left to do if this fails
		_ = nvml.Shutdown()
	}
	nh.devices = nil
	nh.initErr = nil
	nh.isInitialized = false
}
