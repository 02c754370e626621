package hwmon

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cfan/cfan/internal/sensors"
	"github.com/md14454/gosensors"
	"github.com/spf13/afero"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

var (
	platformRegex = regexp.MustCompile(`/platform/([^/]+)/`)
	channelRegex  = regexp.MustCompile(`^[a-z]+(\d+)_input$`)
)

// Chip is a hwmon device with its temperature inputs and controllable fans
type Chip struct {
	Identifier string
	Platform   string
	Path       string

	Sensors []TempInput
	Fans    []FanOutput
}

type TempInput struct {
	Label string
	Input string
	// Value is the current temperature in degrees Celsius, -1 if unreadable
	Value int
}

type FanOutput struct {
	Label     string
	RpmInput  string
	PwmOutput string
	PwmEnable string
	// Rpm is the current speed, -1 if unreadable
	Rpm int
}

// GetChips lists all chips known to libsensors that have temperature inputs or pwm outputs.
func GetChips(fs afero.Fs) []*Chip {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*Chip
	for _, chip := range chips {
		c := &Chip{
			Identifier: computeIdentifier(chip),
			Platform:   findPlatform(chip.Path),
			Path:       chip.Path,
			Sensors:    getTempInputs(fs, chip),
			Fans:       getFanOutputs(fs, chip),
		}
		if len(c.Platform) <= 0 {
			c.Platform = c.Identifier
		}
		if len(c.Fans) <= 0 && len(c.Sensors) <= 0 {
			continue
		}
		list = append(list, c)
	}
	return list
}

func getTempInputs(fs afero.Fs, chip gosensors.Chip) []TempInput {
	var result []TempInput
	for _, feature := range chip.GetFeatures() {
		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}
		input, ok := findSubFeature(feature.GetSubFeatures(), gosensors.SubFeatureTypeTempInput)
		if !ok {
			continue
		}
		path := filepath.Join(chip.Path, input.Name)
		value := -1
		if data, err := afero.ReadFile(fs, path); err == nil {
			if degrees, err := sensors.ParseMilliDegrees(string(data)); err == nil {
				value = degrees
			}
		}
		result = append(result, TempInput{
			Label: getLabel(fs, chip.Path, input.Name),
			Input: path,
			Value: value,
		})
	}
	return result
}

func getFanOutputs(fs afero.Fs, chip gosensors.Chip) []FanOutput {
	var result []FanOutput
	for _, feature := range chip.GetFeatures() {
		if feature.Type != gosensors.FeatureTypeFan {
			continue
		}
		input, ok := findSubFeature(feature.GetSubFeatures(), gosensors.SubFeatureTypeFanInput)
		if !ok {
			continue
		}
		pwmOutput, pwmEnable, ok := findPwmFiles(fs, chip.Path, input.Name)
		if !ok {
			// only the rpm can be read, nothing to control
			continue
		}
		result = append(result, FanOutput{
			Label:     getLabel(fs, chip.Path, input.Name),
			RpmInput:  filepath.Join(chip.Path, input.Name),
			PwmOutput: pwmOutput,
			PwmEnable: pwmEnable,
			Rpm:       int(input.GetValue()),
		})
	}
	return result
}

// findPwmFiles returns the pwm attributes sharing the channel of the given fan input, e.g. fan2_input -> pwm2
func findPwmFiles(fs afero.Fs, devicePath string, input string) (pwmOutput string, pwmEnable string, ok bool) {
	match := channelRegex.FindStringSubmatch(input)
	if match == nil {
		return "", "", false
	}
	channel, err := strconv.Atoi(match[1])
	if err != nil {
		return "", "", false
	}
	pwmOutput = filepath.Join(devicePath, fmt.Sprintf("pwm%d", channel))
	pwmEnable = pwmOutput + "_enable"
	exists, err := afero.Exists(fs, pwmOutput)
	if err != nil || !exists {
		return "", "", false
	}
	return pwmOutput, pwmEnable, true
}

func findSubFeature(subfeatures []gosensors.SubFeature, subFeatureType gosensors.SubFeatureType) (gosensors.SubFeature, bool) {
	for _, a := range subfeatures {
		if a.Type == subFeatureType {
			return a, true
		}
	}
	return gosensors.SubFeature{}, false
}

// getLabel read the label of a in/output of a device
func getLabel(fs afero.Fs, devicePath string, input string) string {
	labelPath := strings.TrimSuffix(filepath.Join(devicePath, input), "input") + "label"

	content, _ := afero.ReadFile(fs, labelPath)
	label := strings.TrimSpace(string(content))
	if len(label) <= 0 {
		label = strings.TrimSuffix(input, "_input")
	}
	return label
}

func computeIdentifier(chip gosensors.Chip) string {
	name := chip.Prefix
	if len(name) <= 0 {
		_, name = filepath.Split(chip.Path)
	}

	switch chip.Bus.Type {
	case BusTypeIsa:
		return fmt.Sprintf("%s-isa-%d%03x", name, chip.Bus.Nr, chip.Addr)
	case BusTypePci:
		return fmt.Sprintf("%s-pci-%d%03x", name, chip.Bus.Nr, chip.Addr)
	case BusTypeAcpi:
		return fmt.Sprintf("%s-acpi-%d", name, chip.Bus.Nr)
	}
	return name
}

// findPlatform returns the platform device name of a sysfs device path, e.g. "nct6775.656"
func findPlatform(devicePath string) string {
	match := platformRegex.FindStringSubmatch(devicePath)
	if match == nil {
		return ""
	}
	return match[1]
}
