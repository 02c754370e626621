package configuration

import (
	"errors"
	"fmt"

	"github.com/cfan/cfan/internal/controller"
	"github.com/cfan/cfan/internal/curves"
	"github.com/cfan/cfan/internal/ui"
	"github.com/cfan/cfan/internal/util"
	"golang.org/x/exp/slices"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateGeneral(config)
	if err != nil {
		return err
	}
	err = validateSensors(config)
	if err != nil {
		return err
	}
	err = validateFans(config)
	if err != nil {
		return err
	}
	return validateController(config)
}

func validateGeneral(config *Configuration) error {
	if config.PollInterval <= 0 {
		return fmt.Errorf("pollInterval must be > 0, was %s", config.PollInterval)
	}
	if config.MaxPwm < 1 || config.MaxPwm > 255 {
		return fmt.Errorf("maxPwm must be in [1..255], was %d", config.MaxPwm)
	}
	if config.Statistics.Enabled && !isValidPort(config.Statistics.Port) {
		return fmt.Errorf("statistics: invalid port %d", config.Statistics.Port)
	}
	if config.Api.Enabled && !isValidPort(config.Api.Port) {
		return fmt.Errorf("api: invalid port %d", config.Api.Port)
	}
	return nil
}

func isValidPort(port int) bool {
	return port > 0 && port <= 65535
}

func validateSensors(config *Configuration) error {
	if len(config.Sensors) <= 0 {
		return errors.New("no sensors configured")
	}

	ids := make([]string, 0, len(config.Sensors))
	for _, sensorConfig := range config.Sensors {
		ids = append(ids, sensorConfig.ID)
	}
	if id, found := util.FindDuplicate(ids); found {
		return fmt.Errorf("duplicate sensor id detected: %s", id)
	}

	for _, sensorConfig := range config.Sensors {
		if len(sensorConfig.ID) <= 0 {
			return errors.New("sensor: missing id")
		}

		subConfigs := 0
		if sensorConfig.File != nil {
			subConfigs++
		}
		if sensorConfig.Nvidia != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: file | nvidia", sensorConfig.ID)
		}

		if sensorConfig.File != nil && len(sensorConfig.File.Path) <= 0 {
			return fmt.Errorf("sensor %s: no file path provided", sensorConfig.ID)
		}
	}

	return nil
}

func validateFans(config *Configuration) error {
	if len(config.Fans) <= 0 {
		return errors.New("no fans configured")
	}

	ids := make([]string, 0, len(config.Fans))
	for _, fanConfig := range config.Fans {
		ids = append(ids, fanConfig.ID)
	}
	if id, found := util.FindDuplicate(ids); found {
		return fmt.Errorf("duplicate fan id detected: %s", id)
	}

	var outputs []string
	for _, fanConfig := range config.Fans {
		if len(fanConfig.ID) <= 0 {
			return errors.New("fan: missing id")
		}
		if len(fanConfig.PwmOutput) <= 0 {
			return fmt.Errorf("fan %s: no pwmOutput path provided", fanConfig.ID)
		}
		if slices.Contains(outputs, fanConfig.PwmOutput) {
			return fmt.Errorf("fan %s: pwmOutput %s is used by another fan", fanConfig.ID, fanConfig.PwmOutput)
		}
		outputs = append(outputs, fanConfig.PwmOutput)
		if len(fanConfig.PwmEnable) <= 0 {
			return fmt.Errorf("fan %s: no pwmEnable path provided", fanConfig.ID)
		}
		if fanConfig.PwmEnable == fanConfig.PwmOutput {
			return fmt.Errorf("fan %s: pwmOutput and pwmEnable must be different files", fanConfig.ID)
		}
	}

	return nil
}

func validateController(config *Configuration) error {
	if len(config.Table.Steps) <= 0 {
		return errors.New("table: no steps defined")
	}

	table, err := curves.NewSpeedTable(config.Table.Steps, config.Table.MaxTemp, config.MaxPwm)
	if err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if !table.IsMonotonic() {
		ui.Warning("The speed table is not monotonically increasing, fans may slow down when temperatures rise")
	}

	err = controller.ValidateParameters(table, ControllerParameters(config.Controller))
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}

	shutdownSpeed := config.Controller.ShutdownSpeedOr(table.Min())
	if shutdownSpeed < 0 || shutdownSpeed > config.MaxPwm {
		return fmt.Errorf("controller: shutdownSpeed must be in [0..%d], was %d", config.MaxPwm, shutdownSpeed)
	}

	return nil
}

// ControllerParameters extracts the speed controller tuning from the controller configuration.
func ControllerParameters(c ControllerConfig) controller.Parameters {
	return controller.Parameters{
		StepDownMax:  c.StepDownMax,
		StepUpSpike:  c.StepUpSpike,
		SpikeMax:     c.SpikeMax,
		SpikeTempMax: c.SpikeTempMax,
	}
}

// BuildSpeedTable creates the speed table described by the configuration.
func BuildSpeedTable(config *Configuration) (*curves.SpeedTable, error) {
	return curves.NewSpeedTable(config.Table.Steps, config.Table.MaxTemp, config.MaxPwm)
}
