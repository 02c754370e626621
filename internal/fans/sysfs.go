package fans

import (
	"fmt"
	"strconv"

	"github.com/cfan/cfan/internal/configuration"
	"github.com/cfan/cfan/internal/ui"
	"github.com/cfan/cfan/internal/util"
	"github.com/spf13/afero"
)

// SysfsFan is a fan controlled through a pwm and a pwm_enable attribute
type SysfsFan struct {
	Config configuration.FanConfig `json:"configuration"`
	// PwmOutput and PwmEnable are the resolved locations of the configured files
	PwmOutput string `json:"pwmOutput"`
	PwmEnable string `json:"pwmEnable"`
	MaxPwm    int    `json:"maxPwm"`

	fs afero.Fs
}

func (fan *SysfsFan) GetId() string {
	return fan.Config.ID
}

func (fan *SysfsFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

func (fan *SysfsFan) GetPwm() (int, error) {
	value, err := util.ReadIntFromFile(fan.fs, fan.PwmOutput)
	if err != nil {
		return MinPwmValue, err
	}
	return value, nil
}

func (fan *SysfsFan) SetPwm(pwm int) (err error) {
	text, err := FormatPwm(pwm, fan.MaxPwm)
	if err != nil {
		return err
	}
	ui.Debug("Setting %s (%s) to %s ...", fan.Config.ID, fan.PwmOutput, text)
	return util.WriteStringToFile(fan.fs, fan.PwmOutput, text)
}

func (fan *SysfsFan) GetPwmEnabled() (ControlMode, error) {
	value, err := util.ReadIntFromFile(fan.fs, fan.PwmEnable)
	if err != nil {
		return ControlModeDisabled, err
	}
	return ControlMode(value), nil
}

func (fan *SysfsFan) IsPwmAuto() (bool, error) {
	value, err := fan.GetPwmEnabled()
	if err != nil {
		return false, err
	}
	return value > ControlModePWM, nil
}

// SetPwmEnabled writes the mode as a single character and verifies it by reading it back.
func (fan *SysfsFan) SetPwmEnabled(value ControlMode) (err error) {
	if value < ControlModeDisabled || value > ControlModeAutomatic {
		return fmt.Errorf("invalid control mode %d", value)
	}
	err = util.WriteStringToFile(fan.fs, fan.PwmEnable, strconv.Itoa(int(value)))
	if err != nil {
		return err
	}
	currentValue, err := fan.GetPwmEnabled()
	if err != nil {
		return fmt.Errorf("reading back control mode: %w", err)
	}
	if currentValue != value {
		return fmt.Errorf("PWM mode stuck to %d", currentValue)
	}
	return nil
}
