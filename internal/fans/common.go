package fans

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cfan/cfan/internal/configuration"
	"github.com/cfan/cfan/internal/sysfs"
	"github.com/spf13/afero"
)

const (
	MaxPwmValue = 255
	MinPwmValue = 0
)

type ControlMode int

const (
	// ControlModeDisabled completely disables control, resulting in a 100% voltage/PWM signal output
	ControlModeDisabled ControlMode = 0
	// ControlModePWM enables manual, fixed speed control via setting the pwm value
	ControlModePWM ControlMode = 1
	// ControlModeAutomatic enables automatic control by the integrated control of the mainboard
	ControlModeAutomatic ControlMode = 2
)

func (m ControlMode) String() string {
	switch m {
	case ControlModeDisabled:
		return "disabled"
	case ControlModePWM:
		return "pwm"
	case ControlModeAutomatic:
		return "auto"
	default:
		return strconv.Itoa(int(m))
	}
}

// ParseControlMode accepts the name or the numeric sysfs value of a mode.
func ParseControlMode(value string) (ControlMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "disabled", "full":
		return ControlModeDisabled, nil
	case "1", "pwm", "manual":
		return ControlModePWM, nil
	case "2", "auto", "automatic":
		return ControlModeAutomatic, nil
	}
	return ControlModeDisabled, fmt.Errorf("unknown control mode '%s', use one of: disabled | pwm | auto", value)
}

type Fan interface {
	GetId() string

	GetConfig() configuration.FanConfig

	// GetPwm returns the current PWM value of this fan
	GetPwm() (int, error)
	SetPwm(pwm int) (err error)

	// GetPwmEnabled returns the current "pwm_enable" value of this fan
	GetPwmEnabled() (ControlMode, error)
	SetPwmEnabled(value ControlMode) (err error)
	// IsPwmAuto indicates whether this fan is in "Auto" mode
	IsPwmAuto() (bool, error)
}

// NewFan creates the fan described by config, resolving its sysfs paths against fs.
func NewFan(fs afero.Fs, config configuration.FanConfig, maxPwm int) (Fan, error) {
	pwmOutput, err := sysfs.Resolve(fs, config.PwmOutput)
	if err != nil {
		return nil, fmt.Errorf("fan %s: %w", config.ID, err)
	}
	pwmEnable, err := sysfs.Resolve(fs, config.PwmEnable)
	if err != nil {
		return nil, fmt.Errorf("fan %s: %w", config.ID, err)
	}

	return &SysfsFan{
		Config:    config,
		PwmOutput: pwmOutput,
		PwmEnable: pwmEnable,
		MaxPwm:    maxPwm,
		fs:        fs,
	}, nil
}
