package fans

import (
	"fmt"
	"strconv"
)

// FormatPwm encodes a duty cycle the way sysfs pwm attributes expect it:
// decimal digits without sign, padding or newline.
func FormatPwm(pwm int, maxPwm int) (string, error) {
	if pwm < MinPwmValue || pwm > maxPwm {
		return "", fmt.Errorf("pwm value %d is outside of [%d..%d]", pwm, MinPwmValue, maxPwm)
	}
	return strconv.Itoa(pwm), nil
}

// Actuator broadcasts a single speed to all fans.
type Actuator struct {
	fans []Fan
}

func NewActuator(fans []Fan) *Actuator {
	return &Actuator{fans: fans}
}

func (a *Actuator) Fans() []Fan {
	return a.fans
}

// Apply writes pwm to every fan, stopping at the first failure.
func (a *Actuator) Apply(pwm int) error {
	for _, fan := range a.fans {
		if err := fan.SetPwm(pwm); err != nil {
			return fmt.Errorf("fan %s: %w", fan.GetId(), err)
		}
	}
	return nil
}

// SetMode switches every fan to the given control mode, stopping at the first failure.
func (a *Actuator) SetMode(mode ControlMode) error {
	for _, fan := range a.fans {
		if err := fan.SetPwmEnabled(mode); err != nil {
			return fmt.Errorf("fan %s: setting mode %s: %w", fan.GetId(), mode, err)
		}
	}
	return nil
}

// ReadMaxPwm returns the highest pwm value currently reported by any fan.
func (a *Actuator) ReadMaxPwm() (int, error) {
	if len(a.fans) <= 0 {
		return 0, fmt.Errorf("no fans")
	}
	result := MinPwmValue
	for _, fan := range a.fans {
		pwm, err := fan.GetPwm()
		if err != nil {
			return 0, fmt.Errorf("fan %s: %w", fan.GetId(), err)
		}
		result = max(result, pwm)
	}
	return result, nil
}

// ApplyAll writes pwm to every fan, continuing after failures. Used on shutdown.
func (a *Actuator) ApplyAll(pwm int) []error {
	var errs []error
	for _, fan := range a.fans {
		if err := fan.SetPwm(pwm); err != nil {
			errs = append(errs, fmt.Errorf("fan %s: %w", fan.GetId(), err))
		}
	}
	return errs
}

// SetModeAll switches every fan to mode, continuing after failures. Used on shutdown.
func (a *Actuator) SetModeAll(mode ControlMode) []error {
	var errs []error
	for _, fan := range a.fans {
		if err := fan.SetPwmEnabled(mode); err != nil {
			errs = append(errs, fmt.Errorf("fan %s: %w", fan.GetId(), err))
		}
	}
	return errs
}
