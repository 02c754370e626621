package configuration

// SpeedSteps maps a temperature in degrees Celsius to a fan speed
type SpeedSteps map[int]int

type TableConfig struct {
	// MaxTemp is the highest temperature of the table, readings above are clamped
	MaxTemp int        `json:"maxTemp"`
	Steps   SpeedSteps `json:"steps"`
}

type ControllerConfig struct {
	StepDownMax  int `json:"stepDownMax"`
	StepUpSpike  int `json:"stepUpSpike"`
	SpikeMax     int `json:"spikeMax"`
	SpikeTempMax int `json:"spikeTempMax"`

	// ShutdownSpeed is written to all fans on exit, defaults to the lowest table speed
	ShutdownSpeed     *int `json:"shutdownSpeed,omitempty"`
	RestoreAutoOnExit bool `json:"restoreAutoOnExit"`
}
