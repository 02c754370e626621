package configuration

import (
	"fmt"
	"os"
	"time"

	"github.com/cfan/cfan/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	PollInterval time.Duration `json:"pollInterval"`
	MaxPwm       int           `json:"maxPwm"`
	PidFile      string        `json:"pidFile"`

	Table      TableConfig      `json:"table"`
	Controller ControllerConfig `json:"controller"`

	Sensors []SensorConfig `json:"sensors"`
	Fans    []FanConfig    `json:"fans"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("cfan")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/cfan/")
	}

	viper.SetEnvPrefix("cfan")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues(viper.GetViper())
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("pollInterval", 1*time.Second)
	v.SetDefault("maxPwm", 255)
	v.SetDefault("pidFile", "")

	v.SetDefault("table.maxTemp", 99)

	v.SetDefault("controller.stepDownMax", 10)
	v.SetDefault("controller.stepUpSpike", 4)
	v.SetDefault("controller.spikeMax", 3)
	v.SetDefault("controller.spikeTempMax", 83)
	v.SetDefault("controller.restoreAutoOnExit", false)

	v.SetDefault("sensors", []SensorConfig{})
	v.SetDefault("fans", []FanConfig{})

	v.SetDefault("statistics.enabled", false)
	v.SetDefault("statistics.port", 9000)

	v.SetDefault("api.enabled", false)
	v.SetDefault("api.host", "localhost")
	v.SetDefault("api.port", 9001)
}

func ReadConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	ui.Info("Using configuration file at: %s", viper.ConfigFileUsed())

	LoadConfig()
}

func LoadConfig() {
	config, err := Load(viper.GetViper())
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
	CurrentConfig = config
}

// Load decodes the settings of v into a Configuration and fills in derived defaults.
func Load(v *viper.Viper) (Configuration, error) {
	var config Configuration
	err := v.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			speedStepsHookFunc(),
		),
	))
	if err != nil {
		return config, err
	}

	for i := range config.Fans {
		fan := &config.Fans[i]
		if len(fan.PwmEnable) <= 0 && len(fan.PwmOutput) > 0 {
			fan.PwmEnable = fan.PwmOutput + "_enable"
		}
	}
	for i := range config.Sensors {
		if config.Sensors[i].File != nil {
			path, err := homedir.Expand(config.Sensors[i].File.Path)
			if err != nil {
				return config, fmt.Errorf("sensor %s: %w", config.Sensors[i].ID, err)
			}
			config.Sensors[i].File.Path = path
		}
	}

	return config, nil
}

// ShutdownSpeedOr returns the configured shutdown speed, or fallback if none is configured.
func (c *ControllerConfig) ShutdownSpeedOr(fallback int) int {
	if c.ShutdownSpeed == nil {
		return fallback
	}
	return *c.ShutdownSpeed
}
