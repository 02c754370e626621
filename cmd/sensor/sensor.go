package sensor

import (
	"fmt"

	"github.com/cfan/cfan/cmd/global"
	"github.com/cfan/cfan/internal/sensors"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var sensorId string

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the current value of a sensor in °C",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensor, err := getSensor(sensorId)
		if err != nil {
			return err
		}

		value, err := sensor.GetValue()
		if err != nil {
			return err
		}
		fmt.Printf("%d", value)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getSensor(id string) (sensors.Sensor, error) {
	config := global.LoadValidConfig()

	availableSensorIds := []string{}
	for _, sensorConfig := range config.Sensors {
		availableSensorIds = append(availableSensorIds, sensorConfig.ID)
		if sensorConfig.ID == id {
			return sensors.NewSensor(afero.NewOsFs(), sensorConfig)
		}
	}

	return nil, fmt.Errorf("no sensor with id found: %s, options: %s", id, availableSensorIds)
}
