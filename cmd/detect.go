package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/cfan/cfan/internal/hwmon"
	"github.com/cfan/cfan/internal/nvidia_base"
	"github.com/cfan/cfan/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects all controllable fans and temperature sensors and prints them as a list`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		chips := hwmon.GetChips(afero.NewOsFs())

		for _, chip := range chips {
			ui.Printfln("> %s (%s)", chip.Identifier, chip.Path)

			var fanRows [][]string
			for _, fan := range chip.Fans {
				rpmText := "N/A"
				if fan.Rpm >= 0 {
					rpmText = strconv.Itoa(fan.Rpm)
				}
				fanRows = append(fanRows, []string{
					"", fan.Label, fan.PwmOutput, fan.PwmEnable, rpmText,
				})
			}
			fanTable := renderTable(table.Table{
				Headers: []string{"Fans   ", "Label", "PWM Output", "PWM Enable", "RPM"},
				Rows:    fanRows,
			})

			var sensorRows [][]string
			for _, sensor := range chip.Sensors {
				valueText := "N/A"
				if sensor.Value >= 0 {
					valueText = strconv.Itoa(sensor.Value)
				}
				_, file := filepath.Split(sensor.Input)
				sensorRows = append(sensorRows, []string{
					"", fmt.Sprintf("%s (%s)", sensor.Label, file), sensor.Input, valueText,
				})
			}
			sensorTable := renderTable(table.Table{
				Headers: []string{"Sensors", "Label", "Input", "°C"},
				Rows:    sensorRows,
			})

			ui.Printf("%s", fanTable)
			ui.Printfln("%s", sensorTable)
		}

		devices, err := nvidia_base.GetDevices("")
		if err != nil {
			ui.Debug("No nvidia devices: %v", err)
			return
		}
		if len(devices) <= 0 {
			return
		}
		var deviceRows [][]string
		for _, device := range devices {
			deviceRows = append(deviceRows, []string{"", device.Identifier, device.Name})
		}
		ui.Printfln("> nvidia")
		ui.Printfln("%s", renderTable(table.Table{
			Headers: []string{"GPUs   ", "Device", "Name"},
			Rows:    deviceRows,
		}))
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
