package cmd

import (
	"fmt"
	"strconv"

	"github.com/cfan/cfan/cmd/global"
	"github.com/cfan/cfan/internal/configuration"
	"github.com/cfan/cfan/internal/util"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the speed table and controller parameters to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := global.LoadValidConfig()

		speedTable, err := configuration.BuildSpeedTable(config)
		if err != nil {
			return err
		}

		var stepRows [][]string
		for _, temp := range util.SortedKeys(config.Table.Steps) {
			stepRows = append(stepRows, []string{
				strconv.Itoa(temp), strconv.Itoa(config.Table.Steps[temp]),
			})
		}
		fmt.Println(renderTable(table.Table{
			Headers: []string{"°C", "PWM"},
			Rows:    stepRows,
		}))

		params := configuration.ControllerParameters(config.Controller)
		fmt.Println(renderTable(table.Table{
			Headers: []string{"Parameter", "Value"},
			Rows: [][]string{
				{"stepDownMax", strconv.Itoa(params.StepDownMax)},
				{"stepUpSpike", strconv.Itoa(params.StepUpSpike)},
				{"spikeMax", strconv.Itoa(params.SpikeMax)},
				{"spikeTempMax", strconv.Itoa(params.SpikeTempMax)},
				{"shutdownSpeed", strconv.Itoa(config.Controller.ShutdownSpeedOr(speedTable.Min()))},
			},
		}))

		speeds := speedTable.Values()
		values := make([]float64, 0, len(speeds))
		for _, speed := range speeds {
			values = append(values, float64(speed))
		}
		graph := asciigraph.Plot(values,
			asciigraph.Height(15),
			asciigraph.Width(100),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(float64(config.MaxPwm)),
			asciigraph.Caption(fmt.Sprintf("PWM / °C (0..%d)", speedTable.MaxTemp())),
		)
		fmt.Println(graph)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
}
