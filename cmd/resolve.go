package cmd

import (
	"fmt"

	"github.com/cfan/cfan/cmd/global"
	"github.com/cfan/cfan/internal/sysfs"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the file every configured sensor and fan path resolves to",
	Long: `Paths containing a hwmon, thermal_zone or cooling_device directory are
resolved by matching any number in place of the configured one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := global.LoadValidConfig()
		fs := afero.NewOsFs()

		var rows [][]string
		var failed int
		addRow := func(id string, path string) {
			resolved, err := sysfs.Resolve(fs, path)
			if err != nil {
				failed++
				resolved = err.Error()
			}
			rows = append(rows, []string{id, path, resolved})
		}

		for _, sensor := range config.Sensors {
			if sensor.File != nil {
				addRow(sensor.ID, sensor.File.Path)
			}
		}
		for _, fan := range config.Fans {
			addRow(fan.ID, fan.PwmOutput)
			addRow(fan.ID, fan.PwmEnable)
		}

		fmt.Println(renderTable(table.Table{
			Headers: []string{"ID", "Configured", "Resolved"},
			Rows:    rows,
		}))

		if failed > 0 {
			return fmt.Errorf("%d path(s) could not be resolved", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
