package fan

import (
	"fmt"

	"github.com/cfan/cfan/cmd/global"
	"github.com/cfan/cfan/internal/fans"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var fanId string

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&fanId,
		"id", "i",
		"",
		"Fan ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getFan(id string) (fans.Fan, error) {
	config := global.LoadValidConfig()

	availableFanIds := []string{}
	for _, fanConfig := range config.Fans {
		availableFanIds = append(availableFanIds, fanConfig.ID)
		if fanConfig.ID == id {
			return fans.NewFan(afero.NewOsFs(), fanConfig, config.MaxPwm)
		}
	}

	return nil, fmt.Errorf("no fan with id found: %s, options: %s", id, availableFanIds)
}
