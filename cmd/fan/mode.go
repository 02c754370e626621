package fan

import (
	"fmt"

	"github.com/cfan/cfan/internal/fans"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Get/Set the current pwm mode setting of a fan",
	Long:  `Modes are 'disabled' (0), 'pwm' (1) and 'auto' (2)`,
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		fan, err := getFan(fanId)
		if err != nil {
			return err
		}

		if len(args) > 0 {
			mode, err := fans.ParseControlMode(args[0])
			if err != nil {
				return err
			}
			if err = fan.SetPwmEnabled(mode); err != nil {
				return err
			}
		}

		mode, err := fan.GetPwmEnabled()
		if err != nil {
			return err
		}
		auto, err := fan.IsPwmAuto()
		if err != nil {
			return err
		}

		fmt.Print(describeMode(mode, auto))
		return nil
	},
}

// describeMode returns a human readable description of a pwm_enable value.
// Some drivers use values above 2 for their own automatic modes.
func describeMode(mode fans.ControlMode, auto bool) string {
	switch {
	case mode == fans.ControlModeDisabled:
		return fmt.Sprintf("No control, 100%% all the time (%d)", mode)
	case mode == fans.ControlModePWM:
		return fmt.Sprintf("Manual PWM control, gives cfan control (%d)", mode)
	case auto:
		return fmt.Sprintf("Automatic control by integrated hardware (%d)", mode)
	default:
		return fmt.Sprintf("Unknown (%d)", mode)
	}
}

func init() {
	Command.AddCommand(modeCmd)
}
