package daemon

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/cfan/cfan/internal/configuration"
	"github.com/cfan/cfan/internal/nvidia_base"
	"github.com/cfan/cfan/internal/ui"
	"github.com/cfan/cfan/internal/util"
	"github.com/spf13/afero"
)

// RunDaemon runs the daemon with the current configuration and never returns.
func RunDaemon() {
	// catch signals before the fans are touched, Initialize stops early on cancellation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := checkRoot(os.Geteuid()); err != nil {
		ui.Error("%v", err)
		exit(1, "")
	}

	config := &configuration.CurrentConfig
	pidFile := config.PidFile
	if len(pidFile) > 0 {
		if err := util.WritePidFile(pidFile); err != nil {
			ui.Error("Cannot write pid file %s: %v", pidFile, err)
			exit(1, pidFile)
		}
	}

	d := NewDaemon(afero.NewOsFs(), config)
	err := d.Initialize(ctx)
	if err == nil {
		err = d.Run(ctx)
	}
	code := ExitCode(err)
	if code != 0 {
		ui.Error("%v", err)
	} else if err != nil {
		ui.Info("Received %v, exiting...", err)
	}

	d.Shutdown()
	stop()
	exit(code, pidFile)
}

func checkRoot(euid int) error {
	if euid != 0 {
		return errors.New("fan control requires root permissions to be able to modify fan speeds, please run cfan as root")
	}
	return nil
}

func exit(code int, pidFile string) {
	nvidia_base.CleanupAtExit()
	_ = os.Stdout.Sync()
	if len(pidFile) > 0 {
		if err := util.RemovePidFile(pidFile); err != nil {
			ui.Warning("Cannot remove pid file: %v", err)
		}
	}
	os.Exit(code)
}
