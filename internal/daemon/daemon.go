package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/cfan/cfan/internal/api"
	"github.com/cfan/cfan/internal/configuration"
	"github.com/cfan/cfan/internal/controller"
	"github.com/cfan/cfan/internal/fans"
	"github.com/cfan/cfan/internal/sensors"
	"github.com/cfan/cfan/internal/statistics"
	"github.com/cfan/cfan/internal/ui"
	"github.com/labstack/echo/v4"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
)

const serverShutdownTimeout = 5 * time.Second

// Daemon owns the control loop of all configured sensors and fans.
type Daemon struct {
	fs     afero.Fs
	config *configuration.Configuration

	aggregator    *sensors.Aggregator
	actuator      *fans.Actuator
	controller    *controller.DefaultFanController
	shutdownSpeed int

	registry *prometheus.Registry

	shutdownOnce sync.Once
}

func NewDaemon(fs afero.Fs, config *configuration.Configuration) *Daemon {
	return &Daemon{
		fs:       fs,
		config:   config,
		registry: prometheus.NewRegistry(),
	}
}

// Initialize resolves all sensors and fans, switches the fans to manual control
// and seeds the controller state with their current speed.
// It returns ctx.Err() if ctx is cancelled between two steps. Once the fans have been
// touched, Shutdown restores a safe speed in that case as well.
func (d *Daemon) Initialize(ctx context.Context) error {
	table, err := configuration.BuildSpeedTable(d.config)
	if err != nil {
		return fmt.Errorf("table: %w", err)
	}
	speedController, err := controller.NewSpeedController(table, configuration.ControllerParameters(d.config.Controller))
	if err != nil {
		return err
	}
	d.shutdownSpeed = d.config.Controller.ShutdownSpeedOr(table.Min())

	var sensorList []sensors.Sensor
	for _, config := range d.config.Sensors {
		sensor, err := sensors.NewSensor(d.fs, config)
		if err != nil {
			return err
		}
		if fileSensor, ok := sensor.(*sensors.FileSensor); ok && fileSensor.Path != config.File.Path {
			ui.Info("Sensor %s: using %s", config.ID, fileSensor.Path)
		}
		sensorList = append(sensorList, sensor)
	}
	d.aggregator = sensors.NewAggregator(sensorList)
	if err := ctx.Err(); err != nil {
		return err
	}

	var fanList []fans.Fan
	for _, config := range d.config.Fans {
		fan, err := fans.NewFan(d.fs, config, d.config.MaxPwm)
		if err != nil {
			return err
		}
		if sysfsFan, ok := fan.(*fans.SysfsFan); ok && sysfsFan.PwmOutput != config.PwmOutput {
			ui.Info("Fan %s: using %s", config.ID, sysfsFan.PwmOutput)
		}
		if auto, err := fan.IsPwmAuto(); err == nil && auto {
			ui.Info("Fan %s: taking over from automatic control", config.ID)
		}
		fanList = append(fanList, fan)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	// from here on Shutdown restores a safe speed
	d.actuator = fans.NewActuator(fanList)
	if err := d.actuator.SetMode(fans.ControlModePWM); err != nil {
		return err
	}

	seed, err := d.actuator.ReadMaxPwm()
	if err != nil {
		ui.Warning("Cannot read current fan speed, assuming %d: %v", d.shutdownSpeed, err)
		seed = d.shutdownSpeed
	}
	seed = min(max(seed, fans.MinPwmValue), d.config.MaxPwm)
	if err := ctx.Err(); err != nil {
		return err
	}

	d.controller = controller.NewFanController(
		d.aggregator,
		d.actuator,
		speedController,
		controller.State{LastAppliedSpeed: seed},
		d.config.PollInterval,
	)

	err = statistics.Register(d.registry, d.aggregator, fanList, d.controller)
	if err != nil {
		return fmt.Errorf("registering statistics: %w", err)
	}
	d.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ui.Info("Controlling %d fan(s) using %d sensor(s), starting at speed %d", len(fanList), len(sensorList), seed)
	return nil
}

// Run executes the control loop until ctx is cancelled, a termination signal is received or
// an error occurs. A received signal is returned as run.SignalError.
func (d *Daemon) Run(ctx context.Context) error {
	if d.controller == nil {
		return errors.New("daemon is not initialized")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group
	{
		// === control loop
		g.Add(func() error {
			err := d.controller.Run(ctx)
			if err != nil {
				ui.Error("Control loop stopped: %v", err)
			}
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		// === signal handling
		g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))
	}
	if d.config.Statistics.Enabled {
		// === Prometheus Exporter
		addr := fmt.Sprintf(":%d", d.config.Statistics.Port)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: addr, Handler: mux}

		g.Add(func() error {
			ui.Info("Serving metrics on %s/metrics", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
			}
			<-ctx.Done()
			return nil
		}, func(err error) {
			cancel()
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
			defer timeoutCancel()
			if err := server.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping statistics server: %v", err)
			}
		})
	}
	if d.config.Api.Enabled {
		// === REST api
		rest, err := d.createRestService()
		if err != nil {
			return err
		}
		addr := fmt.Sprintf("%s:%d", d.config.Api.Host, d.config.Api.Port)

		g.Add(func() error {
			ui.Info("Serving api on %s", addr)
			if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				ui.Error("Cannot start api (%s)", err.Error())
			}
			<-ctx.Done()
			return nil
		}, func(err error) {
			cancel()
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
			defer timeoutCancel()
			if err := rest.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping api: %v", err)
			}
		})
	}

	return g.Run()
}

func (d *Daemon) createRestService() (*echo.Echo, error) {
	return api.CreateRestService(&api.Backend{
		Aggregator: d.aggregator,
		Fans:       d.actuator.Fans(),
		Controller: d.controller,
	}, d.registry)
}

// Shutdown writes the shutdown speed to all fans and optionally hands control back to
// the mainboard. Failures are logged. Only the first call has an effect.
func (d *Daemon) Shutdown() {
	d.shutdownOnce.Do(func() {
		if d.actuator == nil {
			return
		}
		ui.Info("Setting all fans to %d", d.shutdownSpeed)
		errs := d.actuator.ApplyAll(d.shutdownSpeed)
		if d.config.Controller.RestoreAutoOnExit {
			ui.Info("Restoring automatic fan control")
			errs = append(errs, d.actuator.SetModeAll(fans.ControlModeAutomatic)...)
		}
		for _, err := range errs {
			ui.Error("Shutdown: %v", err)
		}
		if len(errs) > 0 {
			ui.NotifyWarn("cfan", fmt.Sprintf("%d fan(s) could not be reset on exit", len(errs)))
		}
	})
}

func (d *Daemon) Controller() controller.FanController {
	return d.controller
}

// ExitCode maps the result of Run to the process exit code.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	var signalErr run.SignalError
	if errors.As(err, &signalErr) {
		return 0
	}
	return 1
}
