package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vedantwpatil/Akemito/internal/config"
	"github.com/vedantwpatil/Akemito/internal/coordinator"
	"github.com/vedantwpatil/Akemito/internal/hotkey"
	"github.com/vedantwpatil/Akemito/internal/input"
	"github.com/vedantwpatil/Akemito/internal/logging"
	"github.com/vedantwpatil/Akemito/internal/tracking"
)

type Application struct {
	config      *config.Config
	viper       *viper.Viper
	log         *logrus.Logger
	tracker     *tracking.Tracker
	coordinator *coordinator.Coordinator
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewApplication(v *viper.Viper, cfg *config.Config, logger *logrus.Logger) (*Application, error) {
	sampler, err := input.NewPointerSampler(input.SamplerOptions{Interval: cfg.Tracking.SampleInterval})
	if err != nil {
		return nil, err
	}

	tracker := tracking.NewTracker(cfg.Tracking.DwellThreshold)
	coord, err := coordinator.New(coordinator.Options{
		Tracker:  tracker,
		Matcher:  hotkey.NewMatcher(hotkey.RestoreChord),
		Source:   input.NewDesktop(input.NewKeyHook(), sampler),
		Actuator: input.NewRobotActuator(),
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		config:      cfg,
		viper:       v,
		log:         logger,
		tracker:     tracker,
		coordinator: coord,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// Run blocks until SIGINT/SIGTERM or until the input source goes away.
func (app *Application) Run() error {
	defer app.cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go app.handleSignals(sigChan)

	if config.Watch(app.viper, app.applyConfig, func(err error) {
		app.log.WithError(err).Warn("Ignoring config change")
	}) {
		app.log.Debugf("Watching %s for changes", app.viper.ConfigFileUsed())
	}

	app.log.Info("Starting Akemito cursor saver...")
	app.log.Info("Press Alt+Z to restore the cursor position")
	app.log.Info("Press Ctrl+C to exit")

	if err := app.coordinator.Start(app.ctx); err != nil {
		// A signal that lands before Start is still a requested shutdown.
		if app.ctx.Err() == nil {
			return err
		}
		app.log.Debugf("Shutdown requested during startup: %v", err)
	}
	app.log.Info("Exiting Akemito cursor saver...")
	return nil
}

func (app *Application) handleSignals(sigChan chan os.Signal) {
	select {
	case sig := <-sigChan:
		app.log.Debugf("Received signal: %v", sig)
		app.coordinator.Stop()
		app.cancel()
	case <-app.ctx.Done():
	}
}

// applyConfig picks up edits to the config file while running.
func (app *Application) applyConfig(cfg *config.Config) {
	if cfg.Tracking.DwellThreshold != app.tracker.Threshold() {
		app.tracker.SetThreshold(cfg.Tracking.DwellThreshold)
		app.log.Infof("Dwell threshold set to %s", cfg.Tracking.DwellThreshold)
	}
	if cfg.Tracking.SampleInterval != app.config.Tracking.SampleInterval {
		app.log.Warn("tracking.sample_interval changes take effect after a restart")
	}
	if lvl, err := logging.ParseLevel(cfg.Logging.Level); err == nil {
		app.log.SetLevel(lvl)
	}
}

func startupError(err error) error {
	return fmt.Errorf("%w (make sure you're running this in a graphical X11 session)", err)
}
