package main

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"edgeframe/internal/app"
	"edgeframe/internal/config"
	"edgeframe/internal/gui"
	"edgeframe/internal/shutdown"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "edgeframe-viewer",
		Short:         "Interactive viewer for the edgeframe pipelines",
		Version:       app.AppVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			return runViewer(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	return cmd
}

func runViewer(cfg *config.Configuration) error {
	env, err := app.NewEnvironment(cfg, os.Stderr)
	if err != nil {
		return err
	}

	fyneApp := fyneapp.NewWithID(app.AppID)
	window := fyneApp.NewWindow(app.AppName)
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	env.Logger.Info("Viewer", "starting", map[string]interface{}{
		"version":    app.AppVersion,
		"go_version": runtime.Version(),
		"num_cpu":    runtime.NumCPU(),
	})

	controller := gui.NewController(window, env)

	// Registered in startup order; shutdown runs in reverse.
	shutdowns := shutdown.NewManager(env.Logger, shutdown.DefaultTimeout)
	shutdowns.Register("environment", shutdown.Func(env.Shutdown))
	shutdowns.Register("controller", shutdown.Func(controller.Shutdown))
	var uiStopped atomic.Bool
	shutdowns.Register("fyne", shutdown.Func(func() {
		if !uiStopped.Load() {
			fyne.Do(fyneApp.Quit)
		}
	}))

	stop := shutdowns.Listen()
	defer stop()

	window.SetOnClosed(func() {
		env.Logger.Info("Viewer", "window closed", nil)
	})

	controller.Show()
	fyneApp.Run()
	uiStopped.Store(true)

	shutdowns.Shutdown()
	return nil
}
