// Package cli implements the edgeframe command line.
package cli

import (
	"fmt"
	"io"

	"edgeframe/internal/app"
	"edgeframe/internal/config"

	"github.com/spf13/cobra"
)

type globalOptions struct {
	configPath string
	logLevel   string
	jsonLogs   bool
	timings    bool
}

// NewRootCommand builds the edgeframe command tree. Results go to the
// command's stdout and logs to its stderr.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           app.AppName,
		Short:         "Edge detection and thresholding for 8-bit grayscale frames",
		Version:       app.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error, off")
	flags.BoolVar(&opts.jsonLogs, "json", false, "write logs as JSON lines")
	flags.BoolVar(&opts.timings, "timings", false, "print per-stage timings after processing")

	root.AddCommand(
		newOtsuCommand(opts),
		newCannyCommand(opts),
		newExposureCommand(opts),
	)

	return root
}

// environment loads the configuration, applies global flag overrides and
// builds the shared services.
func (o *globalOptions) environment(cmd *cobra.Command) (*app.Environment, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if cmd.Flags().Changed("json") {
		cfg.Logging.JSON = o.jsonLogs
	}

	return app.NewEnvironment(cfg, cmd.ErrOrStderr())
}

func (o *globalOptions) printTimings(w io.Writer, env *app.Environment) {
	if !o.timings {
		return
	}
	for _, op := range env.Tracker.Operations() {
		s := env.Tracker.Summarize(op)
		fmt.Fprintf(w, "%-20s %3d run(s)  mean %v\n", op, s.Count, s.Mean)
	}
}
