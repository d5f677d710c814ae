package cli

import (
	"fmt"

	"edgeframe/internal/algorithms/canny"
	"edgeframe/internal/algorithms/otsu"

	"github.com/spf13/cobra"
)

func newOtsuCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "otsu INPUT OUTPUT",
		Short: "Binarize an image at its Otsu threshold",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.environment(cmd)
			if err != nil {
				return err
			}
			defer env.Shutdown()

			src, err := env.Codec.Load(args[0])
			if err != nil {
				return err
			}

			result, err := env.Algorithms.Run(otsu.Name, src)
			if err != nil {
				return err
			}
			if err := env.Codec.Save(args[1], result.Output); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "threshold: %d\n", int(result.Metrics["threshold"]))
			opts.printTimings(out, env)
			return nil
		},
	}
}

type cannyFlags struct {
	gaussianSize int
	sigma        float64
	sobelSize    int
	high         int
	low          int
	workers      int
}

func newCannyCommand(opts *globalOptions) *cobra.Command {
	f := &cannyFlags{}
	defaults := canny.DefaultParams()

	cmd := &cobra.Command{
		Use:   "canny INPUT OUTPUT",
		Short: "Write the Canny edge map of an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.environment(cmd)
			if err != nil {
				return err
			}
			defer env.Shutdown()

			if err := env.Algorithms.SetParameters(canny.Name, f.overrides(cmd)); err != nil {
				return err
			}

			src, err := env.Codec.Load(args[0])
			if err != nil {
				return err
			}

			result, err := env.Algorithms.Run(canny.Name, src)
			if err != nil {
				return err
			}
			if err := env.Codec.Save(args[1], result.Output); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "edge pixels: %d (%.2f%%)\n",
				int(result.Metrics["edge_pixels"]), 100*result.Metrics["edge_ratio"])
			opts.printTimings(out, env)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.gaussianSize, "gaussian-size", defaults.GaussianSize, "Gaussian kernel side (odd)")
	flags.Float64Var(&f.sigma, "sigma", defaults.Sigma, "Gaussian standard deviation")
	flags.IntVar(&f.sobelSize, "sobel-size", defaults.SobelSize, "Sobel kernel side (odd)")
	flags.IntVar(&f.high, "high", int(defaults.High), "strong edge threshold (0-255)")
	flags.IntVar(&f.low, "low", int(defaults.Low), "weak edge threshold (0-255)")
	flags.IntVar(&f.workers, "workers", defaults.Workers, "convolution row workers")

	return cmd
}

// overrides returns only the flags set on the command line, so values from
// the configuration file survive otherwise.
func (f *cannyFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	updates := make(map[string]interface{})
	set := func(flag, key string, value interface{}) {
		if cmd.Flags().Changed(flag) {
			updates[key] = value
		}
	}

	set("gaussian-size", canny.KeyGaussianSize, f.gaussianSize)
	set("sigma", canny.KeySigma, f.sigma)
	set("sobel-size", canny.KeySobelSize, f.sobelSize)
	set("high", canny.KeyHigh, f.high)
	set("low", canny.KeyLow, f.low)
	set("workers", canny.KeyWorkers, f.workers)

	return updates
}

func newExposureCommand(opts *globalOptions) *cobra.Command {
	var current uint32

	cmd := &cobra.Command{
		Use:   "exposure INPUT",
		Short: "Measure a frame and suggest the next sensor exposure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.environment(cmd)
			if err != nil {
				return err
			}
			defer env.Shutdown()

			if !cmd.Flags().Changed("current") {
				current = env.Config.Exposure.Initial
			}

			src, err := env.Codec.Load(args[0])
			if err != nil {
				return err
			}

			next, mean, err := env.Exposure.Adjust(src, current)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mean: %.2f\n", mean)
			fmt.Fprintf(out, "exposure: %d -> %d\n", current, next)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&current, "current", 0, "exposure used for the frame (default from config)")
	return cmd
}
