package main

import (
	"time"

	"github.com/robmorgan/lcs/config"
	"github.com/robmorgan/lcs/logger"
	"github.com/robmorgan/lcs/universe"
	"github.com/spf13/cobra"
)

const defaultFadeTime = 3 * time.Second

// options holds the flags shared by every command.
type options struct {
	configPath  string
	logLevel    string
	outputType  string
	fadeTime    time.Duration
	metricsAddr string
	asYAML      bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "lcs",
		Short: "Drive a DMX lighting universe",
		Long: `lcs streams a patched DMX universe to an Enttec USB Pro, olad or an MQTT
bridge and runs fades and cue lists on its dimmers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logLevel != "" {
				return logger.SetLevel(opts.logLevel)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "lcs.yaml", "Path to the patch file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error), overrides the patch file")
	rootCmd.PersistentFlags().StringVarP(&opts.outputType, "output", "o", "", "Output transport (enttec, ola, mqtt, dump), overrides the patch file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the output and play the cue list, or fade every dimmer in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts)
		},
	}
	runCmd.Flags().DurationVar(&opts.fadeTime, "fade", 0, "Fade every dimmer to its target over this time instead of playing the cues")
	runCmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address, e.g. :9100")

	blackoutCmd := &cobra.Command{
		Use:   "blackout",
		Short: "Send one frame with every dimmer at zero",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlackout(cmd, opts)
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the patch and the DMX frame it produces",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, opts)
		},
	}
	dumpCmd.Flags().BoolVar(&opts.asYAML, "yaml", false, "Print the normalised patch file instead")

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in fixture profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(cmd)
		},
	}

	rootCmd.AddCommand(runCmd, blackoutCmd, dumpCmd, profilesCmd)
	return rootCmd
}

// load reads the patch file, applies its log level unless the flag is set and builds
// the universe.
func load(opts *options) (*config.Config, *universe.Universe, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}

	if opts.logLevel == "" && cfg.Logging.Level != "" {
		if err := logger.SetLevel(cfg.Logging.Level); err != nil {
			return nil, nil, err
		}
	}
	if opts.outputType != "" {
		cfg.Output.Type = opts.outputType
	}

	u, err := universe.FromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, u, nil
}
