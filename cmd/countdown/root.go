package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/countdown-tracker/config"
)

// options holds flag values shared by all commands
type options struct {
	configPath string
	target     string
	title      string
	frameRate  int
	statusAddr string
	noAudio    bool
	debug      bool
	watch      bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "countdown",
		Short: "Live terminal countdown to a target date",
		Long: `countdown shows the days, hours, minutes and seconds remaining until a
target date, refreshed every frame until the target is reached.

The target comes from --target or the config file and accepts RFC 3339
timestamps, local ISO-8601 date-times, bare dates (UTC midnight) and epoch
milliseconds.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}

			closer, err := setupLogging(cfg.Log, opts.debug)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			watchPath := ""
			if opts.watch {
				if opts.configPath == "" {
					return fmt.Errorf("--watch requires --config")
				}
				watchPath = opts.configPath
			}
			return runCountdown(cmd.Context(), cfg, watchPath, log.Logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file path (.toml, .yaml)")
	flags.StringVarP(&opts.target, "target", "t", "", "target date/time, overrides the config file")
	flags.StringVar(&opts.title, "title", "", "title shown above the countdown")
	flags.IntVar(&opts.frameRate, "fps", 0, "refresh rate in frames per second")
	flags.StringVar(&opts.statusAddr, "status-addr", "", "serve /snapshot and /metrics on this address")
	flags.BoolVar(&opts.noAudio, "no-audio", false, "disable the expiry chime")
	flags.BoolVar(&opts.debug, "debug", false, "write debug logs to the log file")
	rootCmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "restart the countdown when the config file changes")

	rootCmd.AddCommand(newPrintCommand(opts))
	return rootCmd
}

// resolveConfig loads the config file if given, then applies explicitly set flags
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg.Audio.ApplyEnv()
	}

	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.Target = opts.target
	}
	if flags.Changed("title") {
		cfg.Title = opts.title
	}
	if flags.Changed("fps") {
		cfg.FrameRate = opts.frameRate
	}
	if flags.Changed("status-addr") {
		cfg.Status.Addr = opts.statusAddr
	}
	if opts.noAudio {
		cfg.Audio.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
