package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vedantwpatil/Akemito/internal/config"
	"github.com/vedantwpatil/Akemito/internal/input"
	"github.com/vedantwpatil/Akemito/internal/logging"
)

func newRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "akemito",
		Short: "Remember where the cursor rested and jump back to it with Alt+Z",
		Long: `Akemito watches the mouse cursor. Once the cursor has stayed in one spot
for the dwell time and then moves away, that spot is saved. Pressing Alt+Z
moves the cursor back to the saved spot.`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSaver(cmd, v, cfgFile)
		},
	}

	pflags := rootCmd.PersistentFlags()
	pflags.StringVarP(&cfgFile, "config", "c", "", "config file (default: ./.akemito.yaml or ~/.config/akemito/config.yaml)")
	pflags.String("log-level", "", "log level: debug, info, warn, error")
	pflags.String("log-format", "", "log format: text, json")

	flags := rootCmd.Flags()
	flags.Duration("dwell", 0, "how long the cursor must rest before its spot can be saved (default 1s)")
	flags.Duration("sample-interval", 0, "how often the cursor location is polled (default 50ms)")

	_ = v.BindPFlag("logging.level", pflags.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", pflags.Lookup("log-format"))
	_ = v.BindPFlag("tracking.dwell_threshold", flags.Lookup("dwell"))
	_ = v.BindPFlag("tracking.sample_interval", flags.Lookup("sample-interval"))

	rootCmd.AddCommand(newDoctorCommand(), newConfigCommand(), newVersionCommand())
	return rootCmd
}

func runSaver(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debugf("Using config file %s", used)
	}

	env := input.DetectEnvironment()
	for _, w := range env.Warnings {
		logger.Warn(w)
	}
	if err := env.Err(); err != nil {
		return startupError(err)
	}

	app, err := NewApplication(v, cfg, logger)
	if err != nil {
		return err
	}
	if err := app.Run(); err != nil {
		return startupError(err)
	}
	return nil
}

func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "doctor",
		Short:        "Check that this session supports global hotkeys and cursor control",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := input.DetectEnvironment()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "OS:       %s\n", env.OS)
			fmt.Fprintf(out, "Session:  %s\n", env.Session)
			if env.Display != "" {
				fmt.Fprintf(out, "DISPLAY:  %s\n", env.Display)
			}
			fmt.Fprintf(out, "Displays: %d\n", env.Displays)
			if env.Displays > 0 {
				fmt.Fprintf(out, "Desktop:  %v\n", input.VirtualDesktop())
			}
			for _, w := range env.Warnings {
				fmt.Fprintf(out, "Warning:  %s\n", w)
			}

			if err := env.Err(); err != nil {
				return startupError(err)
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}
}

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:          "init [path]",
		Short:        "Write a default configuration file",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				dir, err := config.UserDir()
				if err != nil {
					return fmt.Errorf("locating config directory: %w", err)
				}
				path = filepath.Join(dir, "config.yaml")
			}

			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})
	return configCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "akemito %s\n", version)
		},
	}
}
