// Package cmd wires the formkit-cli commands.
package cmd

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/config"
)

// app carries the state shared by every subcommand once the root command has
// loaded the configuration.
type app struct {
	configFile string
	envFiles   []string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

// Execute runs the root command against os.Args. Errors are returned
// unprinted.
func Execute() error {
	return NewRootCommand().Execute()
}

// Reported reports whether err only signals an outcome the command already
// printed, such as a failed check. The process should still exit non-zero.
func Reported(err error) bool {
	return errors.Is(err, errInvalid)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "formkit",
		Short: "Form field components with debounced validation",
		Long: `formkit exercises the form field units from a terminal.

Commands:
  demo      - fill in a sample signup form
  check     - validate a single value, password or file
  calendar  - print a month grid as the date picker lays it out
  inspect   - print the effective configuration
  zones     - search the timezone choices`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (yaml or toml)")
	flags.StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "dotenv files read before FORMKIT_* overrides")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newDemoCommand(a),
		newCheckCommand(a),
		newCalendarCommand(a),
		newInspectCommand(a),
		newZonesCommand(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, config.WithDotEnv(a.envFiles...))
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		if _, err := config.ParseLevel(a.logLevel); err != nil {
			return err
		}
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	a.logger.Debug("configuration loaded", "file", a.configFile, "output", cfg.Output)
	return nil
}
