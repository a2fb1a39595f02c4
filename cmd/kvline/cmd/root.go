// Package cmd implements the kvline command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/0xalexb/kvline"
	"github.com/0xalexb/kvline/logging"
	"github.com/spf13/cobra"
)

// errReported is returned once the command has already printed its errors.
var errReported = errors.New("errors reported")

type globalFlags struct {
	logLevel  string
	logFormat string
}

// appOptions configures the application logger from the persistent flags.
func (f *globalFlags) appOptions(w io.Writer) ([]kvline.Option, error) {
	format, err := logging.ParseFormat(f.logFormat)
	if err != nil {
		return nil, err //nolint:wrapcheck // already descriptive.
	}

	return []kvline.Option{
		kvline.WithLogLevel(f.logLevel),
		kvline.WithLogFormat(format),
		kvline.WithLogWriter(w),
	}, nil
}

// logger builds the logger the persistent flags describe, for work done
// outside the application container.
func (f *globalFlags) logger(w io.Writer) (*slog.Logger, error) {
	format, err := logging.ParseFormat(f.logFormat)
	if err != nil {
		return nil, err //nolint:wrapcheck // already descriptive.
	}

	return logging.NewLogger(logging.LoggerConfig{Level: f.logLevel, Format: format}, w), nil
}

// NewRootCommand builds the kvline command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "kvline",
		Short: "Typed key=value parsing",
		Long: `kvline parses key=value text into typed properties.

Commands:
  parse    - parse a file or standard input
  args     - parse key=value command line arguments
  serve    - run the HTTP parse service
  version  - print the version`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			_, err := logging.ParseFormat(flags.logFormat)

			return err //nolint:wrapcheck // already descriptive.
		},
	}

	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "log format: json, text")

	root.AddCommand(
		newParseCommand(flags),
		newArgsCommand(flags),
		newServeCommand(flags),
		newVersionCommand(),
	)

	return root
}

// Execute runs the root command. Errors not yet reported by the command are
// printed to its error stream.
func Execute() error {
	root := NewRootCommand()

	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		_, _ = fmt.Fprintf(root.ErrOrStderr(), "kvline: %v\n", err)
	}

	return err //nolint:wrapcheck // reported above.
}
