package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/0xalexb/kvline"
	"github.com/0xalexb/kvline/config"
	"github.com/0xalexb/kvline/config/fetcher/file"
	"github.com/0xalexb/kvline/config/parser/kv"
	"github.com/0xalexb/kvline/listener"
	"github.com/0xalexb/kvline/service"
	"github.com/spf13/cobra"
)

const (
	serviceName  = "parse"
	listenerPath = "listener"
)

type serveFlags struct {
	addr       string
	configPath string
	schema     string
	maxBody    int64
	timeout    time.Duration
	rate       float64
	burst      int
}

func newServeCommand(global *globalFlags) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP parse service",
		Long: `Serve POST /parse and GET /healthz until interrupted.

The listener section of the --config key=value file may set
listener.address, listener.read_header_timeout and listener.shutdown_timeout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newServeApp(cmd, global, flags)
			if err != nil {
				return err
			}

			app.Run()

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", listener.DefaultAddress, "listen address")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "key=value file with a listener section")
	cmd.Flags().StringVar(&flags.schema, "schema", "", "schema used when a request carries none")
	cmd.Flags().Int64Var(&flags.maxBody, "max-body", service.DefaultMaxBodyBytes, "maximum request body in bytes")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", service.DefaultTimeout, "per-request timeout")
	cmd.Flags().Float64Var(&flags.rate, "rate", 0, "requests per second, 0 for no limit")
	cmd.Flags().IntVar(&flags.burst, "burst", 1, "requests admitted at once when --rate is set")

	return cmd
}

// newServeApp builds the application without starting it.
func newServeApp(cmd *cobra.Command, global *globalFlags, flags *serveFlags) (*kvline.App, error) {
	logger, err := global.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	listenerCfg, err := flags.listenerConfig(cmd.Flags().Changed("addr"), logger)
	if err != nil {
		return nil, err
	}

	serviceOpts := []service.Option{
		service.WithMaxBodyBytes(flags.maxBody),
		service.WithTimeout(flags.timeout),
		service.WithRateLimit(flags.rate, flags.burst),
	}

	if flags.schema != "" {
		schema, err := loadSchema(flags.schema, "", logger)
		if err != nil {
			return nil, err
		}

		serviceOpts = append(serviceOpts, service.WithDefaultSchema(schema))
	}

	appOpts, err := global.appOptions(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	app := kvline.NewApp(append(appOpts,
		kvline.WithParseService(serviceName, serviceOpts, listener.WithConfig(listenerCfg)),
	)...)

	err = app.Err()
	if err != nil {
		return nil, fmt.Errorf("building service: %w", err)
	}

	return app, nil
}

// listenerConfig reads the listener section of --config. --addr wins over
// the file when given explicitly.
func (f *serveFlags) listenerConfig(addrChanged bool, logger *slog.Logger) (listener.Config, error) {
	if f.configPath == "" {
		return listener.Config{Address: f.addr}, nil
	}

	fetcher, err := file.NewFetcher(f.configPath)()
	if err != nil {
		return listener.Config{}, err //nolint:wrapcheck // *parse.Error names the file.
	}

	loaded, err := config.Load(&listener.Config{}, listenerPath, kv.NewParser(kv.WithLogger(logger)), fetcher,
		config.WithLogger(logger))
	if err != nil {
		return listener.Config{}, fmt.Errorf("config %s: %w", f.configPath, err)
	}

	if addrChanged {
		loaded.Address = f.addr
	}

	return *loaded, nil
}
