package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/0xalexb/kvline"
	"github.com/0xalexb/kvline/config"
	"github.com/0xalexb/kvline/config/fetcher/file"
	"github.com/0xalexb/kvline/config/fetcher/reader"
	"github.com/0xalexb/kvline/config/parser/kv"
	"github.com/0xalexb/kvline/config/parser/toml"
	"github.com/0xalexb/kvline/config/parser/yaml"
	"github.com/0xalexb/kvline/parse"
	"github.com/0xalexb/kvline/properties"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const stdinName = "<stdin>"

type parseFlags struct {
	schema         string
	schemaPath     string
	prefix         string
	policy         string
	format         string
	commentMarkers string
	normalize      bool
	words          bool
}

func (f *parseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.schema, "schema", "", "schema file (.yaml, .yml or .toml) mapping keys to kinds")
	cmd.Flags().StringVar(&f.schemaPath, "schema-path", "", "section of the schema file, e.g. server or db:primary")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "only keep keys under this section, e.g. server or db:primary")
	cmd.Flags().StringVar(&f.policy, "policy", kv.Collect.String(), "entry error policy: abort, skip, collect")
	cmd.Flags().StringVar(&f.format, "format", formatJSON, "output format: json, yaml, toml")
	cmd.Flags().StringVar(&f.commentMarkers, "comment-markers", parse.DefaultCommentMarkers, "runes starting a comment line")
	cmd.Flags().BoolVar(&f.normalize, "normalize", false, "compare keys case-insensitively")
}

// parserOptions builds the kv options selected by the flags.
func (f *parseFlags) parserOptions(logger *slog.Logger) ([]kv.Option, error) {
	policy, err := kv.ParsePolicy(f.policy)
	if err != nil {
		return nil, err //nolint:wrapcheck // already descriptive.
	}

	opts := []kv.Option{
		kv.WithPolicy(policy),
		kv.WithCommentMarkers(f.commentMarkers),
	}

	if f.words {
		opts = append(opts, kv.WithPattern(parse.WordPattern))
	}

	if f.normalize {
		opts = append(opts, kv.WithKeyNormalization())
	}

	if f.schema != "" {
		schema, err := loadSchema(f.schema, f.schemaPath, logger)
		if err != nil {
			return nil, err
		}

		opts = append(opts, kv.WithSchema(schema))
	}

	return opts, nil
}

func newParseCommand(global *globalFlags) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse FILE|-",
		Short: "Parse a key=value file, or standard input when FILE is -",
		Example: `  kvline parse app.conf --schema schema.yaml --prefix server
  cat app.conf | kvline parse - --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			source := argv[0]
			fetcher := fetcherOf(file.NewFetcher(source))

			if source == "-" {
				source = stdinName
				fetcher = fetcherOf(reader.NewFetcher(cmd.InOrStdin(), stdinName))
			}

			return runParse(cmd, global, flags, source, fetcher)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.words, "words", false, "split on whitespace instead of line breaks")

	return cmd
}

// lazyFetcher builds its fetcher on the first Fetch, so that a file that
// cannot be opened is an input error returned by config.Load.
type lazyFetcher struct {
	open func() (config.DataFetcher, error)
}

func fetcherOf[F config.DataFetcher](ctor func() (F, error)) *lazyFetcher {
	return &lazyFetcher{open: func() (config.DataFetcher, error) {
		fetcher, err := ctor()
		if err != nil {
			return nil, err
		}

		return fetcher, nil
	}}
}

// Fetch opens the source and reads it.
func (f *lazyFetcher) Fetch() ([]byte, error) {
	fetcher, err := f.open()
	if err != nil {
		return nil, err
	}

	return fetcher.Fetch() //nolint:wrapcheck // fetchers return *parse.Error.
}

// runParse wires the parser, the fetcher and the properties provider into an
// application and runs it once. Input errors are kept out of the container:
// they are reported after the properties that did parse.
func runParse(cmd *cobra.Command, global *globalFlags, flags *parseFlags, source string, fetcher *lazyFetcher) error {
	if !isFormat(flags.format) {
		return fmt.Errorf("%w: %q", errUnknownFormat, flags.format)
	}

	logger, err := global.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	parserOpts, err := flags.parserOptions(logger)
	if err != nil {
		return err
	}

	appOpts, err := global.appOptions(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	props := properties.New()

	var loadErr error

	parseModule := fx.Module("parse",
		fx.Provide(
			fx.Annotate(
				func(logger *slog.Logger) *kv.Parser {
					return kv.NewParser(append(parserOpts, kv.WithLogger(logger))...)
				},
				fx.As(new(config.Parser)),
			),
		),
		fx.Provide(fx.Annotate(func() *lazyFetcher { return fetcher }, fx.As(new(config.DataFetcher)))),
		fx.Invoke(func(parser config.Parser, data config.DataFetcher, logger *slog.Logger) {
			_, loadErr = config.Provider(props, flags.prefix, config.WithLogger(logger))(parser, data)
		}),
	)

	app := kvline.NewApp(append(appOpts, kvline.WithModules(parseModule))...)

	err = app.Once()
	if err != nil {
		return err
	}

	// Entry errors leave the entries that parsed in props.
	if loadErr == nil || errors.Is(loadErr, config.ErrParse) {
		err = writeProperties(cmd.OutOrStdout(), props, flags.format)
		if err != nil {
			return err
		}
	}

	if loadErr != nil {
		reportErrors(cmd.ErrOrStderr(), source, loadErr)

		return errReported
	}

	return nil
}

// reportErrors prints one "source:line:col: Kind: token" line per entry
// error. Errors without a position omit line and column.
func reportErrors(w io.Writer, source string, err error) {
	for _, entryErr := range kv.Errors(err) {
		_, _ = fmt.Fprintln(w, formatError(source, entryErr))
	}
}

func formatError(source string, err error) string {
	var perr *parse.Error
	if !errors.As(err, &perr) {
		return fmt.Sprintf("%s: %v", source, err)
	}

	location := source

	var lineErr *kv.LineError
	if errors.As(err, &lineErr) {
		location = fmt.Sprintf("%s:%s", source, lineErr.Position)
	}

	if perr.Token == "" {
		return fmt.Sprintf("%s: %s", location, perr.Kind)
	}

	return fmt.Sprintf("%s: %s: %s", location, perr.Kind, perr.Token)
}

// loadSchema reads a schema file, picking the parser from its extension.
func loadSchema(path, section string, logger *slog.Logger) (properties.Schema, error) {
	var parser config.Parser

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.NewParser()
	default:
		parser = yaml.NewParser()
	}

	fetcher, err := file.NewFetcher(path)()
	if err != nil {
		return nil, err //nolint:wrapcheck // *parse.Error names the file.
	}

	var schema properties.Schema

	loaded, err := config.Load(&schema, section, parser, fetcher, config.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}

	return *loaded, nil
}
