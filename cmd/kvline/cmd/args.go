package cmd

import (
	"github.com/0xalexb/kvline/config/fetcher/args"
	"github.com/spf13/cobra"
)

const argsName = "<args>"

func newArgsCommand(global *globalFlags) *cobra.Command {
	flags := &parseFlags{words: true}

	cmd := &cobra.Command{
		Use:   "args key=value...",
		Short: "Parse key=value command line arguments",
		Example: `  kvline args port=8080 peers=a,b --schema schema.yaml
  kvline args --prefix server -- server.port=8080`,
		RunE: func(cmd *cobra.Command, argv []string) error {
			return runParse(cmd, global, flags, argsName, fetcherOf(args.NewFetcher(argv)))
		},
	}

	flags.register(cmd)

	return cmd
}
