package main

import (
	"github.com/spf13/cobra"

	"listmodels/internal/lister"
)

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("method", nil, "only list models supporting this generation method (repeatable)")
}

func (a *app) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available models and their generation methods",
		Args:  cobra.NoArgs,
		RunE:  a.runList,
	}
	addListFlags(cmd)
	return cmd
}

func (a *app) runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p, closeFn, err := a.openProvider(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	methods := a.cfg.Methods
	if cmd.Flags().Changed("method") {
		methods, err = cmd.Flags().GetStringSlice("method")
		if err != nil {
			return err
		}
	}

	l := lister.New(cmd.OutOrStdout(),
		lister.WithMethods(methods...),
		lister.WithLogger(a.log.WithName("lister")),
	)
	return l.Run(ctx, p)
}
