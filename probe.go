package main

import (
	"github.com/spf13/cobra"

	"listmodels/internal/probe"
)

func (a *app) newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Find the first candidate model that answers a one-token request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, closeFn, err := a.openProvider(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			candidates := a.cfg.Candidates
			if cmd.Flags().Changed("model") {
				candidates, err = cmd.Flags().GetStringSlice("model")
				if err != nil {
					return err
				}
			}

			_, err = probe.New(cmd.OutOrStdout(), a.log.WithName("probe")).Run(ctx, p, candidates)
			return err
		},
	}
	cmd.Flags().StringSlice("model", nil, "candidate model to try, in order (repeatable)")
	return cmd
}
