package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	grpcpresentation "github.com/clippintel/botscore/internal/presentation/grpc"
)

func newGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <analysis-id>",
		Short: "Fetch a stored analysis from a botscored server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.server == "" {
				return errors.New("get requires --server")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			client, conn, err := opts.dial()
			if err != nil {
				return err
			}
			defer conn.Close()

			resp, err := client.GetAnalysis(ctx, &grpcpresentation.GetAnalysisRequest{ID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp.Analysis)
		},
	}
}
