package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/clippintel/botscore/internal/application/dto"
	"github.com/clippintel/botscore/internal/application/usecase"
	grpcpresentation "github.com/clippintel/botscore/internal/presentation/grpc"
)

func newAnalyzeCmd(opts *globalOptions) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "analyze <handle>",
		Short: "Analyze one account",
		Example: `  botscore analyze @growth_hack_2024 --platform tiktok --fixtures fixtures.json
  botscore analyze organic.creator --platform instagram --server localhost:8090`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			if opts.server != "" {
				client, conn, err := opts.dial()
				if err != nil {
					return err
				}
				defer conn.Close()

				resp, err := client.AnalyzeAccount(ctx, &grpcpresentation.AnalyzeAccountRequest{
					Account: &grpcpresentation.AccountRef{Handle: args[0], Platform: platform},
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp.Analysis)
			}

			logger := opts.logger(cmd.ErrOrStderr())
			orchestrator, err := opts.orchestrator(logger, 0)
			if err != nil {
				return err
			}

			resp, err := usecase.NewAnalyzeAccount(orchestrator, nil, nil, logger).Execute(ctx, dto.AnalyzeAccountRequest{
				Handle:   args[0],
				Platform: platform,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", "instagram, tiktok, youtube or twitter (required)")
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}
