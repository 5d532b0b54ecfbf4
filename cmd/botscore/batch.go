package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clippintel/botscore/internal/application/dto"
	"github.com/clippintel/botscore/internal/application/usecase"
	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/service"
	grpcpresentation "github.com/clippintel/botscore/internal/presentation/grpc"
)

func newBatchCmd(opts *globalOptions) *cobra.Command {
	var pacing time.Duration

	cmd := &cobra.Command{
		Use:     "batch <handle:platform>...",
		Short:   "Analyze several accounts in order",
		Example: `  botscore batch organic.creator:instagram @growth_hack_2024:tiktok --fixtures fixtures.json`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts := make([]dto.AnalyzeAccountRequest, 0, len(args))
			for _, arg := range args {
				account, err := model.ParseAccountIdentity(arg)
				if err != nil {
					return err
				}
				accounts = append(accounts, dto.AnalyzeAccountRequest{
					Handle:   account.Handle,
					Platform: account.Platform.String(),
				})
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			if opts.server != "" {
				return remoteBatch(ctx, cmd, opts, accounts)
			}

			logger := opts.logger(cmd.ErrOrStderr())
			orchestrator, err := opts.orchestrator(logger, pacing)
			if err != nil {
				return err
			}

			resp, err := usecase.NewAnalyzeBatch(orchestrator, nil, nil, logger).Execute(ctx, dto.AnalyzeBatchRequest{Accounts: accounts})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().DurationVar(&pacing, "pacing", service.DefaultBatchPacing, "pause between consecutive accounts")

	return cmd
}

func remoteBatch(ctx context.Context, cmd *cobra.Command, opts *globalOptions, accounts []dto.AnalyzeAccountRequest) error {
	client, conn, err := opts.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	refs := make([]*grpcpresentation.AccountRef, 0, len(accounts))
	for _, a := range accounts {
		refs = append(refs, &grpcpresentation.AccountRef{Handle: a.Handle, Platform: a.Platform})
	}

	resp, err := client.AnalyzeBatch(ctx, &grpcpresentation.AnalyzeBatchRequest{Accounts: refs})
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), resp)
}
