package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clippintel/botscore/pkg/tlsutil"
)

func newDevCertsCmd() *cobra.Command {
	var (
		outDir string
		hosts  []string
	)

	cmd := &cobra.Command{
		Use:   "dev-certs",
		Short: "Write a throwaway CA and server certificate for local TLS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			certs, err := tlsutil.GenerateDevCertificates(hosts, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "GRPC_TLS_CERT_FILE=%s\nGRPC_TLS_KEY_FILE=%s\n# client: --ca %s\n",
				certs.CertFile, certs.KeyFile, certs.CAFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "certs", "output directory")
	cmd.Flags().StringSliceVar(&hosts, "host", []string{"localhost", "127.0.0.1"}, "DNS names or IPs the server certificate covers")

	return cmd
}
