package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coinbase/openssl-go/pkg/openssl/x509"
)

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "X.509 certificate store operations",
	}
	cmd.AddCommand(newStoreVerifyCmd(a))
	return cmd
}

func newStoreVerifyCmd(a *app) *cobra.Command {
	var (
		trust     trustFlags
		untrusted []string
	)
	cmd := &cobra.Command{
		Use:   "verify <cert>",
		Short: "Validate a certificate chain",
		Long: `Validate a certificate against a trust store.

Examples:
  # Against a CA file, with an intermediate supplied separately
  openssl-go store verify leaf.crt --ca root.crt --untrusted intermediate.crt

  # Against the system trust store
  openssl-go store verify server.crt --default-paths`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLibrary(); err != nil {
				return err
			}
			cert, err := loadCertificate(args[0])
			if err != nil {
				return err
			}
			defer cert.Close()
			chain, err := loadCertificates(untrusted)
			if err != nil {
				return err
			}
			defer x509.CloseAll(chain)

			store, err := a.buildStore(trust)
			if err != nil {
				return fmt.Errorf("failed to build trust store: %w", err)
			}
			defer store.Close()

			subject, err := cert.Subject()
			if err != nil {
				return err
			}
			if err := store.Verify(cert, chain); err != nil {
				var verr *x509.VerifyError
				if errors.As(err, &verr) {
					return fmt.Errorf("%s: %w", subject, verr)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", subject)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&trust.caFiles, "ca", nil, "Trusted CA file (PEM bundle, repeatable)")
	cmd.Flags().StringVar(&trust.caDir, "ca-dir", "", "Trusted CA hashed directory")
	cmd.Flags().BoolVar(&trust.defaultPaths, "default-paths", false, "Trust the OpenSSL default certificate locations")
	cmd.Flags().StringArrayVar(&untrusted, "untrusted", nil, "Intermediate certificates (PEM bundle, repeatable)")
	return cmd
}
