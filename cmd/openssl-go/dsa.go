package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coinbase/openssl-go/pkg/openssl/bn"
	"github.com/coinbase/openssl-go/pkg/openssl/dsa"
)

func newDSACmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dsa",
		Short: "DSA key operations",
		Long: `DSA key generation and inspection.

Examples:
  # Generate a key pair and write the public key separately
  openssl-go dsa generate --bits 2048 --out dsa.key --pubout dsa.pub

  # Encrypt the private key with a passphrase from the environment
  DSA_PASS=secret openssl-go dsa generate --out dsa.key --passphrase-env DSA_PASS

  # Show the parameters of a key
  openssl-go dsa inspect dsa.key`,
	}
	cmd.AddCommand(newDSAGenerateCmd(a))
	cmd.AddCommand(newDSAInspectCmd(a))
	return cmd
}

func newDSAGenerateCmd(a *app) *cobra.Command {
	var (
		bits          int
		out           string
		pubout        string
		passphraseEnv string
		cipher        string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a DSA key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLibrary(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("bits") {
				bits = a.cfg.DSA.Bits
			}
			pass, err := passphraseFromEnv(passphraseEnv)
			if err != nil {
				return err
			}

			key, err := dsa.Generate(bits)
			if err != nil {
				return fmt.Errorf("failed to generate key: %w", err)
			}
			defer key.Close()

			var privPEM []byte
			if pass != nil {
				privPEM, err = key.PrivateKeyToPEMPassphrase(cipher, pass)
			} else {
				privPEM, err = key.PrivateKeyToPEM()
			}
			if err != nil {
				return fmt.Errorf("failed to encode private key: %w", err)
			}
			if err := writeOutput(cmd.OutOrStdout(), out, privPEM, true); err != nil {
				return err
			}

			if pubout != "" {
				pubPEM, err := key.PublicKeyToPEM()
				if err != nil {
					return fmt.Errorf("failed to encode public key: %w", err)
				}
				if err := writeOutput(cmd.OutOrStdout(), pubout, pubPEM, false); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 2048, "Length of the prime p in bits (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Private key output file (PEM, - for stdout)")
	cmd.Flags().StringVar(&pubout, "pubout", "", "Public key output file (PEM)")
	cmd.Flags().StringVar(&passphraseEnv, "passphrase-env", "", "Environment variable holding the private key passphrase")
	cmd.Flags().StringVar(&cipher, "cipher", "aes-256-cbc", "Cipher used to encrypt the private key")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newDSAInspectCmd(a *app) *cobra.Command {
	var passphraseEnv string
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show DSA parameter sizes and key presence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLibrary(); err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read key: %w", err)
			}
			pass, err := passphraseFromEnv(passphraseEnv)
			if err != nil {
				return err
			}

			key, err := dsa.PrivateKeyFromPEMPassphrase(data, pass)
			if err != nil {
				pub, pubErr := dsa.PublicKeyFromPEM(data)
				if pubErr != nil {
					return fmt.Errorf("failed to parse DSA key: %w", err)
				}
				key = pub
			}
			defer key.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "p: %s\n", bitsOf(key.P()))
			fmt.Fprintf(out, "q: %s\n", bitsOf(key.Q()))
			fmt.Fprintf(out, "g: %s\n", bitsOf(key.G()))
			fmt.Fprintf(out, "public key:  %t\n", key.HasPublicKey())
			fmt.Fprintf(out, "private key: %t\n", key.HasPrivateKey())
			if n, ok := key.Size(); ok {
				fmt.Fprintf(out, "max signature size: %d bytes\n", n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&passphraseEnv, "passphrase-env", "", "Environment variable holding the private key passphrase")
	return cmd
}

func bitsOf(r *bn.Ref) string {
	if r == nil {
		return "unset"
	}
	n, err := r.NumBits()
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("%d bits", n)
}
