package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coinbase/openssl-go/pkg/openssl"
	"github.com/coinbase/openssl-go/pkg/openssl/cms"
	"github.com/coinbase/openssl-go/pkg/openssl/x509"
)

func newCMSCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cms",
		Short: "CMS operations (RFC 5652)",
		Long: `CMS (Cryptographic Message Syntax) operations through libcrypto.

This command provides:
  - sign:    Create a CMS SignedData structure
  - verify:  Verify a CMS SignedData structure
  - encrypt: Encrypt data using CMS EnvelopedData
  - decrypt: Decrypt CMS EnvelopedData

Output is DER unless --smime is given.

Examples:
  # Detached signature as an SMIME multipart/signed message
  openssl-go cms sign --cert signer.crt --key signer.key --in mail.txt --out mail.eml --detached --smime

  # Verify it against a CA file
  openssl-go cms verify mail.eml --smime --data mail.txt --ca ca.crt

  # Encrypt for two recipients
  openssl-go cms encrypt -r alice.crt -r bob.crt --in secret.txt --out secret.p7m

  # Decrypt
  openssl-go cms decrypt --key bob.key --cert bob.crt --in secret.p7m --out secret.txt`,
	}
	cmd.AddCommand(newCMSSignCmd(a))
	cmd.AddCommand(newCMSVerifyCmd(a))
	cmd.AddCommand(newCMSEncryptCmd(a))
	cmd.AddCommand(newCMSDecryptCmd(a))
	return cmd
}

// parseContentInfo accepts SMIME when smime is set, otherwise DER or PEM.
func parseContentInfo(data []byte, smime bool) (*cms.ContentInfo, error) {
	if smime {
		return cms.ReadSMIME(data)
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("-----BEGIN")) {
		return cms.FromPEM(data)
	}
	return cms.FromDER(data)
}

func encodeContentInfo(ci *cms.ContentInfo, smime bool, content []byte, flags cms.Flags) ([]byte, error) {
	if smime {
		return ci.ToSMIME(content, flags)
	}
	return ci.ToDER()
}

func newCMSSignCmd(a *app) *cobra.Command {
	var (
		certPath      string
		keyPath       string
		passphraseEnv string
		chain         []string
		in            string
		out           string
		detached      bool
		smime         bool
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Create a CMS SignedData structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLibrary(); err != nil {
				return err
			}
			flags, err := a.cfg.CMSFlags()
			if err != nil {
				return err
			}
			flags |= cms.Binary
			if detached {
				flags |= cms.Detached
			}

			data, err := readInput(cmd.InOrStdin(), in)
			if err != nil {
				return err
			}
			cert, err := loadCertificate(certPath)
			if err != nil {
				return err
			}
			defer cert.Close()
			key, err := loadPrivateKey(keyPath, passphraseEnv)
			if err != nil {
				return err
			}
			defer key.Close()
			extra, err := loadCertificates(chain)
			if err != nil {
				return err
			}
			defer x509.CloseAll(extra)

			ci, err := cms.Sign(cert, key, extra, data, flags)
			if err != nil {
				return fmt.Errorf("failed to sign: %w", err)
			}
			defer ci.Close()

			var content []byte
			if detached {
				content = data
			}
			encoded, err := encodeContentInfo(ci, smime, content, flags)
			if err != nil {
				return fmt.Errorf("failed to encode signature: %w", err)
			}
			openssl.Logger().Info(context.Background(), "signed", "bytes", len(data), "detached", detached, "out", out)
			return writeOutput(cmd.OutOrStdout(), out, encoded, false)
		},
	}
	cmd.Flags().StringVar(&certPath, "cert", "", "Signer certificate (PEM or DER)")
	cmd.Flags().StringVar(&keyPath, "key", "", "Signer private key (PEM)")
	cmd.Flags().StringVar(&passphraseEnv, "passphrase-env", "", "Environment variable holding the key passphrase")
	cmd.Flags().StringArrayVar(&chain, "chain", nil, "Extra certificates to embed (PEM bundle, repeatable)")
	cmd.Flags().StringVarP(&in, "in", "i", "-", "File to sign (- for stdin)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file (- for stdout)")
	cmd.Flags().BoolVar(&detached, "detached", false, "Leave the content out of the signature")
	cmd.Flags().BoolVar(&smime, "smime", false, "Write an SMIME message instead of DER")
	_ = cmd.MarkFlagRequired("cert")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func newCMSVerifyCmd(a *app) *cobra.Command {
	var (
		dataPath string
		certs    []string
		trust    trustFlags
		noVerify bool
		smime    bool
		out      string
	)
	cmd := &cobra.Command{
		Use:   "verify <signature-file>",
		Short: "Verify a CMS SignedData structure",
		Long: `Verify a CMS SignedData structure and write the signed content.

For detached signatures, provide the original data with --data.
Signer chains are validated against --ca, --ca-dir, --default-paths and the
trust section of the config file, unless --no-verify is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLibrary(); err != nil {
				return err
			}
			flags, err := a.cfg.CMSFlags()
			if err != nil {
				return err
			}
			flags |= cms.Binary
			if noVerify {
				flags |= cms.NoVerify
			}

			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			ci, err := parseContentInfo(raw, smime)
			if err != nil {
				return fmt.Errorf("failed to parse signature: %w", err)
			}
			defer ci.Close()

			var detached []byte
			if dataPath != "" {
				detached, err = readInput(cmd.InOrStdin(), dataPath)
				if err != nil {
					return err
				}
			}
			signers, err := loadCertificates(certs)
			if err != nil {
				return err
			}
			defer x509.CloseAll(signers)

			var store *x509.Store
			if !noVerify {
				store, err = a.buildStore(trust)
				if err != nil {
					return fmt.Errorf("failed to build trust store: %w", err)
				}
				defer store.Close()
			}

			content, err := ci.Verify(signers, store, detached, flags)
			if err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Verification successful")
			if out != "" {
				return writeOutput(cmd.OutOrStdout(), out, content, false)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "Original content for detached signatures")
	cmd.Flags().StringArrayVar(&certs, "certs", nil, "Extra signer certificates (PEM bundle, repeatable)")
	cmd.Flags().StringArrayVar(&trust.caFiles, "ca", nil, "Trusted CA file (PEM bundle, repeatable)")
	cmd.Flags().StringVar(&trust.caDir, "ca-dir", "", "Trusted CA hashed directory")
	cmd.Flags().BoolVar(&trust.defaultPaths, "default-paths", false, "Trust the OpenSSL default certificate locations")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Check signatures only, skip chain validation")
	cmd.Flags().BoolVar(&smime, "smime", false, "Input is an SMIME message")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the signed content to this file (- for stdout)")
	return cmd
}

func newCMSEncryptCmd(a *app) *cobra.Command {
	var (
		recipients []string
		in         string
		out        string
		cipher     string
		smime      bool
	)
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt data using CMS EnvelopedData",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLibrary(); err != nil {
				return err
			}
			flags, err := a.cfg.CMSFlags()
			if err != nil {
				return err
			}
			flags |= cms.Binary
			if cipher == "" {
				cipher = a.cfg.CMS.Cipher
			}

			data, err := readInput(cmd.InOrStdin(), in)
			if err != nil {
				return err
			}
			certs, err := loadCertificates(recipients)
			if err != nil {
				return err
			}
			defer x509.CloseAll(certs)

			ci, err := cms.Encrypt(certs, data, cipher, flags)
			if err != nil {
				return fmt.Errorf("failed to encrypt: %w", err)
			}
			defer ci.Close()

			encoded, err := encodeContentInfo(ci, smime, nil, flags)
			if err != nil {
				return fmt.Errorf("failed to encode: %w", err)
			}
			openssl.Logger().Info(context.Background(), "encrypted", "recipients", len(certs), "cipher", cipher)
			return writeOutput(cmd.OutOrStdout(), out, encoded, false)
		},
	}
	cmd.Flags().StringArrayVarP(&recipients, "recipient", "r", nil, "Recipient certificate(s) (PEM bundle, repeatable)")
	cmd.Flags().StringVarP(&in, "in", "i", "-", "Input file to encrypt (- for stdin)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file (- for stdout)")
	cmd.Flags().StringVar(&cipher, "cipher", "", "Content cipher (default from config, aes-256-cbc)")
	cmd.Flags().BoolVar(&smime, "smime", false, "Write an SMIME message instead of DER")
	_ = cmd.MarkFlagRequired("recipient")
	return cmd
}

func newCMSDecryptCmd(a *app) *cobra.Command {
	var (
		keyPath       string
		certPath      string
		passphraseEnv string
		in            string
		out           string
		smime         bool
	)
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt CMS EnvelopedData",
		Long: `Decrypt CMS EnvelopedData with the recipient's private key.

With --cert the matching recipient is selected directly; without it every
recipient is tried with the key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLibrary(); err != nil {
				return err
			}
			raw, err := readInput(cmd.InOrStdin(), in)
			if err != nil {
				return err
			}
			ci, err := parseContentInfo(raw, smime)
			if err != nil {
				return fmt.Errorf("failed to parse input: %w", err)
			}
			defer ci.Close()

			key, err := loadPrivateKey(keyPath, passphraseEnv)
			if err != nil {
				return err
			}
			defer key.Close()

			var cert *x509.Certificate
			if certPath != "" {
				cert, err = loadCertificate(certPath)
				if err != nil {
					return err
				}
				defer cert.Close()
			}

			plain, err := ci.Decrypt(key, cert)
			if err != nil {
				return fmt.Errorf("failed to decrypt: %w", err)
			}
			defer openssl.ZeroizeBytes(plain)
			return writeOutput(cmd.OutOrStdout(), out, plain, true)
		},
	}
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "Recipient private key (PEM)")
	cmd.Flags().StringVarP(&certPath, "cert", "c", "", "Recipient certificate for matching (optional)")
	cmd.Flags().StringVar(&passphraseEnv, "passphrase-env", "", "Environment variable holding the key passphrase")
	cmd.Flags().StringVarP(&in, "in", "i", "-", "Input file (- for stdin)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file (- for stdout)")
	cmd.Flags().BoolVar(&smime, "smime", false, "Input is an SMIME message")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
