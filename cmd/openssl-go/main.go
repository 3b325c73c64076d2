// Command openssl-go exercises the openssl-go bindings from the shell: DSA
// key handling, CMS signing and encryption, chain verification and a
// select(2) based stdin wait.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coinbase/openssl-go/internal/config"
	"github.com/coinbase/openssl-go/pkg/openssl"
)

// Build-time variables (injected with -ldflags).
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries state shared by the subcommands of one invocation.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "openssl-go",
		Short: "OpenSSL libcrypto through Go bindings",
		Long: `openssl-go drives the libcrypto bindings of this module.

Examples:
  # Generate a DSA key pair
  openssl-go dsa generate --bits 2048 --out dsa.key --pubout dsa.pub

  # Sign a file with a certificate and key
  openssl-go cms sign --cert signer.crt --key signer.key --in file.txt --out file.p7s

  # Verify a certificate against the system trust store
  openssl-go store verify server.crt --default-paths`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newDSACmd(a))
	root.AddCommand(newCMSCmd(a))
	root.AddCommand(newStoreCmd(a))
	root.AddCommand(newWaitCmd())
	return root
}

// setup loads the configuration and installs the logger. libcrypto itself
// is initialized lazily by initLibrary so that commands without native
// calls work in a build without cgo.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	logger, err := cfg.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	openssl.SetLogger(logger)
	a.cfg = cfg
	return nil
}

func (a *app) initLibrary() error {
	if err := openssl.Init(openssl.Config{LoadConfigFile: a.cfg.LoadOpenSSLConfig}); err != nil {
		return fmt.Errorf("failed to initialize libcrypto: %w", err)
	}
	return nil
}
