package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coinbase/openssl-go/pkg/openssl"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wrapper and libcrypto versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = openssl.EnsureInit()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "openssl-go: %s\n", openssl.WrapperVersion())
			fmt.Fprintf(out, "libcrypto:  %s\n", openssl.LibraryVersion())
			return nil
		},
	}
}
