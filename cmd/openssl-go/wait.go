package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/coinbase/openssl-go/pkg/fdselect"
)

var errTimeout = errors.New("timed out waiting for input")

func newWaitCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Wait until stdin becomes readable",
		Long: `Block on select(2) until standard input has data or the timeout expires.
A negative timeout waits indefinitely. Exits non-zero on timeout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var read fdselect.Set
			if err := read.Add(os.Stdin); err != nil {
				return err
			}
			ready, err := fdselect.Select(os.Stdin, &read, nil, nil, timeout)
			if err != nil {
				return err
			}
			if !ready {
				return errTimeout
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ready")
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "How long to wait")
	return cmd
}
