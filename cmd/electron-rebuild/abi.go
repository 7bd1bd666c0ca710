package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/electron-rebuild/internal/abi"
	"github.com/conn-castle/electron-rebuild/internal/messages"
)

func newABICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ABIUse,
		Short: messages.ABIShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tee io.Writer
			if opts.verbose {
				tee = cmd.ErrOrStderr()
			}
			prober := &abi.Prober{Runner: newRunner(tee), BaseEnv: environ()}
			version, err := prober.QueryABI(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}
