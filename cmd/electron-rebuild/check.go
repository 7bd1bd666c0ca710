package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/electron-rebuild/internal/messages"
)

const (
	flagExitCode      = "exit-code"
	rebuildNeededCode = 2
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var exitCode bool
	cmd := &cobra.Command{
		Use:   messages.CheckUse,
		Short: messages.CheckShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.resolve(cmd, "", true)
			if err != nil {
				return err
			}
			j := newJob(cmd, s)
			decision, err := j.decide(cmd.Context())
			if err != nil {
				return err
			}
			if !decision.Needed {
				j.print.plain(messages.RebuildSkippedFmt, decision.Reason)
				return nil
			}
			j.print.plain(messages.RebuildNeededFmt, decision.Reason)
			if exitCode {
				return &SilentExitError{Code: rebuildNeededCode}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exitCode, flagExitCode, false, messages.CheckFlagExitCode)
	return cmd
}
