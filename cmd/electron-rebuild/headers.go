package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/electron-rebuild/internal/messages"
)

func newHeadersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.HeadersUse,
		Short: messages.HeadersShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.resolve(cmd, "", false)
			if err != nil {
				return err
			}
			j := newJob(cmd, s)
			target, err := j.requireVersion()
			if err != nil {
				return err
			}
			return j.withHeadersLock(func() error {
				if err := j.ensureHeaders(cmd.Context(), target); err != nil {
					return err
				}
				j.print.success(messages.HeadersReady)
				return nil
			})
		},
	}
}
