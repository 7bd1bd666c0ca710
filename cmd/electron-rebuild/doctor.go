package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/electron-rebuild/internal/config"
	"github.com/conn-castle/electron-rebuild/internal/doctor"
	"github.com/conn-castle/electron-rebuild/internal/messages"
)

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(cmd.OutOrStdout(), opts.noColor)
			cwd, err := getwd()
			if err != nil {
				return err
			}
			moduleDir := opts.moduleDir
			if moduleDir == "" {
				moduleDir = defaultModuleDir
			}
			if moduleDir, err = absPath(cwd, moduleDir); err != nil {
				return err
			}
			configPath := config.DefaultPath(moduleDir)
			if opts.configPath != "" {
				if configPath, err = absPath(cwd, opts.configPath); err != nil {
					return err
				}
			}

			out.plain(messages.DoctorHealthCheckFmt, moduleDir)
			configResult, cfg := doctor.CheckConfig(configPath)
			results := []doctor.Result{configResult}
			if cfg != nil {
				results = append(results, doctor.CheckModuleDir(moduleDir))
				s, err := opts.resolve(cmd, moduleDir, false)
				if err != nil {
					return err
				}
				results = append(results, doctor.CheckTools(s.Tools)...)
				results = append(results,
					doctor.CheckPrebuilt(s.PrebuiltDir),
					doctor.CheckHeaders(s.HeadersDir, s.Version),
				)
			}

			for _, r := range results {
				printResult(out, r)
			}
			if doctor.HasFailure(results) {
				out.line(color.FgRed, messages.DoctorFailureSummary)
				return errors.New(messages.DoctorFailureError)
			}
			out.success(messages.DoctorSuccessSummary)
			return nil
		},
	}
}

func printResult(p printer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = p.colored(color.FgGreen, messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = p.colored(color.FgYellow, messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = p.colored(color.FgRed, messages.DoctorStatusFailLabel)
	}
	p.plain(messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(p.out, r.Recommendation)
	}
}

func printRecommendation(out io.Writer, recommendation string) {
	_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, recommendation)
}
