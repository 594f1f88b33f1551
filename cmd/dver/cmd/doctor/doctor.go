// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"os"

	doctorpkg "dver.dev/x/dver/pkg/doctor"
	"dver.dev/x/dver/pkg/dverconfig"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func Cmd(config *dverconfig.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "check for common issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			results := doctorpkg.New(config).Run(cwd)
			for _, r := range results {
				cmd.Printf("%s %s: %s\n", marker(r.Status), r.Name, r.Detail)
			}

			if doctorpkg.HasFailure(results) {
				return doctorpkg.ErrChecksFailed
			}
			return nil
		},
	}

	return cmd
}

func marker(s doctorpkg.Status) string {
	switch s {
	case doctorpkg.Pass:
		return color.GreenString("ok")
	case doctorpkg.Warn:
		return color.YellowString("warn")
	default:
		return color.RedString("fail")
	}
}
