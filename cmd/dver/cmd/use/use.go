// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package use

import (
	"errors"
	"fmt"
	"os"

	"dver.dev/x/dver/pkg/dverconfig"
	"dver.dev/x/dver/pkg/pinfile"
	"dver.dev/x/dver/pkg/resolver"
	"dver.dev/x/dver/pkg/sdkdir"
	"dver.dev/x/dver/pkg/sdkversion"
	"github.com/spf13/cobra"
)

func Cmd(config *dverconfig.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <version or major[.minor]>",
		Short: "pin an sdk version via global.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return resolver.NewInvalidArgumentsError(
					fmt.Errorf("expected a single argument <version or major[.minor]>"))
			}
			cmd.SilenceUsage = true

			spec, err := sdkversion.ParseSpec(args[0])
			if err != nil {
				return resolver.NewInvalidVersionFormatError(err)
			}

			installed, err := sdkdir.New(config.InstallRoot).Scan()
			if err != nil {
				return err
			}

			// an unsatisfiable pin is still written: the user may install next
			if _, err := resolver.Current(installed, &spec); err != nil {
				if errors.Is(err, resolver.ErrPinUnsatisfied) || errors.Is(err, resolver.ErrNoSdkInstalled) {
					cmd.PrintErrf("warning: no installed sdk satisfies %q, run 'dver install --version %s'\n", spec.String(), spec.String())
				} else {
					return err
				}
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			path, err := pinfile.Write(cwd, spec)
			if err != nil {
				return err
			}

			cmd.Printf("sdk version pinned to %s in %s\n", spec.String(), path)
			return nil
		},
	}

	return cmd
}
