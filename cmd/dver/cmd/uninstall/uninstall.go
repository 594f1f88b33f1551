// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package uninstall

import (
	"errors"
	"fmt"
	"os"

	"dver.dev/x/dver/pkg/activesdk"
	"dver.dev/x/dver/pkg/dverconfig"
	"dver.dev/x/dver/pkg/releasecatalog"
	"dver.dev/x/dver/pkg/resolver"
	"dver.dev/x/dver/pkg/sdkdir"
	"dver.dev/x/dver/pkg/sdkinstall"
	"dver.dev/x/dver/pkg/sdkversion"
	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

func Cmd(config *dverconfig.Config) *cobra.Command {
	var all, force bool

	cmd := &cobra.Command{
		Use:   "uninstall (<version or major> | --all)",
		Short: "uninstall sdk versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := parseSelector(args, all)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			installed, err := sdkdir.New(config.InstallRoot).Scan()
			if err != nil {
				return err
			}

			targets := resolver.MatchForUninstall(installed, spec)
			if len(targets) == 0 {
				cmd.Println("no matching sdks found, nothing to remove")
				return nil
			}

			activeGuard, err := activeVersionGuard(config, force)
			if err != nil {
				return err
			}

			installer := sdkinstall.New(config, releasecatalog.NewFromConfig(config))
			for _, target := range targets {
				if err := installer.Uninstall(cmd.Context(), target, activeGuard); err != nil {
					return err
				}
				cmd.Println("removed " + target.String())
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "remove every installed sdk")
	cmd.Flags().BoolVar(&force, "force", false, "remove the active version too")
	return cmd
}

func parseSelector(args []string, all bool) (sdkversion.Spec, error) {
	if all {
		if len(args) != 0 {
			return sdkversion.Spec{}, resolver.NewInvalidArgumentsError(
				fmt.Errorf("--all takes no version argument"))
		}
		return sdkversion.AllSpec(), nil
	}

	if len(args) != 1 {
		return sdkversion.Spec{}, resolver.NewInvalidArgumentsError(
			fmt.Errorf("expected a single argument <version or major>, or --all"))
	}

	spec, err := sdkversion.ParseSpec(args[0])
	if err != nil {
		return sdkversion.Spec{}, resolver.NewInvalidVersionFormatError(err)
	}
	return spec, nil
}

// activeVersionGuard resolves the version protected from removal, nil when
// --force is given or nothing resolves.
func activeVersionGuard(config *dverconfig.Config, force bool) (*semver.Version, error) {
	if force {
		return nil, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	active, _, err := activesdk.Resolve(config, cwd)
	if errors.Is(err, resolver.ErrNoSdkInstalled) || errors.Is(err, resolver.ErrPinUnsatisfied) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return active, nil
}
