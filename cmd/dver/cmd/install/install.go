// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"dver.dev/x/dver/pkg/dverconfig"
	"dver.dev/x/dver/pkg/releasecatalog"
	"dver.dev/x/dver/pkg/resolver"
	"dver.dev/x/dver/pkg/sdkdir"
	"dver.dev/x/dver/pkg/sdkinstall"
	"dver.dev/x/dver/pkg/sdkversion"
	"dver.dev/x/dver/pkg/utils"
	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func Cmd(config *dverconfig.Config) *cobra.Command {
	var versionStr, installPath string
	var lts, force bool

	cmd := &cobra.Command{
		Use:   "install (--version <version> | --lts)",
		Short: "install an sdk version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if lts && versionStr != "" {
				return resolver.NewInvalidArgumentsError(
					fmt.Errorf("--version and --lts are mutually exclusive"))
			}
			if !lts && versionStr == "" {
				return resolver.NewInvalidArgumentsError(
					fmt.Errorf("one of --version or --lts is required"))
			}
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			if installPath != "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				config.InstallRoot = utils.ResolvePath(cwd, installPath)
				config.InstallLockFilePath = filepath.Join(config.InstallRoot, "sdk", ".lock")
			}

			catalog := releasecatalog.NewFromConfig(config)

			target, err := resolveTarget(ctx, catalog, versionStr, lts)
			if err != nil {
				return err
			}
			cmd.Printf("resolved to %s\n", target.String())

			installed, err := sdkdir.New(config.InstallRoot).Scan()
			if err != nil {
				return err
			}
			alreadyInstalled := lo.ContainsBy(installed, func(v *semver.Version) bool {
				return v.Equal(target)
			})
			if alreadyInstalled && !force {
				cmd.Printf("sdk %s is already installed\n", target.String())
				return nil
			}

			if err := sdkinstall.New(config, catalog).Install(ctx, target); err != nil {
				return err
			}

			cmd.Println("Successfully installed sdk " + target.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&versionStr, "version", "v", "", "exact sdk version to install")
	cmd.Flags().BoolVar(&lts, "lts", false, "install the latest sdk of the highest LTS channel")
	cmd.Flags().StringVar(&installPath, "install-path", "", "install root to use instead of the configured one")
	cmd.Flags().BoolVar(&force, "force", false, "reinstall even when the version is already present")
	return cmd
}

func resolveTarget(ctx context.Context, catalog *releasecatalog.Client, versionStr string, lts bool) (*semver.Version, error) {
	if lts {
		channels, err := catalog.LtsChannels(ctx)
		if err != nil {
			return nil, err
		}
		return resolver.Lts(latestSdks(channels))
	}

	target, err := sdkversion.Parse(versionStr)
	if err != nil {
		return nil, resolver.NewInvalidVersionFormatError(err)
	}
	return target, nil
}

// latestSdks yields each channel's latest sdk version in catalog order,
// skipping channels with unparsable metadata.
func latestSdks(channels []releasecatalog.Channel) func(yield func(*semver.Version) bool) {
	return func(yield func(*semver.Version) bool) {
		for _, ch := range channels {
			v, err := sdkversion.Parse(ch.LatestSdk)
			if err != nil {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}
