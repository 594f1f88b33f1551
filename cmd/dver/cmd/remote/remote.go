// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"encoding/json"
	"fmt"

	"dver.dev/x/dver/pkg/dverconfig"
	"dver.dev/x/dver/pkg/releasecatalog"
	"dver.dev/x/dver/pkg/sdkdir"
	"dver.dev/x/dver/pkg/sdkversion"
	"dver.dev/x/dver/pkg/versions"
	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

func Cmd(config *dverconfig.Config) *cobra.Command {
	var lts bool
	var output string

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "list sdk versions available in the release catalog",
		Long: `list sdk versions available in the release catalog

	shows each channel's latest sdk with its release-type tag. Versions
	already present locally are marked as installed.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			catalog := releasecatalog.NewFromConfig(config)

			channels, err := catalog.Channels(cmd.Context())
			if err != nil {
				return err
			}

			remote := map[*semver.Version][]string{}
			for _, ch := range channels {
				if lts && !ch.IsLts() {
					continue
				}
				v, err := sdkversion.Parse(ch.LatestSdk)
				if err != nil {
					continue
				}
				tags := []string{ch.ReleaseType}
				if ch.SupportPhase != "" {
					tags = append(tags, ch.SupportPhase)
				}
				remote[v] = tags
			}

			installed, err := sdkdir.New(config.InstallRoot).Scan()
			if err != nil {
				return err
			}

			rows := versions.NewRemote(remote, installed)

			switch output {
			case "table":
				cmd.Println(rows.Table())
			case "json":
				data, err := json.MarshalIndent(rows, "", "    ")
				if err != nil {
					return err
				}
				cmd.Println(string(data))
			default:
				return fmt.Errorf("output format not supported: %s", output)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&lts, "lts", false, "show LTS channels only")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: json, table")
	return cmd
}
