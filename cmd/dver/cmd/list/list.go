// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package list

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"dver.dev/x/dver/pkg/activesdk"
	"dver.dev/x/dver/pkg/dverconfig"
	"dver.dev/x/dver/pkg/resolver"
	"dver.dev/x/dver/pkg/sdkdir"
	"dver.dev/x/dver/pkg/versions"
	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

func Cmd(config *dverconfig.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list installed sdk versions",
		Long: `list installed sdk versions

	the active version is marked with an asterisk. A pin that no installed
	version satisfies leaves the listing without an active marker.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			installed, err := sdkdir.New(config.InstallRoot).Scan()
			if err != nil {
				return err
			}

			if len(installed) == 0 {
				cmd.Println("no sdks installed. run 'dver install --lts' to get started.")
				return nil
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			var active *semver.Version
			v, _, err := activesdk.Resolve(config, cwd)
			if err == nil {
				active = v
			} else if !errors.Is(err, resolver.ErrPinUnsatisfied) {
				return err
			}

			rows := versions.NewInstalled(active, installed)

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

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: json, table")
	return cmd
}
