// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package current

import (
	"encoding/json"
	"fmt"
	"os"

	"dver.dev/x/dver/pkg/activesdk"
	"dver.dev/x/dver/pkg/dverconfig"
	"github.com/spf13/cobra"
)

func Cmd(config *dverconfig.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "current",
		Short: "show the effective sdk version",
		Long: `show the effective sdk version

	the effective version is the highest installed version satisfying the
	nearest global.json pin, or the highest installed version when no pin
	is in scope.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			version, pin, err := activesdk.Resolve(config, cwd)
			if err != nil {
				return err
			}

			switch output {
			case "text":
				cmd.Println(version.String())
			case "json":
				result := struct {
					Version string `json:"version"`
					PinPath string `json:"pinPath,omitempty"`
					PinSpec string `json:"pinSpec,omitempty"`
				}{Version: version.String()}
				if pin != nil {
					result.PinPath = pin.Path
					result.PinSpec = pin.Spec.String()
				}

				data, err := json.MarshalIndent(result, "", "    ")
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

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: json, text")
	return cmd
}
