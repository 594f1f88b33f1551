// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package activesdk assembles the snapshots the resolver needs and computes
// the effective sdk version for a directory.
package activesdk

import (
	"fmt"
	"os"

	"dver.dev/x/dver/pkg/dverconfig"
	"dver.dev/x/dver/pkg/pinfile"
	"dver.dev/x/dver/pkg/resolver"
	"dver.dev/x/dver/pkg/sdkdir"
	"dver.dev/x/dver/pkg/sdkversion"
	"github.com/Masterminds/semver/v3"
)

// Resolve returns the effective sdk version for dir. Precedence: the
// DVER_SDK_VERSION override, then the nearest global.json pin walking upward
// from dir, then the highest installed version. The returned pin is nil when
// resolution did not go through one.
func Resolve(config *dverconfig.Config, dir string) (*semver.Version, *pinfile.Pin, error) {
	installed, err := sdkdir.New(config.InstallRoot).Scan()
	if err != nil {
		return nil, nil, err
	}

	// DVER_SDK_VERSION override behaves like an exact pin
	if override, ok := os.LookupEnv(dverconfig.SdkVersionEnvVar); ok && override != "" {
		v, err := sdkversion.Parse(override)
		if err != nil {
			return nil, nil, resolver.NewInvalidVersionFormatError(
				fmt.Errorf("invalid %s value %q: %w", dverconfig.SdkVersionEnvVar, override, err))
		}
		spec := sdkversion.ExactSpec(v)
		current, err := resolver.Current(installed, &spec)
		return current, nil, err
	}

	pin, err := pinfile.Read(dir)
	if err != nil {
		return nil, nil, err
	}

	var pinSpec *sdkversion.Spec
	if pin != nil {
		pinSpec = &pin.Spec
	}

	current, err := resolver.Current(installed, pinSpec)
	if err != nil {
		return nil, pin, err
	}
	return current, pin, nil
}
