// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resolver decides which sdk version is effective given an installed
// set and an optional pin, and which installed versions a selector targets.
// It is pure: callers pass in snapshots, installation and removal are the
// installer's business.
package resolver

import (
	"fmt"
	"iter"

	"dver.dev/x/dver/pkg/sdkversion"
	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
)

// Current picks the effective sdk version. With a pin it is the highest
// installed version satisfying the pin; without, the highest installed
// overall. An empty installed set is NO_SDK_INSTALLED regardless of the pin.
func Current(installed []*semver.Version, pin *sdkversion.Spec) (*semver.Version, error) {
	if len(installed) == 0 {
		return nil, NewNoSdkInstalledError(ErrNoSdkInstalled)
	}

	candidates := installed
	if pin != nil {
		candidates = lo.Filter(installed, func(v *semver.Version, _ int) bool {
			return pin.Matches(v)
		})
		if len(candidates) == 0 {
			return nil, NewPinUnsatisfiedError(
				fmt.Errorf("%w: pin %q", ErrPinUnsatisfied, pin.String()))
		}
	}

	return highest(candidates), nil
}

// Lts picks the version to install for the LTS channel. ltsLatest yields the
// latest sdk version of each LTS channel, highest channel first; the first
// yielded version wins. The installed set plays no part here, idempotence
// checks against it belong to the caller.
func Lts(ltsLatest iter.Seq[*semver.Version]) (*semver.Version, error) {
	for v := range ltsLatest {
		if v != nil {
			return v, nil
		}
	}
	return nil, NewNoLtsAvailableError(ErrNoLtsAvailable)
}

// MatchForUninstall returns the installed versions the selector targets.
// An empty result is a valid no-op, never an error.
func MatchForUninstall(installed []*semver.Version, spec sdkversion.Spec) []*semver.Version {
	return lo.Filter(installed, func(v *semver.Version, _ int) bool {
		return spec.Matches(v)
	})
}

func highest(versions []*semver.Version) *semver.Version {
	return lo.MaxBy(versions, func(a, b *semver.Version) bool {
		return sdkversion.Compare(a, b) > 0
	})
}
