// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package sdkversion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var ErrInvalidVersionFormat = fmt.Errorf("invalid sdk version format")

// Parse reads an sdk version: one to three dotted numeric segments with an
// optional -label suffix, e.g. "8", "8.0", "8.0.406", "9.0.100-preview.7".
// Missing minor/patch segments default to zero.
func Parse(text string) (*semver.Version, error) {
	numeric, label, _ := strings.Cut(text, "-")

	segments := strings.Split(numeric, ".")
	if len(segments) > 3 {
		return nil, fmt.Errorf("%w: %q has more than 3 numeric segments", ErrInvalidVersionFormat, text)
	}

	parts := [3]uint64{}
	for i, s := range segments {
		n, err := parseSegment(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidVersionFormat, text, err)
		}
		parts[i] = n
	}

	return semver.New(parts[0], parts[1], parts[2], label, ""), nil
}

func parseSegment(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty segment")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric segment %q", s)
	}
	return n, nil
}

// Compare orders sdk versions by semver precedence: major, minor, patch,
// then pre-release rules (a release is greater than any of its pre-releases).
func Compare(a, b *semver.Version) int {
	return a.Compare(b)
}
