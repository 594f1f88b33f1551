// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package sdkversion

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SpecKind discriminates the closed set of selector shapes a user can supply.
type SpecKind int

const (
	SpecExact SpecKind = iota
	SpecMajor
	SpecMajorMinor
	SpecLts
	SpecAll
)

// Spec is the user-supplied version selector: an exact version, a major or
// major.minor prefix, the LTS channel, or the full installed set.
type Spec struct {
	Kind  SpecKind
	Major uint64
	Minor uint64
	Exact *semver.Version
}

func ExactSpec(v *semver.Version) Spec {
	return Spec{Kind: SpecExact, Exact: v, Major: v.Major(), Minor: v.Minor()}
}

func MajorSpec(major uint64) Spec {
	return Spec{Kind: SpecMajor, Major: major}
}

func MajorMinorSpec(major, minor uint64) Spec {
	return Spec{Kind: SpecMajorMinor, Major: major, Minor: minor}
}

func LtsSpec() Spec {
	return Spec{Kind: SpecLts}
}

func AllSpec() Spec {
	return Spec{Kind: SpecAll}
}

// ParseSpec reads a selector from CLI text. A single numeric segment is a
// major selector, two segments a major.minor selector, anything else (three
// segments, or any pre-release label) must parse as an exact version.
func ParseSpec(text string) (Spec, error) {
	numeric, _, labeled := strings.Cut(text, "-")
	segments := strings.Split(numeric, ".")

	if !labeled {
		switch len(segments) {
		case 1:
			major, err := parseSegment(segments[0])
			if err != nil {
				return Spec{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersionFormat, text, err)
			}
			return MajorSpec(major), nil
		case 2:
			major, err := parseSegment(segments[0])
			if err != nil {
				return Spec{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersionFormat, text, err)
			}
			minor, err := parseSegment(segments[1])
			if err != nil {
				return Spec{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersionFormat, text, err)
			}
			return MajorMinorSpec(major, minor), nil
		}
	}

	v, err := Parse(text)
	if err != nil {
		return Spec{}, err
	}
	return ExactSpec(v), nil
}

// Matches reports whether an installed version satisfies the selector.
// The LTS arm never matches directly: LTS selection goes through the release
// catalog, not the installed set.
func (s Spec) Matches(v *semver.Version) bool {
	switch s.Kind {
	case SpecExact:
		return v.Equal(s.Exact)
	case SpecMajor:
		return v.Major() == s.Major
	case SpecMajorMinor:
		return v.Major() == s.Major && v.Minor() == s.Minor
	case SpecLts:
		return false
	case SpecAll:
		return true
	default:
		panic(fmt.Sprintf("unhandled spec kind %d", s.Kind))
	}
}

// String renders the selector the way it is written into a pin file.
func (s Spec) String() string {
	switch s.Kind {
	case SpecExact:
		return s.Exact.String()
	case SpecMajor:
		return fmt.Sprintf("%d", s.Major)
	case SpecMajorMinor:
		return fmt.Sprintf("%d.%d", s.Major, s.Minor)
	case SpecLts:
		return "lts"
	case SpecAll:
		return "all"
	default:
		panic(fmt.Sprintf("unhandled spec kind %d", s.Kind))
	}
}
