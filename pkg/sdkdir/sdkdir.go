// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package sdkdir

import (
	"os"
	"path/filepath"
	"slices"

	"dver.dev/x/dver/pkg/sdkversion"
	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
)

// Repository enumerates the sdk versions installed under an install root.
// Each installed version is a directory named after it under <root>/sdk.
type Repository struct {
	Root string
}

func New(root string) *Repository {
	return &Repository{Root: root}
}

func (r *Repository) SdkPath() string {
	return filepath.Join(r.Root, "sdk")
}

// VersionPath is the directory holding the given installed version.
func (r *Repository) VersionPath(v *semver.Version) string {
	return filepath.Join(r.SdkPath(), v.String())
}

// Scan reads the install root and returns the installed versions sorted
// ascending and deduplicated. A missing root is an empty set, not an error.
// Entries that are not version-named directories are skipped. A scan racing
// a concurrent install may observe a partially written directory; callers
// get whatever was on disk at read time.
func (r *Repository) Scan() ([]*semver.Version, error) {
	entries, err := os.ReadDir(r.SdkPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	versions := lo.FilterMap(entries, func(e os.DirEntry, _ int) (*semver.Version, bool) {
		if !e.IsDir() {
			return nil, false
		}
		v, err := sdkversion.Parse(e.Name())
		if err != nil {
			return nil, false
		}
		return v, true
	})

	versions = lo.UniqBy(versions, func(v *semver.Version) string {
		return v.String()
	})
	slices.SortFunc(versions, sdkversion.Compare)

	return versions, nil
}
