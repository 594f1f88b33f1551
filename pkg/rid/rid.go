// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package rid maps the running platform to the runtime identifier used by
// the .NET release metadata to name sdk archives.
package rid

import (
	"fmt"
	"runtime"
)

var goosNames = map[string]string{
	"linux":   "linux",
	"darwin":  "osx",
	"windows": "win",
}

var goarchNames = map[string]string{
	"amd64": "x64",
	"arm64": "arm64",
	"386":   "x86",
	"arm":   "arm",
}

func Current() (string, error) {
	return For(runtime.GOOS, runtime.GOARCH)
}

func For(goos, goarch string) (string, error) {
	os, ok := goosNames[goos]
	if !ok {
		return "", fmt.Errorf("no runtime identifier for OS %q", goos)
	}
	arch, ok := goarchNames[goarch]
	if !ok {
		return "", fmt.Errorf("no runtime identifier for architecture %q", goarch)
	}
	return os + "-" + arch, nil
}

// ArchiveExt is the archive format sdks ship in on the current platform.
func ArchiveExt() string {
	if runtime.GOOS == "windows" {
		return ".zip"
	}
	return ".tar.gz"
}
