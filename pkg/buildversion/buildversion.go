// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package buildversion

// To be populated at build-time, e.g.:
// go build -ldflags "-X 'dver.dev/x/dver/pkg/buildversion.Version=1.2.3'"
var (
	Version   string
	Build     string
	BuildDate string
)

type VersionInfo struct {
	Version   string `json:"version"`
	Build     string `json:"build"`
	BuildDate string `json:"buildDate"`
}

func defaultUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func Get() VersionInfo {
	return VersionInfo{
		Version:   defaultUnknown(Version),
		Build:     defaultUnknown(Build),
		BuildDate: defaultUnknown(BuildDate),
	}
}

func GetVersion() string {
	return defaultUnknown(Version)
}
