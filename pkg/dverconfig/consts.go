// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package dverconfig

const (
	DverConfigFileName = "dver-config.yaml"

	// DefaultCatalogURL is the public release metadata index for .NET.
	DefaultCatalogURL = "https://dotnetcli.blob.core.windows.net/dotnet/release-metadata/releases-index.json"

	UserAgentPrefix = "dver"
)
