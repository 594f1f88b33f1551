// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package dverconfig

const envVarPrefix = "DVER_"

const (
	// DverHomeEnvVar
	// DVER_HOME is the absolute path to the `dver` home directory
	// holding dver-config.yaml and downloaded archives.
	DverHomeEnvVar = envVarPrefix + "HOME"

	// InstallRootEnvVar
	// DVER_INSTALL_ROOT overrides the directory sdks are installed under.
	// 	Default: ~/.dotnet
	InstallRootEnvVar = envVarPrefix + "INSTALL_ROOT"

	// CatalogURLEnvVar
	// DVER_CATALOG_URL overrides the release metadata index the remote and
	// install commands consult. Enterprises pointing at a mirror set this.
	CatalogURLEnvVar = envVarPrefix + "CATALOG_URL"

	// NetrcPathEnvVar
	// DVER_NETRC overrides the netrc file used to authenticate against a
	// non-default catalog host.
	// 	Default: ~/.netrc
	NetrcPathEnvVar = envVarPrefix + "NETRC"

	// LogLevelEnvVar
	// DVER_LOG_LEVEL sets the log level.
	// 	Default: info
	//  Possible values: info error warn debug
	LogLevelEnvVar = envVarPrefix + "LOG_LEVEL"

	// SdkVersionEnvVar
	// DVER_SDK_VERSION overrides the resolved sdk version. It is a global
	// override that wins over any global.json pin.
	// (It doesn't affect the `install` command(s))
	SdkVersionEnvVar = envVarPrefix + "SDK_VERSION"
)
