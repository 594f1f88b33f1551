// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package dverconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"dver.dev/x/dver/pkg/buildversion"
	"dver.dev/x/dver/pkg/utils"
	"github.com/goccy/go-yaml"
)

type Config struct {
	DverHomePath string `yaml:"-"`

	// dir downloaded archives are staged in before unpacking
	DownloadsPath string `yaml:"-"`

	InstallLockFilePath string `yaml:"-"`

	// InstallRoot is the directory sdks live under, <root>/sdk/<version>
	InstallRoot string `yaml:"install-root,omitempty"`

	CatalogURL string `yaml:"catalog-url,omitempty"`

	NetrcPath string `yaml:"netrc-path,omitempty"`
}

func (c *Config) EnsureDirs() error {
	return utils.EnsureDirs(c.DverHomePath, c.DownloadsPath)
}

func Get() (*Config, error) {
	dverHomePath, err := getDverHomePath()
	if err != nil {
		return nil, err
	}
	return GetWithCustomDverHome(dverHomePath)
}

func GetWithCustomDverHome(dverHomePath string) (*Config, error) {
	config := Config{}

	// dver-config.yaml is optional
	configFilePath := filepath.Join(dverHomePath, DverConfigFileName)
	fileInfo, err := os.Stat(configFilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		if fileInfo.IsDir() {
			return nil, fmt.Errorf("%q is directory and not a file", configFilePath)
		}

		bytes, err := os.ReadFile(configFilePath)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(bytes, &config); err != nil {
			return nil, err
		}
	}

	if installRoot, ok := os.LookupEnv(InstallRootEnvVar); ok {
		config.InstallRoot = installRoot
	}
	if config.InstallRoot == "" {
		home, ok := homeDir()
		if !ok {
			return nil, fmt.Errorf("cannot determine the default install root: home directory is not set")
		}
		config.InstallRoot = filepath.Join(home, ".dotnet")
	}

	if catalogURL, ok := os.LookupEnv(CatalogURLEnvVar); ok {
		config.CatalogURL = catalogURL
	}
	if config.CatalogURL == "" {
		config.CatalogURL = DefaultCatalogURL
	}

	if netrcPath, ok := os.LookupEnv(NetrcPathEnvVar); ok {
		config.NetrcPath = netrcPath
	}
	if config.NetrcPath == "" {
		if home, ok := homeDir(); ok {
			config.NetrcPath = filepath.Join(home, ".netrc")
		}
	}

	config.DverHomePath = dverHomePath
	config.DownloadsPath = filepath.Join(dverHomePath, "downloads")
	config.InstallLockFilePath = filepath.Join(config.InstallRoot, "sdk", ".lock")
	return &config, nil
}

func getDverHomePath() (string, error) {
	if v, ok := os.LookupEnv(DverHomeEnvVar); ok {
		return v, nil
	}

	return getAppUserDataDirectory("dver")
}

func getAppUserDataDirectory(appName string) (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir, ok := os.LookupEnv("APPDATA")
		if !ok {
			return "", fmt.Errorf("APPDATA environment variable is not set")
		}
		return filepath.Join(dir, appName), nil
	default:
		dir, ok := os.LookupEnv("HOME")
		if !ok {
			return "", fmt.Errorf("HOME environment variable is not set")
		}
		return filepath.Join(dir, "."+appName), nil
	}
}

func homeDir() (string, bool) {
	if runtime.GOOS == "windows" {
		return os.LookupEnv("USERPROFILE")
	}
	return os.LookupEnv("HOME")
}

func GetUserAgent() string {
	return fmt.Sprintf("%s/%s", UserAgentPrefix, buildversion.GetVersion())
}
