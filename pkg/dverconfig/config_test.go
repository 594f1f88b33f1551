package dverconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Setenv(DverHomeEnvVar, "")
	os.Unsetenv(DverHomeEnvVar)
	t.Setenv(InstallRootEnvVar, "")
	os.Unsetenv(InstallRootEnvVar)
	t.Setenv(CatalogURLEnvVar, "")
	os.Unsetenv(CatalogURLEnvVar)
	t.Setenv(NetrcPathEnvVar, "")
	os.Unsetenv(NetrcPathEnvVar)
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	config, err := GetWithCustomDverHome(filepath.Join(home, ".dver"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".dotnet"), config.InstallRoot)
	assert.Equal(t, DefaultCatalogURL, config.CatalogURL)
	assert.Equal(t, filepath.Join(home, ".netrc"), config.NetrcPath)
	assert.Equal(t, filepath.Join(home, ".dver", "downloads"), config.DownloadsPath)
	assert.Equal(t, filepath.Join(home, ".dotnet", "sdk", ".lock"), config.InstallLockFilePath)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	installRoot := t.TempDir()
	t.Setenv(InstallRootEnvVar, installRoot)
	t.Setenv(CatalogURLEnvVar, "https://mirror.example.com/releases-index.json")
	t.Setenv(NetrcPathEnvVar, "/etc/dver/netrc")

	config, err := GetWithCustomDverHome(filepath.Join(home, ".dver"))
	require.NoError(t, err)

	assert.Equal(t, installRoot, config.InstallRoot)
	assert.Equal(t, "https://mirror.example.com/releases-index.json", config.CatalogURL)
	assert.Equal(t, "/etc/dver/netrc", config.NetrcPath)
	assert.Equal(t, filepath.Join(installRoot, "sdk", ".lock"), config.InstallLockFilePath)
}

func TestConfigFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	dverHome := filepath.Join(home, ".dver")
	require.NoError(t, os.MkdirAll(dverHome, 0755))

	contents := strings.Join([]string{
		"install-root: /opt/dotnet",
		"catalog-url: https://mirror.example.com/releases-index.json",
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dverHome, DverConfigFileName), []byte(contents), 0644))

	config, err := GetWithCustomDverHome(dverHome)
	require.NoError(t, err)

	assert.Equal(t, "/opt/dotnet", config.InstallRoot)
	assert.Equal(t, "https://mirror.example.com/releases-index.json", config.CatalogURL)
}

func TestEnvVarWinsOverConfigFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	dverHome := filepath.Join(home, ".dver")
	require.NoError(t, os.MkdirAll(dverHome, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dverHome, DverConfigFileName),
		[]byte("install-root: /opt/dotnet\n"), 0644))

	installRoot := t.TempDir()
	t.Setenv(InstallRootEnvVar, installRoot)

	config, err := GetWithCustomDverHome(dverHome)
	require.NoError(t, err)
	assert.Equal(t, installRoot, config.InstallRoot)
}

func TestConfigFilePathIsADirectory(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	dverHome := filepath.Join(home, ".dver")
	require.NoError(t, os.MkdirAll(filepath.Join(dverHome, DverConfigFileName), 0755))

	_, err := GetWithCustomDverHome(dverHome)
	assert.ErrorContains(t, err, "is directory and not a file")
}

func TestGetHonorsDverHomeEnvVar(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	dverHome := t.TempDir()
	t.Setenv(DverHomeEnvVar, dverHome)

	config, err := Get()
	require.NoError(t, err)
	assert.Equal(t, dverHome, config.DverHomePath)
}

func TestGetUserAgent(t *testing.T) {
	assert.True(t, strings.HasPrefix(GetUserAgent(), UserAgentPrefix+"/"))
}
