package activesdk

import (
	"os"
	"path/filepath"
	"testing"

	"dver.dev/x/dver/pkg/dverconfig"
	"dver.dev/x/dver/pkg/pinfile"
	"dver.dev/x/dver/pkg/resolver"
	"dver.dev/x/dver/pkg/sdkversion"
	"dver.dev/x/dver/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installVersions(t *testing.T, installRoot string, versions ...string) {
	for _, v := range versions {
		require.NoError(t, os.MkdirAll(filepath.Join(installRoot, "sdk", v), 0755))
	}
}

func writePin(t *testing.T, dir, selector string) {
	spec, err := sdkversion.ParseSpec(selector)
	require.NoError(t, err)
	_, err = pinfile.Write(dir, spec)
	require.NoError(t, err)
}

func TestResolveHighestInstalledWithoutPin(t *testing.T) {
	config := testutil.TempConfig(t)
	installVersions(t, config.InstallRoot, "8.0.406", "9.0.100", "8.0.100")

	version, pin, err := Resolve(config, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "9.0.100", version.String())
	assert.Nil(t, pin)
}

func TestResolveHonorsPin(t *testing.T) {
	config := testutil.TempConfig(t)
	installVersions(t, config.InstallRoot, "8.0.100", "8.0.406", "9.0.100")

	dir := t.TempDir()
	writePin(t, dir, "8")

	version, pin, err := Resolve(config, dir)
	require.NoError(t, err)
	assert.Equal(t, "8.0.406", version.String())
	require.NotNil(t, pin)
	assert.Equal(t, "8", pin.Spec.String())
}

func TestResolvePinFromParentDirectory(t *testing.T) {
	config := testutil.TempConfig(t)
	installVersions(t, config.InstallRoot, "8.0.406", "9.0.100")

	parent := t.TempDir()
	writePin(t, parent, "8.0")
	child := filepath.Join(parent, "src", "app")
	require.NoError(t, os.MkdirAll(child, 0755))

	version, pin, err := Resolve(config, child)
	require.NoError(t, err)
	assert.Equal(t, "8.0.406", version.String())
	require.NotNil(t, pin)
	assert.Equal(t, filepath.Join(parent, pinfile.PinFileName), pin.Path)
}

func TestResolveEnvOverrideWinsOverPin(t *testing.T) {
	config := testutil.TempConfig(t)
	installVersions(t, config.InstallRoot, "8.0.406", "9.0.100")

	dir := t.TempDir()
	writePin(t, dir, "8")
	t.Setenv(dverconfig.SdkVersionEnvVar, "9.0.100")

	version, pin, err := Resolve(config, dir)
	require.NoError(t, err)
	assert.Equal(t, "9.0.100", version.String())
	assert.Nil(t, pin)
}

func TestResolveEnvOverrideNotInstalled(t *testing.T) {
	config := testutil.TempConfig(t)
	installVersions(t, config.InstallRoot, "8.0.406")

	t.Setenv(dverconfig.SdkVersionEnvVar, "9.0.100")

	_, _, err := Resolve(config, t.TempDir())
	assert.ErrorIs(t, err, resolver.ErrPinUnsatisfied)
}

func TestResolveEnvOverrideMalformed(t *testing.T) {
	config := testutil.TempConfig(t)
	installVersions(t, config.InstallRoot, "8.0.406")

	t.Setenv(dverconfig.SdkVersionEnvVar, "not-a-version")

	_, _, err := Resolve(config, t.TempDir())
	var resErr *resolver.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, resolver.InvalidVersionFormat, resErr.Code)
}

func TestResolveNothingInstalled(t *testing.T) {
	config := testutil.TempConfig(t)

	_, _, err := Resolve(config, t.TempDir())
	assert.ErrorIs(t, err, resolver.ErrNoSdkInstalled)
}

func TestResolveUnsatisfiedPin(t *testing.T) {
	config := testutil.TempConfig(t)
	installVersions(t, config.InstallRoot, "8.0.406")

	dir := t.TempDir()
	writePin(t, dir, "9")

	_, pin, err := Resolve(config, dir)
	assert.ErrorIs(t, err, resolver.ErrPinUnsatisfied)
	require.NotNil(t, pin)
	assert.Equal(t, "9", pin.Spec.String())
}
