// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"context"
	"testing"

	"dver.dev/x/dver/pkg/dverconfig"
	"github.com/stretchr/testify/require"
)

func Context(t *testing.T) context.Context {
	ctx, stopFn := context.WithCancel(context.Background())
	t.Cleanup(stopFn)
	return ctx
}

// TempConfig builds a config rooted in throwaway temp dirs, so tests never
// touch the user's real dver home or install root.
func TempConfig(t *testing.T) *dverconfig.Config {
	home := t.TempDir()
	installRoot := t.TempDir()

	t.Setenv(dverconfig.DverHomeEnvVar, home)
	t.Setenv(dverconfig.InstallRootEnvVar, installRoot)

	config, err := dverconfig.GetWithCustomDverHome(home)
	require.NoError(t, err)
	return config
}
