// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"

	"dver.dev/x/dver/cmd/dver/cmd/current"
	"dver.dev/x/dver/cmd/dver/cmd/doctor"
	"dver.dev/x/dver/cmd/dver/cmd/install"
	"dver.dev/x/dver/cmd/dver/cmd/list"
	"dver.dev/x/dver/cmd/dver/cmd/remote"
	"dver.dev/x/dver/cmd/dver/cmd/uninstall"
	"dver.dev/x/dver/cmd/dver/cmd/use"
	"dver.dev/x/dver/pkg/buildversion"
	doctorpkg "dver.dev/x/dver/pkg/doctor"
	"dver.dev/x/dver/pkg/dverconfig"
	"dver.dev/x/dver/pkg/logging"
	"dver.dev/x/dver/pkg/resolver"
	"dver.dev/x/dver/pkg/sdkversion"
	"github.com/spf13/cobra"
)

const DverName = "dver"

// Exit codes of the dver binary.
const (
	ExitOK              = 0
	ExitResolutionError = 1
	ExitIOError         = 2
)

func RootCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     DverName,
		Short:   "manage .NET sdk versions",
		Version: buildversion.GetVersion(),
	}

	if err := logging.InitLogging(); err != nil {
		return nil, err
	}

	config, err := dverconfig.Get()
	if err != nil {
		return nil, err
	}
	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	cmd.AddCommand(
		current.Cmd(config),
		list.Cmd(config),
		use.Cmd(config),
		install.Cmd(config),
		uninstall.Cmd(config),
		remote.Cmd(config),
		doctor.Cmd(config),
	)

	return cmd, nil
}

// ExitCode classifies a command error: resolution and validation failures
// exit 1, installer and filesystem failures exit 2.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var resErr *resolver.ResolutionError
	switch {
	case errors.As(err, &resErr),
		errors.Is(err, sdkversion.ErrInvalidVersionFormat),
		errors.Is(err, resolver.ErrNoSdkInstalled),
		errors.Is(err, resolver.ErrPinUnsatisfied),
		errors.Is(err, resolver.ErrNoLtsAvailable),
		errors.Is(err, doctorpkg.ErrChecksFailed):
		return ExitResolutionError
	}

	return ExitIOError
}
