// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	dver "dver.dev/x/dver/cmd/dver/cmd"
	"dver.dev/x/dver/pkg/resolver"
)

func main() {
	ctx, cancelFn := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancelFn()

	cmd, err := dver.RootCmd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(dver.ExitIOError)
	}

	if err := cmd.ExecuteContext(ctx); err != nil {
		var resErr *resolver.ResolutionError
		if errors.As(err, &resErr) && resErr.Hint != "" {
			fmt.Fprintln(os.Stderr, "hint: "+resErr.Hint)
		}
		os.Exit(dver.ExitCode(err))
	}
}
