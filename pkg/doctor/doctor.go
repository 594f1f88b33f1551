// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package doctor runs the environment checks behind `dver doctor`.
package doctor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"dver.dev/x/dver/pkg/dverconfig"
	"dver.dev/x/dver/pkg/pinfile"
	"dver.dev/x/dver/pkg/resolver"
	"dver.dev/x/dver/pkg/sdkdir"
	"dver.dev/x/dver/pkg/utils"
	"github.com/samber/lo"
)

// ErrChecksFailed reports that at least one check failed. It classifies as a
// resolution-style failure, exit code 1 rather than 2.
var ErrChecksFailed = fmt.Errorf("doctor found problems")

type Status int

const (
	Pass Status = iota
	Warn
	Fail
)

type CheckResult struct {
	Name   string
	Status Status
	Detail string
}

type Doctor struct {
	config *dverconfig.Config

	// seams for tests
	lookPath func(string) (string, error)
	getenv   func(string) string
}

func New(config *dverconfig.Config) *Doctor {
	return &Doctor{
		config:   config,
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
	}
}

// Run executes every check. dir scopes the pin check, normally the working
// directory of the invocation.
func (d *Doctor) Run(dir string) []CheckResult {
	return []CheckResult{
		d.checkInstallRoot(),
		d.checkDotnetBinary(),
		d.checkPathVar(),
		d.checkPin(dir),
	}
}

func HasFailure(results []CheckResult) bool {
	return lo.SomeBy(results, func(r CheckResult) bool {
		return r.Status == Fail
	})
}

func (d *Doctor) checkInstallRoot() CheckResult {
	name := "install root"

	exists, err := utils.DirExists(d.config.InstallRoot)
	if err != nil {
		return CheckResult{Name: name, Status: Fail, Detail: err.Error()}
	}
	if !exists {
		return CheckResult{
			Name:   name,
			Status: Warn,
			Detail: fmt.Sprintf("%s does not exist yet, 'dver install' will create it", d.config.InstallRoot),
		}
	}
	return CheckResult{Name: name, Status: Pass, Detail: d.config.InstallRoot}
}

func (d *Doctor) checkDotnetBinary() CheckResult {
	name := "dotnet binary"

	path, err := d.lookPath("dotnet")
	if err != nil {
		return CheckResult{
			Name:   name,
			Status: Fail,
			Detail: "dotnet not found on PATH",
		}
	}
	return CheckResult{Name: name, Status: Pass, Detail: path}
}

func (d *Doctor) checkPathVar() CheckResult {
	name := "PATH"

	entries := strings.Split(d.getenv("PATH"), string(os.PathListSeparator))
	onPath := lo.SomeBy(entries, func(p string) bool {
		return p != "" && filepath.Clean(p) == filepath.Clean(d.config.InstallRoot)
	})
	if !onPath {
		return CheckResult{
			Name:   name,
			Status: Warn,
			Detail: fmt.Sprintf("install root %s is not on PATH", d.config.InstallRoot),
		}
	}
	return CheckResult{Name: name, Status: Pass, Detail: "install root is on PATH"}
}

func (d *Doctor) checkPin(dir string) CheckResult {
	name := "pin"

	pin, err := pinfile.Read(dir)
	if err != nil {
		return CheckResult{Name: name, Status: Fail, Detail: err.Error()}
	}
	if pin == nil {
		return CheckResult{Name: name, Status: Pass, Detail: "no global.json pin in scope"}
	}

	installed, err := sdkdir.New(d.config.InstallRoot).Scan()
	if err != nil {
		return CheckResult{Name: name, Status: Fail, Detail: err.Error()}
	}

	current, err := resolver.Current(installed, &pin.Spec)
	if errors.Is(err, resolver.ErrPinUnsatisfied) || errors.Is(err, resolver.ErrNoSdkInstalled) {
		return CheckResult{
			Name:   name,
			Status: Fail,
			Detail: fmt.Sprintf("pin %q in %s has no installed sdk, run 'dver install --version %s'", pin.Spec.String(), pin.Path, pin.Spec.String()),
		}
	} else if err != nil {
		return CheckResult{Name: name, Status: Fail, Detail: err.Error()}
	}

	return CheckResult{
		Name:   name,
		Status: Pass,
		Detail: fmt.Sprintf("pin %q resolves to %s", pin.Spec.String(), current.String()),
	}
}
