// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"errors"
	"fmt"
)

var (
	ErrNoSdkInstalled = fmt.Errorf("no sdk installed")
	ErrPinUnsatisfied = fmt.Errorf("no installed sdk satisfies the pinned version")
	ErrNoLtsAvailable = fmt.Errorf("no lts channel available in the release catalog")
)

const (
	NoSdkInstalled       = "NO_SDK_INSTALLED"
	PinUnsatisfied       = "PIN_UNSATISFIED"
	NoLtsAvailable       = "NO_LTS_AVAILABLE"
	InvalidVersionFormat = "INVALID_VERSION_FORMAT"
	InvalidArguments     = "INVALID_ARGUMENTS"
	UnknownError         = "UNKNOWN_ERROR"
)

// ResolutionError carries a machine-readable code alongside the cause, plus
// a remedial command the CLI suggests to the user.
type ResolutionError struct {
	Code  string `json:"code"`
	Cause error  `json:"-"`
	Hint  string `json:"hint,omitempty"`
}

func (r *ResolutionError) Error() string {
	if r.Cause != nil {
		return r.Code + ": " + r.Cause.Error()
	}
	return r.Code
}

func (r *ResolutionError) Unwrap() error {
	return r.Cause
}

var _ error = (*ResolutionError)(nil)

func NewNoSdkInstalledError(cause error) *ResolutionError {
	return &ResolutionError{
		Code:  NoSdkInstalled,
		Cause: cause,
		Hint:  "run 'dver install --lts'",
	}
}

func NewPinUnsatisfiedError(cause error) *ResolutionError {
	return &ResolutionError{
		Code:  PinUnsatisfied,
		Cause: cause,
		Hint:  "run 'dver install --version <pinned version>' or repin with 'dver use'",
	}
}

func NewNoLtsAvailableError(cause error) *ResolutionError {
	return &ResolutionError{
		Code:  NoLtsAvailable,
		Cause: cause,
		Hint:  "run 'dver remote' to inspect the release catalog",
	}
}

func NewInvalidVersionFormatError(cause error) *ResolutionError {
	return &ResolutionError{
		Code:  InvalidVersionFormat,
		Cause: cause,
	}
}

// NewInvalidArgumentsError classifies CLI argument and flag misuse as a
// validation failure rather than an I/O one.
func NewInvalidArgumentsError(cause error) *ResolutionError {
	return &ResolutionError{
		Code:  InvalidArguments,
		Cause: cause,
	}
}

func NewUnknownError(cause error) *ResolutionError {
	return &ResolutionError{
		Code:  UnknownError,
		Cause: cause,
	}
}

func Standardize(err error) *ResolutionError {
	if err == nil {
		return nil
	}

	var resErr *ResolutionError
	if errors.As(err, &resErr) {
		return resErr
	}

	switch {
	case errors.Is(err, ErrNoSdkInstalled):
		return NewNoSdkInstalledError(err)
	case errors.Is(err, ErrPinUnsatisfied):
		return NewPinUnsatisfiedError(err)
	case errors.Is(err, ErrNoLtsAvailable):
		return NewNoLtsAvailableError(err)
	}

	return NewUnknownError(err)
}
