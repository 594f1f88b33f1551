// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package sdkinstall

import "fmt"

var (
	ErrDownloadFailed   = fmt.Errorf("sdk archive download failed")
	ErrChecksumMismatch = fmt.Errorf("sdk archive checksum mismatch")
	ErrDiskFull         = fmt.Errorf("not enough disk space to install the sdk")
	ErrInUse            = fmt.Errorf("sdk version is in use")
	ErrNotFound         = fmt.Errorf("sdk version is not installed")
)
