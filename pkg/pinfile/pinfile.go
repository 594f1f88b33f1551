// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pinfile reads and writes the global.json pin that scopes an sdk
// version to a directory tree.
package pinfile

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"dver.dev/x/dver/pkg/sdkversion"
	"dver.dev/x/dver/pkg/utils"
)

const (
	PinFileName  = "global.json"
	backupSuffix = ".bak"
)

// Pin is a version selector recorded in a global.json, together with the
// file it was read from.
type Pin struct {
	Spec sdkversion.Spec
	Path string
}

type pinDocument struct {
	Sdk pinSdk `json:"sdk"`
}

type pinSdk struct {
	Version string `json:"version"`
}

// Read returns the pin recorded in the nearest global.json walking upward
// from dir, or nil when none is found. A malformed file or an unparsable
// version is treated as no pin so that resolution stays available.
func Read(dir string) (*Pin, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	path, ok, err := findInAncestors(dir, PinFileName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc pinDocument
	if err := json.Unmarshal(contents, &doc); err != nil {
		slog.Debug("ignoring malformed pin file", "path", path, "err", err.Error())
		return nil, nil
	}
	if doc.Sdk.Version == "" {
		return nil, nil
	}

	spec, err := sdkversion.ParseSpec(doc.Sdk.Version)
	if err != nil {
		slog.Debug("ignoring pin file with unparsable version", "path", path, "version", doc.Sdk.Version)
		return nil, nil
	}

	return &Pin{Spec: spec, Path: path}, nil
}

// Write records the selector in dir's global.json, overwriting any existing
// pin after copying it aside to global.json.bak. Returns the path written.
func Write(dir string, spec sdkversion.Spec) (string, error) {
	path := filepath.Join(dir, PinFileName)

	if _, err := os.Stat(path); err == nil {
		if err := utils.CopyFile(path, path+backupSuffix); err != nil {
			return "", err
		}
	}

	doc := pinDocument{Sdk: pinSdk{Version: spec.String()}}
	contents, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	return path, os.WriteFile(path, append(contents, '\n'), 0644)
}

func findInAncestors(startDir, filename string) (string, bool, error) {
	f := filepath.Join(startDir, filename)

	info, err := os.Stat(f)
	if err == nil && !info.IsDir() {
		return f, true, nil
	}

	parent := filepath.Dir(startDir)
	if parent == startDir {
		return "", false, nil
	}

	return findInAncestors(parent, filename)
}
