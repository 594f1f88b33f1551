// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package sdkinstall downloads, verifies and unpacks sdk archives under the
// install root, and removes installed versions. All mutations of the install
// root happen under the install lock.
package sdkinstall

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"dver.dev/x/dver/pkg/dverconfig"
	"dver.dev/x/dver/pkg/releasecatalog"
	"dver.dev/x/dver/pkg/sdkdir"
	"dver.dev/x/dver/pkg/utils"
	"github.com/Masterminds/semver/v3"
)

// NoVerifyEnvVar skips archive checksum verification when set. Meant for
// catalog mirrors that don't publish hashes.
const NoVerifyEnvVar = "DVER_INSTALL_NO_VERIFY"

type ArchiveSource interface {
	SdkArchive(ctx context.Context, version *semver.Version) (*releasecatalog.Archive, error)
}

type Installer struct {
	config     *dverconfig.Config
	catalog    ArchiveSource
	repo       *sdkdir.Repository
	httpClient *http.Client
}

func New(config *dverconfig.Config, catalog ArchiveSource) *Installer {
	return &Installer{
		config:     config,
		catalog:    catalog,
		repo:       sdkdir.New(config.InstallRoot),
		httpClient: &http.Client{Timeout: 15 * time.Minute},
	}
}

// Install pulls the archive for the given version from the catalog, verifies
// its checksum and unpacks it into the install root. Concurrent invocations
// serialize on the install lock.
func (i *Installer) Install(ctx context.Context, version *semver.Version) error {
	return utils.WithInstallLock(ctx, i.config.InstallLockFilePath, func() error {
		return i.install(ctx, version)
	})
}

func (i *Installer) install(ctx context.Context, version *semver.Version) error {
	archive, err := i.catalog.SdkArchive(ctx, version)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	if err := utils.EnsureDirs(i.config.DownloadsPath); err != nil {
		return err
	}

	archivePath, err := i.download(ctx, archive)
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(archivePath); err != nil {
			slog.Warn("failed to delete downloaded archive", "path", archivePath, "err", err.Error())
		}
	}()

	if err := i.verify(archivePath, archive.Hash); err != nil {
		return err
	}

	if err := utils.EnsureDirs(i.config.InstallRoot); err != nil {
		return err
	}

	slog.Debug("unpacking sdk archive", "archive", archive.Name, "into", i.config.InstallRoot)
	if err := unpack(archivePath, i.config.InstallRoot); err != nil {
		if isDiskFull(err) {
			return fmt.Errorf("%w: %v", ErrDiskFull, err)
		}
		return err
	}
	return nil
}

// Uninstall removes the installed version's directory. activeVersion, when
// non-nil, guards the currently resolved version against removal.
func (i *Installer) Uninstall(ctx context.Context, version, activeVersion *semver.Version) error {
	return utils.WithInstallLock(ctx, i.config.InstallLockFilePath, func() error {
		path := i.repo.VersionPath(version)

		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, version.String())
		} else if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrNotFound, version.String())
		}

		if activeVersion != nil && version.Equal(activeVersion) {
			return fmt.Errorf("%w: %s is the active version, pass --force to remove it anyway", ErrInUse, version.String())
		}

		return os.RemoveAll(path)
	})
}

func (i *Installer) download(ctx context.Context, archive *releasecatalog.Archive) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archive.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	req.Header.Set("User-Agent", dverconfig.GetUserAgent())

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned HTTP %d", ErrDownloadFailed, archive.URL, resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp(i.config.DownloadsPath, "download-*.tmp")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		if isDiskFull(err) {
			return "", fmt.Errorf("%w: %v", ErrDiskFull, err)
		}
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	finalPath := filepath.Join(i.config.DownloadsPath, archive.Name)
	if err := os.Remove(finalPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return finalPath, nil
}

func (i *Installer) verify(path, expectedHash string) error {
	noVerify, ok, err := utils.BoolEnvVar(NoVerifyEnvVar)
	if err != nil {
		return err
	}
	if ok && noVerify {
		slog.Warn("skipping archive checksum verification", "env", NoVerifyEnvVar)
		return nil
	}

	if expectedHash == "" {
		return fmt.Errorf("%w: the catalog provided no checksum for %s", ErrChecksumMismatch, filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	hasher := sha512.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return err
	}

	actual := hex.EncodeToString(hasher.Sum(nil))
	if !strings.EqualFold(actual, expectedHash) {
		return fmt.Errorf("%w: got %s want %s", ErrChecksumMismatch, actual, expectedHash)
	}
	return nil
}

func unpack(archivePath, destDir string) error {
	if strings.HasSuffix(archivePath, ".zip") {
		return unzip(archivePath, destDir)
	}
	return untar(archivePath, destDir)
}

func untar(archivePath, destDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer gz.Close()

	reader := tar.NewReader(gz)
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := entryPath(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := utils.EnsureDirs(target); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, reader, os.FileMode(header.Mode)); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := utils.EnsureDirs(filepath.Dir(target)); err != nil {
				return err
			}
			if err := os.RemoveAll(target); err != nil {
				return err
			}
			if err := os.Symlink(header.Linkname, target); err != nil {
				return err
			}
		}
	}
}

func unzip(archivePath, destDir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := entryPath(destDir, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := utils.EnsureDirs(target); err != nil {
				return err
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeEntry(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// entryPath joins an archive entry name onto destDir, rejecting entries that
// would escape it.
func entryPath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes the install root", name)
	}
	return target, nil
}

func writeEntry(target string, contents io.Reader, mode os.FileMode) error {
	if err := utils.EnsureDirs(filepath.Dir(target)); err != nil {
		return err
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, contents); err != nil {
		return err
	}
	return out.Sync()
}

func isDiskFull(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}
