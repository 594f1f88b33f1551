// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package releasecatalog is a read-only client for the .NET release metadata
// index: a top-level releases-index.json naming the channels, and one
// releases.json per channel carrying the sdk entries and their archives.
package releasecatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"dver.dev/x/dver/pkg/dverconfig"
	"dver.dev/x/dver/pkg/rid"
	"dver.dev/x/dver/pkg/sdkversion"
	"github.com/Masterminds/semver/v3"
	"github.com/jdx/go-netrc"
	"github.com/samber/lo"
)

const ltsReleaseType = "lts"

var ErrCatalogUnavailable = fmt.Errorf("release catalog unavailable")

type Channel struct {
	ChannelVersion string `json:"channel-version"`
	LatestRelease  string `json:"latest-release"`
	LatestSdk      string `json:"latest-sdk"`
	ReleaseType    string `json:"release-type"`
	SupportPhase   string `json:"support-phase"`
	ReleasesJSON   string `json:"releases.json"`
}

func (c Channel) IsLts() bool {
	return strings.EqualFold(c.ReleaseType, ltsReleaseType)
}

type releaseIndex struct {
	ReleasesIndex []Channel `json:"releases-index"`
}

type channelReleases struct {
	Releases []Release `json:"releases"`
}

type Release struct {
	ReleaseDate    string `json:"release-date"`
	ReleaseVersion string `json:"release-version"`
	Security       bool   `json:"security"`
	Sdk            *Sdk   `json:"sdk"`
	Sdks           []Sdk  `json:"sdks"`
}

type Sdk struct {
	Version        string     `json:"version"`
	VersionDisplay string     `json:"version-display"`
	RuntimeVersion string     `json:"runtime-version"`
	Files          []FileInfo `json:"files"`
}

type FileInfo struct {
	Name string `json:"name"`
	Rid  string `json:"rid"`
	URL  string `json:"url"`
	Hash string `json:"hash"`
}

// Archive is a downloadable sdk archive for one platform.
type Archive struct {
	Version *semver.Version
	Name    string
	URL     string
	Hash    string
}

type Client struct {
	indexURL   string
	netrcPath  string
	userAgent  string
	httpClient *http.Client
}

func NewFromConfig(config *dverconfig.Config) *Client {
	return New(config.CatalogURL, config.NetrcPath)
}

func New(indexURL, netrcPath string) *Client {
	return &Client{
		indexURL:   indexURL,
		netrcPath:  netrcPath,
		userAgent:  dverconfig.GetUserAgent(),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithCustomClient is meant for tests running against an httptest server.
func NewWithCustomClient(indexURL string, httpClient *http.Client) *Client {
	return &Client{
		indexURL:   indexURL,
		userAgent:  dverconfig.GetUserAgent(),
		httpClient: httpClient,
	}
}

// Channels fetches the release index, highest channel first.
func (c *Client) Channels(ctx context.Context) ([]Channel, error) {
	var index releaseIndex
	if err := c.getJSON(ctx, c.indexURL, &index); err != nil {
		return nil, err
	}

	channels := index.ReleasesIndex
	slices.SortFunc(channels, func(a, b Channel) int {
		return -compareChannelVersions(a.ChannelVersion, b.ChannelVersion)
	})
	return channels, nil
}

// LtsChannels returns the LTS channels of the index, highest first.
func (c *Client) LtsChannels(ctx context.Context) ([]Channel, error) {
	channels, err := c.Channels(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(channels, func(ch Channel, _ int) bool {
		return ch.IsLts()
	}), nil
}

// Releases fetches a channel's releases, newest first as published.
func (c *Client) Releases(ctx context.Context, channel Channel) ([]Release, error) {
	var releases channelReleases
	if err := c.getJSON(ctx, channel.ReleasesJSON, &releases); err != nil {
		return nil, err
	}
	return releases.Releases, nil
}

// SdkArchive locates the archive for the given sdk version on the current
// platform, walking the channel that owns the version.
func (c *Client) SdkArchive(ctx context.Context, version *semver.Version) (*Archive, error) {
	platformRid, err := rid.Current()
	if err != nil {
		return nil, err
	}

	channels, err := c.Channels(ctx)
	if err != nil {
		return nil, err
	}

	channel, found := lo.Find(channels, func(ch Channel) bool {
		v, err := sdkversion.Parse(ch.ChannelVersion)
		return err == nil && v.Major() == version.Major() && v.Minor() == version.Minor()
	})
	if !found {
		return nil, fmt.Errorf("no release channel covers sdk version %s", version.String())
	}

	releases, err := c.Releases(ctx, channel)
	if err != nil {
		return nil, err
	}

	for _, release := range releases {
		for _, sdk := range release.AllSdks() {
			v, err := sdkversion.Parse(sdk.Version)
			if err != nil || !v.Equal(version) {
				continue
			}
			file, found := lo.Find(sdk.Files, func(f FileInfo) bool {
				return f.Rid == platformRid && strings.HasSuffix(f.Name, rid.ArchiveExt())
			})
			if !found {
				return nil, fmt.Errorf("sdk %s has no archive for platform %s", version.String(), platformRid)
			}
			return &Archive{Version: version, Name: file.Name, URL: file.URL, Hash: file.Hash}, nil
		}
	}

	return nil, fmt.Errorf("sdk version %s not found in channel %s", version.String(), channel.ChannelVersion)
}

// AllSdks lists every sdk entry of a release, the primary one included.
func (r Release) AllSdks() []Sdk {
	if r.Sdk == nil {
		return r.Sdks
	}

	sdks := []Sdk{*r.Sdk}
	for _, s := range r.Sdks {
		if s.Version != r.Sdk.Version {
			sdks = append(sdks, s)
		}
	}
	return sdks
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	c.applyNetrcAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned HTTP %d", ErrCatalogUnavailable, rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: malformed response from %s: %v", ErrCatalogUnavailable, rawURL, err)
	}
	return nil
}

// applyNetrcAuth attaches netrc credentials when the catalog lives on a
// non-default host, e.g. an enterprise mirror behind basic auth.
func (c *Client) applyNetrcAuth(req *http.Request) {
	if c.netrcPath == "" || isDefaultCatalogHost(req.URL) {
		return
	}
	if _, err := os.Stat(c.netrcPath); err != nil {
		return
	}

	n, err := netrc.Parse(c.netrcPath)
	if err != nil {
		slog.Debug("ignoring unreadable netrc", "path", c.netrcPath, "err", err.Error())
		return
	}

	machine := n.Machine(req.URL.Hostname())
	if machine == nil {
		return
	}
	req.SetBasicAuth(machine.Get("login"), machine.Get("password"))
}

func isDefaultCatalogHost(u *url.URL) bool {
	defaultURL, err := url.Parse(dverconfig.DefaultCatalogURL)
	if err != nil {
		return false
	}
	return u.Hostname() == defaultURL.Hostname()
}

func compareChannelVersions(a, b string) int {
	va, errA := sdkversion.Parse(a)
	vb, errB := sdkversion.Parse(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return sdkversion.Compare(va, vb)
}
