// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package versions

import (
	"fmt"
	"slices"
	"strings"

	"dver.dev/x/dver/pkg/sdkversion"
	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
)

type Version struct {
	Version   *semver.Version `json:"version,omitempty"`
	Installed bool            `json:"installed,omitempty"`
	Remote    bool            `json:"remote,omitempty"`
	Active    bool            `json:"active,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
}

type Versions []*Version

type versionsMap map[string]*Version

// NewInstalled builds the rows for the list command: one row per installed
// version, the active one marked.
func NewInstalled(active *semver.Version, installed []*semver.Version) Versions {
	m := versionsMap{}

	for _, v := range installed {
		m.add(&Version{Version: v, Installed: true})
	}

	if active != nil {
		m.add(&Version{Version: active, Active: true})
	}

	r := Versions(lo.Values(m))
	r.SortDescending()
	return r
}

// NewRemote builds the rows for the remote command: one row per catalog
// version with its channel tags, cross-marked against the installed set.
func NewRemote(remote map[*semver.Version][]string, installed []*semver.Version) Versions {
	m := versionsMap{}

	for v, tags := range remote {
		m.add(&Version{Version: v, Remote: true, Tags: tags})
	}

	for _, v := range installed {
		m.add(&Version{Version: v, Installed: true})
	}

	r := Versions(lo.Values(m))
	r.SortDescending()
	return r
}

func (v versionsMap) add(e *Version) {
	key := e.Version.String()
	_, ok := v[key]

	if !ok {
		v[key] = e
		return
	}

	v[key].Installed = v[key].Installed || e.Installed
	v[key].Remote = v[key].Remote || e.Remote
	v[key].Active = v[key].Active || e.Active
	v[key].Tags = append(v[key].Tags, e.Tags...)
}

// SortDescending orders rows highest version first.
func (v Versions) SortDescending() {
	slices.SortFunc(v, func(a, b *Version) int {
		return -sdkversion.Compare(a.Version, b.Version)
	})
}

func (v Versions) Table() string {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Rows(lo.Map(v, func(row *Version, _ int) []string {
			indicator := ""

			version := row.Version.String()

			if len(row.Tags) > 0 {
				tags := strings.Join(row.Tags, ", ")
				version = fmt.Sprintf("%s\t(%s)", version, tags)
			}

			switch {
			case row.Active:
				indicator = "*"
				version = lipgloss.NewStyle().
					Foreground(lipgloss.Color("2")).
					Bold(true).
					Render(version)
			case !row.Installed:
				version = lipgloss.NewStyle().
					Faint(true).
					Italic(true).
					Render(version)
			}

			return []string{
				indicator,
				version,
			}
		})...).
		String()
}
