// AppVault Core
// Copyright (c) 2026 The AppVault Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of AppVault Core.
//
// AppVault Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// AppVault Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with AppVault Core.  If not, see <http://www.gnu.org/licenses/>.

// Package models holds the inventory data model shared by every package
// source and the catalog.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SectionStandalone is the synthesized section of desktop entries that no
// installed package accounts for.
const SectionStandalone = "standalone"

// PackageRecord is one row of the system package database.
type PackageRecord struct {
	Name    string `json:"name" yaml:"name"`
	Section string `json:"section" yaml:"section"`
}

// Standalone reports whether the record was synthesized from a desktop
// entry rather than read from the package database.
func (r PackageRecord) Standalone() bool {
	return r.Section == SectionStandalone
}

// CategorizedPackage is a package record after launcher classification.
// Terminal is nil until desktop metadata has been read. DisplayName, Icon
// and Exec come from the first desktop file and are empty when absent.
type CategorizedPackage struct {
	Terminal        *bool         `json:"terminal,omitempty" yaml:"terminal,omitempty"`
	Package         PackageRecord `json:"package" yaml:"package"`
	DisplayName     string        `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Icon            string        `json:"icon,omitempty" yaml:"icon,omitempty"`
	Exec            string        `json:"exec,omitempty" yaml:"exec,omitempty"`
	DesktopFiles    []string      `json:"desktopFiles" yaml:"desktopFiles"`
	HasDesktopEntry bool          `json:"hasDesktopEntry" yaml:"hasDesktopEntry"`
}

// Label is the list caption used by front ends: "name [section]".
func (c *CategorizedPackage) Label() string {
	sec := c.Package.Section
	if sec == "" {
		sec = "unknown"
	}
	return c.Package.Name + " [" + sec + "]"
}

// FlatpakApp is one installed Flatpak application ref.
type FlatpakApp struct {
	AppID       string `json:"appId" yaml:"appId" csv:"app_id"`
	Origin      string `json:"origin" yaml:"origin" csv:"origin"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty" csv:"name"`
	DesktopFile string `json:"desktopFile,omitempty" yaml:"desktopFile,omitempty" csv:"desktop_file"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty" csv:"icon"`
}

// DisplayName falls back to the application ID when no desktop entry
// provided a name.
func (f *FlatpakApp) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.AppID
}

// Label is "name [origin]".
func (f *FlatpakApp) Label() string {
	return f.DisplayName() + " [" + f.Origin + "]"
}

// SnapApp is one row of the snap listing.
type SnapApp struct {
	Name        string `json:"name" yaml:"name" csv:"name"`
	Version     string `json:"version" yaml:"version" csv:"version"`
	Revision    string `json:"revision" yaml:"revision" csv:"revision"`
	Publisher   string `json:"publisher" yaml:"publisher" csv:"publisher"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty" csv:"notes"`
	DesktopFile string `json:"desktopFile,omitempty" yaml:"desktopFile,omitempty" csv:"desktop_file"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty" csv:"icon"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty" csv:"title"`
}

// DisplayName is the desktop entry name when one was found, else the snap name.
func (s *SnapApp) DisplayName() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}

// Label is "name [publisher]", or just the name without a publisher.
func (s *SnapApp) Label() string {
	if s.Publisher == "" {
		return s.Name
	}
	return s.Name + " [" + s.Publisher + "]"
}

// Catalog is the immutable result of one scan.
type Catalog struct {
	ScannedAt   time.Time            `json:"scannedAt" yaml:"scannedAt"`
	SystemErr   error                `json:"-" yaml:"-"`
	DesktopApps []CategorizedPackage `json:"desktopApps" yaml:"desktopApps"`
	CLIApps     []CategorizedPackage `json:"cliApps" yaml:"cliApps"`
	Flatpaks    []FlatpakApp         `json:"flatpaks" yaml:"flatpaks"`
	Snaps       []SnapApp            `json:"snaps" yaml:"snaps"`
	ScanID      uuid.UUID            `json:"scanId" yaml:"scanId"`
}

// Stats are the bucket sizes of a catalog.
type Stats struct {
	DesktopApps int `json:"desktopApps" yaml:"desktopApps"`
	CLIApps     int `json:"cliApps" yaml:"cliApps"`
	Flatpaks    int `json:"flatpaks" yaml:"flatpaks"`
	Snaps       int `json:"snaps" yaml:"snaps"`
}

// Stats counts the entries in each bucket.
func (c *Catalog) Stats() Stats {
	return Stats{
		DesktopApps: len(c.DesktopApps),
		CLIApps:     len(c.CLIApps),
		Flatpaks:    len(c.Flatpaks),
		Snaps:       len(c.Snaps),
	}
}
