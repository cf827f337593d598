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

// Package standalone finds launchers that exist on disk without being
// tracked by the package database, such as files dropped in by vendor
// installers.
package standalone

import (
	"context"
	"path/filepath"

	"github.com/appvault/appvault-core/pkg/inventory/desktopentry"
	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Finder enumerates desktop entries in a fixed set of directories.
type Finder struct {
	fs   afero.Fs
	dirs []string
}

// NewFinder returns a Finder over dirs, or desktopentry.SystemDirs() when
// dirs is nil.
func NewFinder(fs afero.Fs, dirs []string) *Finder {
	if dirs == nil {
		dirs = desktopentry.SystemDirs()
	}
	return &Finder{fs: fs, dirs: dirs}
}

// Find returns one pseudo-package per desktop file, named after the
// launcher's display name or, failing that, its file name. A file reached
// through two configured directories is reported once.
func (f *Finder) Find(ctx context.Context) []models.CategorizedPackage {
	var found []models.CategorizedPackage
	seen := make(map[string]struct{})

	for _, dir := range f.dirs {
		if ctx.Err() != nil {
			break
		}
		infos, err := afero.ReadDir(f.fs, dir)
		if err != nil {
			log.Debug().Err(err).Str("dir", dir).Msg("skipping launcher directory")
			continue
		}
		for _, fi := range infos {
			if !fi.Mode().IsRegular() || !desktopentry.IsDesktopFile(fi.Name()) {
				continue
			}
			path := filepath.Clean(filepath.Join(dir, fi.Name()))
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			found = append(found, f.categorize(path))
		}
	}

	log.Debug().Int("launchers", len(found)).Msg("found standalone launchers")
	return found
}

func (f *Finder) categorize(path string) models.CategorizedPackage {
	entry, _ := desktopentry.Read(f.fs, path)
	name := entry.Name
	if name == "" {
		name = desktopentry.Stem(path)
	}
	terminal := entry.IsTerminal()
	return models.CategorizedPackage{
		Package: models.PackageRecord{
			Name:    name,
			Section: models.SectionStandalone,
		},
		HasDesktopEntry: true,
		DesktopFiles:    []string{path},
		Terminal:        &terminal,
		DisplayName:     entry.Name,
		Icon:            entry.Icon,
		Exec:            entry.Exec,
	}
}
