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

// Package snap lists installed snaps.
package snap

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/appvault/appvault-core/pkg/helpers/command"
	"github.com/appvault/appvault-core/pkg/inventory/desktopentry"
	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	// SourceName identifies this source in logs.
	SourceName = "snap"

	// DefaultQueryTimeout bounds the snap listing.
	DefaultQueryTimeout = 5 * time.Second

	// DefaultDesktopDir is where snapd exports launchers.
	DefaultDesktopDir = "/var/lib/snapd/desktop/applications"
	// DefaultMountDir is where snaps are mounted.
	DefaultMountDir = "/snap"
)

// Options configures a Source. Zero values select the defaults.
type Options struct {
	DesktopDir   string
	MountDir     string
	QueryTimeout time.Duration
}

// Source queries the snap CLI. A missing snapd is not an error.
type Source struct {
	exec       command.Executor
	fs         afero.Fs
	desktopDir string
	mountDir   string
	timeout    time.Duration
}

// NewSource returns a Source that runs snap through exec.
func NewSource(exec command.Executor, fs afero.Fs, opts Options) *Source {
	s := &Source{
		exec:       exec,
		fs:         fs,
		desktopDir: opts.DesktopDir,
		mountDir:   opts.MountDir,
		timeout:    opts.QueryTimeout,
	}
	if s.desktopDir == "" {
		s.desktopDir = DefaultDesktopDir
	}
	if s.mountDir == "" {
		s.mountDir = DefaultMountDir
	}
	if s.timeout <= 0 {
		s.timeout = DefaultQueryTimeout
	}
	return s
}

// ListApps returns the installed snaps sorted by name.
func (s *Source) ListApps(ctx context.Context) []models.SnapApp {
	out, err := s.list(ctx)
	if err != nil {
		if errors.Is(err, models.ErrToolNotInstalled) {
			log.Debug().Msg("snap not installed, listing skipped")
		} else {
			log.Debug().Err(err).Msg("snap listing failed")
		}
		return []models.SnapApp{}
	}

	apps := ParseList(string(out))
	for i := range apps {
		s.enrich(&apps[i])
	}
	models.SortSnaps(apps)

	log.Debug().Int("snaps", len(apps)).Msg("listed snaps")
	return apps
}

func (s *Source) list(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.exec.Output(ctx, "snap", "list")
	if err != nil {
		cause := models.ErrOptionalSourceUnavailable
		if command.IsNotFound(err) {
			cause = fmt.Errorf("%w: %w", cause, models.ErrToolNotInstalled)
		}
		return nil, &models.SourceError{
			Source: SourceName,
			Stderr: command.StderrOf(err),
			Err:    fmt.Errorf("%w: %w", cause, err),
		}
	}
	return out, nil
}

// ParseList reads the tabular "snap list" output. The first line is the
// header. Rows need name, version, revision and publisher; the notes
// column is optional.
func ParseList(out string) []models.SnapApp {
	apps := make([]models.SnapApp, 0)
	header := true
	for line := range strings.Lines(out) {
		if header {
			header = false
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		app := models.SnapApp{
			Name:      fields[0],
			Version:   fields[1],
			Revision:  fields[2],
			Publisher: fields[3],
		}
		if len(fields) > 4 {
			app.Notes = fields[4]
		}
		apps = append(apps, app)
	}
	return apps
}

func (s *Source) enrich(app *models.SnapApp) {
	path, ok := s.desktopFile(app.Name)
	if !ok {
		return
	}
	app.DesktopFile = path
	if entry, ok := desktopentry.Read(s.fs, path); ok {
		app.Title = entry.Name
		app.Icon = entry.Icon
	}
}

// desktopFile returns the first existing launcher for the snap: the
// snapd export named "{name}_{name}" or "{name}", then any launcher in
// the snap's meta/gui directory.
func (s *Source) desktopFile(name string) (string, bool) {
	candidates := []string{
		filepath.Join(s.desktopDir, name+"_"+name+desktopentry.Suffix),
		filepath.Join(s.desktopDir, name+desktopentry.Suffix),
	}

	gui := filepath.Join(s.mountDir, name, "current", "meta", "gui")
	if infos, err := afero.ReadDir(s.fs, gui); err == nil {
		for _, fi := range infos {
			if desktopentry.IsDesktopFile(fi.Name()) {
				candidates = append(candidates, filepath.Join(gui, fi.Name()))
			}
		}
	}

	for _, p := range candidates {
		fi, err := s.fs.Stat(p)
		if err == nil && fi.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}
