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

// Package flatpak lists installed Flatpak applications.
package flatpak

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/appvault/appvault-core/pkg/helpers/command"
	"github.com/appvault/appvault-core/pkg/inventory/desktopentry"
	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	// SourceName identifies this source in logs.
	SourceName = "flatpak"

	// DefaultQueryTimeout bounds the flatpak listing.
	DefaultQueryTimeout = 5 * time.Second

	unknownOrigin = "unknown"
)

// DefaultExportDirs returns the directories searched for an application's
// exported launcher, per-user installation first.
func DefaultExportDirs() []string {
	return []string{
		filepath.Join(xdg.DataHome, "flatpak", "exports", "share", "applications"),
		"/var/lib/flatpak/exports/share/applications",
		"/usr/local/share/applications",
		"/usr/share/applications",
	}
}

// Options configures a Source. Zero values select the defaults.
type Options struct {
	// ExportDirs defaults to DefaultExportDirs().
	ExportDirs   []string
	QueryTimeout time.Duration
}

// Source queries the flatpak CLI. A missing or failing flatpak installation
// is not an error: the source is simply empty.
type Source struct {
	exec    command.Executor
	fs      afero.Fs
	dirs    []string
	timeout time.Duration
}

// NewSource returns a Source that runs flatpak through exec.
func NewSource(exec command.Executor, fs afero.Fs, opts Options) *Source {
	s := &Source{
		exec:    exec,
		fs:      fs,
		dirs:    opts.ExportDirs,
		timeout: opts.QueryTimeout,
	}
	if s.dirs == nil {
		s.dirs = DefaultExportDirs()
	}
	if s.timeout <= 0 {
		s.timeout = DefaultQueryTimeout
	}
	return s
}

// ListApps returns the installed applications sorted by display name.
func (s *Source) ListApps(ctx context.Context) []models.FlatpakApp {
	out, err := s.list(ctx)
	if err != nil {
		if errors.Is(err, models.ErrToolNotInstalled) {
			log.Debug().Msg("flatpak not installed, listing skipped")
		} else {
			log.Debug().Err(err).Msg("flatpak listing failed")
		}
		return []models.FlatpakApp{}
	}

	apps := ParseList(string(out))
	for i := range apps {
		s.enrich(&apps[i])
	}
	models.SortFlatpaks(apps)

	log.Debug().Int("apps", len(apps)).Msg("listed flatpak applications")
	return apps
}

func (s *Source) list(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.exec.Output(ctx, "flatpak", "list", "--app", "--columns=application,origin")
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

// ParseList reads "application origin" rows. Blank lines are skipped and a
// missing origin becomes "unknown".
func ParseList(out string) []models.FlatpakApp {
	apps := make([]models.FlatpakApp, 0)
	for line := range strings.Lines(out) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		app := models.FlatpakApp{AppID: fields[0], Origin: unknownOrigin}
		if len(fields) > 1 {
			app.Origin = fields[1]
		}
		apps = append(apps, app)
	}
	return apps
}

func (s *Source) enrich(app *models.FlatpakApp) {
	path, ok := s.desktopFile(app.AppID)
	if !ok {
		return
	}
	app.DesktopFile = path
	if entry, ok := desktopentry.Read(s.fs, path); ok {
		app.Name = entry.Name
		app.Icon = entry.Icon
	}
}

// desktopFile returns the first existing exported launcher for appID.
func (s *Source) desktopFile(appID string) (string, bool) {
	for _, dir := range s.dirs {
		p := filepath.Join(dir, appID+desktopentry.Suffix)
		fi, err := s.fs.Stat(p)
		if err == nil && fi.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}
