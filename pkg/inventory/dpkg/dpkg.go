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

// Package dpkg discovers installed Debian packages and classifies them as
// desktop or command line applications.
package dpkg

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/appvault/appvault-core/pkg/helpers/command"
	"github.com/appvault/appvault-core/pkg/inventory/desktopentry"
	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	// SourceName identifies this source in errors and logs.
	SourceName = "dpkg"

	// DefaultQueryTimeout bounds every dpkg subprocess.
	DefaultQueryTimeout = 5 * time.Second

	maxWorkers = 32
	showFormat = "--showformat=${Package} ${Section}\\n"
)

// DefaultBlacklist lists sections that never hold end-user applications.
var DefaultBlacklist = []string{
	"libs",
	"python",
	"perl",
	"kernel",
	"doc",
	"metapackages",
	"oldlibs",
	"debug",
}

// DefaultWorkers sizes the ownership query pool from the available
// parallelism: four per CPU, capped at 32.
func DefaultWorkers() int {
	return max(1, min(maxWorkers, runtime.NumCPU()*4))
}

// Options configures a Source. Zero values select the defaults.
type Options struct {
	// Blacklist replaces DefaultBlacklist when non-nil.
	Blacklist []string
	// DesktopDirs are probed for launcher files by package name.
	// Defaults to desktopentry.SystemDirs().
	DesktopDirs []string
	// Clock times the classification. Defaults to the real clock.
	Clock        clockwork.Clock
	Workers      int
	QueryTimeout time.Duration
}

// Source queries the dpkg database.
type Source struct {
	exec      command.Executor
	fs        afero.Fs
	clock     clockwork.Clock
	blacklist []string
	dirs      []string
	workers   int
	timeout   time.Duration
}

// NewSource returns a Source that runs dpkg through exec and checks files
// on fs.
//
//nolint:gocritic // options struct passed by value for immutability
func NewSource(exec command.Executor, fs afero.Fs, opts Options) *Source {
	s := &Source{
		exec:    exec,
		fs:      fs,
		dirs:    opts.DesktopDirs,
		clock:   opts.Clock,
		workers: opts.Workers,
		timeout: opts.QueryTimeout,
	}

	bl := opts.Blacklist
	if bl == nil {
		bl = DefaultBlacklist
	}
	for _, term := range bl {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			s.blacklist = append(s.blacklist, term)
		}
	}

	if s.dirs == nil {
		s.dirs = desktopentry.SystemDirs()
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.workers <= 0 {
		s.workers = DefaultWorkers()
	}
	if s.timeout <= 0 {
		s.timeout = DefaultQueryTimeout
	}
	return s
}

// Workers is the size of the ownership query pool.
func (s *Source) Workers() int {
	return s.workers
}

// ListAllPackages returns every installed package from one bulk query.
// Duplicate names, e.g. the same package for several architectures, are
// reported once.
func (s *Source) ListAllPackages(ctx context.Context) ([]models.PackageRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.exec.Output(ctx, "dpkg-query", "-W", showFormat)
	if err != nil {
		return nil, &models.SourceError{
			Source: SourceName,
			Err:    fmt.Errorf("%w: dpkg-query: %w", models.ErrQuerySourceUnavailable, err),
			Stderr: command.StderrOf(err),
		}
	}

	records := ParsePackageList(string(out))
	log.Debug().Int("packages", len(records)).Msg("listed installed packages")
	return records, nil
}

// ParsePackageList parses "name section" lines. The section may be absent.
func ParsePackageList(out string) []models.PackageRecord {
	var records []models.PackageRecord
	seen := make(map[string]struct{})
	for line := range strings.Lines(out) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		records = append(records, models.PackageRecord{
			Name:    name,
			Section: strings.Join(fields[1:], " "),
		})
	}
	return records
}

// FilterApplications drops records whose section is blacklisted.
func (s *Source) FilterApplications(records []models.PackageRecord) []models.PackageRecord {
	result := make([]models.PackageRecord, 0, len(records))
	for _, r := range records {
		if IsBlacklisted(r.Section, s.blacklist) {
			continue
		}
		result = append(result, r)
	}
	return result
}

// IsBlacklisted reports whether section, or any "/" segment of it,
// case-insensitively equals a blacklist term or is a child of one.
func IsBlacklisted(section string, blacklist []string) bool {
	if section == "" {
		return false
	}
	sec := strings.ToLower(section)
	segments := strings.Split(sec, "/")
	for _, term := range blacklist {
		term = strings.ToLower(term)
		if term == "" {
			continue
		}
		if sec == term || strings.HasPrefix(sec, term+"/") {
			return true
		}
		for _, seg := range segments {
			if seg == term {
				return true
			}
		}
	}
	return false
}

// Scan lists, filters and classifies installed packages.
func (s *Source) Scan(ctx context.Context) (desktop, cli []models.CategorizedPackage, err error) {
	all, err := s.ListAllPackages(ctx)
	if err != nil {
		return nil, nil, err
	}
	apps := s.FilterApplications(all)
	log.Debug().
		Int("total", len(all)).
		Int("applications", len(apps)).
		Msg("filtered package list")
	return s.Classify(ctx, apps)
}
