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

package dpkg

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/appvault/appvault-core/pkg/inventory/desktopentry"
	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// claim is a desktop file attributed to a package, either by dpkg file
// ownership or by matching the package name in a launcher directory.
type claim struct {
	path  string
	owned bool
}

type probe struct {
	record models.PackageRecord
	claims []claim
}

// Classify splits records into packages with and without launchers. One
// ownership query per package runs in a pool bounded by the worker limit;
// a failed query leaves that package without launchers. A desktop file
// claimed by several packages is kept by exactly one of them.
//
// Cancelling ctx fails the whole classification: the interrupted queries
// would otherwise show up as packages without launchers.
func (s *Source) Classify(
	ctx context.Context,
	records []models.PackageRecord,
) (desktop, cli []models.CategorizedPackage, err error) {
	start := s.clock.Now()
	probes := make([]probe, len(records))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, rec := range records {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			probes[i] = s.probe(ctx, rec)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Int("packages", len(records)).Msg("package classification interrupted")
		return nil, nil, fmt.Errorf("classify packages: %w", err)
	}

	files := reconcile(probes)
	for i, p := range probes {
		cp := models.CategorizedPackage{Package: p.record}
		if len(files[i]) == 0 {
			cli = append(cli, cp)
			continue
		}
		cp.HasDesktopEntry = true
		cp.DesktopFiles = files[i]
		s.enrich(&cp)
		desktop = append(desktop, cp)
	}

	log.Info().
		Int("packages", len(records)).
		Int("desktop", len(desktop)).
		Int("cli", len(cli)).
		Int("workers", s.workers).
		Dur("elapsed", s.clock.Since(start)).
		Msg("classified packages")
	return desktop, cli, nil
}

func (s *Source) probe(ctx context.Context, rec models.PackageRecord) probe {
	p := probe{record: rec}
	seen := make(map[string]struct{})
	add := func(path string, owned bool) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		p.claims = append(p.claims, claim{path: path, owned: owned})
	}
	for _, path := range s.ownedDesktopFiles(ctx, rec.Name) {
		add(path, true)
	}
	for _, path := range s.guessDesktopFiles(rec.Name) {
		add(path, false)
	}
	return p
}

// ownedDesktopFiles returns the existing desktop files dpkg lists for name.
func (s *Source) ownedDesktopFiles(ctx context.Context, name string) []string {
	queryCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.exec.Output(queryCtx, "dpkg", "-L", name)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			// Classify reports the cancellation for the whole scan.
		case errors.Is(queryCtx.Err(), context.DeadlineExceeded):
			log.Debug().
				Str("package", name).
				Dur("timeout", s.timeout).
				Msg("ownership query timed out, assuming no launchers")
		default:
			log.Debug().
				Err(err).
				Str("package", name).
				Msg("ownership query failed, assuming no launchers")
		}
		return nil
	}

	var paths []string
	for line := range strings.Lines(string(out)) {
		path := strings.TrimSpace(line)
		if !desktopentry.IsDesktopFile(path) {
			continue
		}
		path = filepath.Clean(path)
		if isFile(s.fs, path) {
			paths = append(paths, path)
		}
	}
	return paths
}

// guessDesktopFiles finds launchers named after the package that dpkg does
// not track, e.g. files written by maintainer scripts.
func (s *Source) guessDesktopFiles(name string) []string {
	var paths []string
	for _, dir := range s.dirs {
		for _, pattern := range []string{name + desktopentry.Suffix, name + "-*" + desktopentry.Suffix} {
			matches, err := afero.Glob(s.fs, filepath.Join(dir, pattern))
			if err != nil {
				continue
			}
			for _, m := range matches {
				if isFile(s.fs, m) {
					paths = append(paths, filepath.Clean(m))
				}
			}
		}
	}
	return paths
}

// enrich reads the package's desktop files for display metadata. The
// terminal flag is true if any file asks for a terminal.
func (s *Source) enrich(cp *models.CategorizedPackage) {
	terminal := false
	for _, path := range cp.DesktopFiles {
		entry, ok := desktopentry.Read(s.fs, path)
		if !ok {
			continue
		}
		terminal = terminal || entry.IsTerminal()
		if cp.DisplayName == "" {
			cp.DisplayName = entry.Name
		}
		if cp.Icon == "" {
			cp.Icon = entry.Icon
		}
		if cp.Exec == "" {
			cp.Exec = entry.Exec
		}
	}
	cp.Terminal = &terminal
}

// reconcile assigns every claimed path to a single package. Ownership beats
// a name match; otherwise the longer, more specific package name wins, then
// the lexically smaller one.
func reconcile(probes []probe) [][]string {
	type winner struct {
		idx   int
		owned bool
	}
	winners := make(map[string]winner)
	for i, p := range probes {
		for _, c := range p.claims {
			cur, ok := winners[c.path]
			if !ok || beats(probes[i].record.Name, c.owned, probes[cur.idx].record.Name, cur.owned) {
				winners[c.path] = winner{idx: i, owned: c.owned}
			}
		}
	}

	files := make([][]string, len(probes))
	for i, p := range probes {
		for _, c := range p.claims {
			if winners[c.path].idx == i {
				files[i] = append(files[i], c.path)
			}
		}
	}
	return files
}

func beats(name string, owned bool, curName string, curOwned bool) bool {
	if owned != curOwned {
		return owned
	}
	if len(name) != len(curName) {
		return len(name) > len(curName)
	}
	return name < curName
}

func isFile(fs afero.Fs, path string) bool {
	fi, err := fs.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
