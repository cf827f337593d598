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

// Package catalog assembles the inventory from every package source.
package catalog

import (
	"context"
	"fmt"

	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// SystemSource lists and classifies system packages.
type SystemSource interface {
	Scan(ctx context.Context) (desktop, cli []models.CategorizedPackage, err error)
}

// StandaloneFinder finds launchers not tracked by the package database.
type StandaloneFinder interface {
	Find(ctx context.Context) []models.CategorizedPackage
}

// FlatpakSource lists Flatpak applications.
type FlatpakSource interface {
	ListApps(ctx context.Context) []models.FlatpakApp
}

// SnapSource lists snaps.
type SnapSource interface {
	ListApps(ctx context.Context) []models.SnapApp
}

// Sources are the inputs of a Builder. A nil Standalone, Flatpak or Snap
// source is skipped. A nil Clock uses the real clock.
type Sources struct {
	System     SystemSource
	Standalone StandaloneFinder
	Flatpak    FlatpakSource
	Snap       SnapSource
	Clock      clockwork.Clock
}

// Builder runs a full scan.
type Builder struct {
	clock clockwork.Clock
	src   Sources
}

// NewBuilder returns a Builder over src. src.System is required.
//
//nolint:gocritic // sources struct passed by value for immutability
func NewBuilder(src Sources) *Builder {
	clock := src.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Builder{src: src, clock: clock}
}

// Build scans every source concurrently and returns a sorted catalog.
//
// A failing system source does not discard the Flatpak and Snap results:
// the returned catalog holds them, has SystemErr set, and the same error
// is returned. The package buckets are then empty. A scan interrupted by
// cancelling ctx fails the same way, since its results are incomplete.
func (b *Builder) Build(ctx context.Context) (*models.Catalog, error) {
	start := b.clock.Now()
	cat := &models.Catalog{
		ScanID:      uuid.New(),
		ScannedAt:   start,
		DesktopApps: []models.CategorizedPackage{},
		CLIApps:     []models.CategorizedPackage{},
		Flatpaks:    []models.FlatpakApp{},
		Snaps:       []models.SnapApp{},
	}
	logger := log.With().Str("scan", cat.ScanID.String()).Logger()

	var (
		desktop, cli, standalone []models.CategorizedPackage
		flatpaks                 []models.FlatpakApp
		snaps                    []models.SnapApp
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		desktop, cli, err = b.src.System.Scan(ctx)
		return err
	})
	if b.src.Standalone != nil {
		g.Go(func() error {
			standalone = b.src.Standalone.Find(ctx)
			return nil
		})
	}
	if b.src.Flatpak != nil {
		g.Go(func() error {
			flatpaks = b.src.Flatpak.ListApps(ctx)
			return nil
		})
	}
	if b.src.Snap != nil {
		g.Go(func() error {
			snaps = b.src.Snap.ListApps(ctx)
			return nil
		})
	}
	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		err = fmt.Errorf("scan interrupted: %w", ctx.Err())
	}

	if flatpaks != nil {
		cat.Flatpaks = flatpaks
	}
	if snaps != nil {
		cat.Snaps = snaps
	}
	models.SortFlatpaks(cat.Flatpaks)
	models.SortSnaps(cat.Snaps)

	if err != nil {
		logger.Error().Err(err).Msg("catalog scan failed")
		cat.SystemErr = err
		return cat, err
	}

	cat.DesktopApps = append(cat.DesktopApps, desktop...)
	cat.DesktopApps = MergeStandalone(cat.DesktopApps, standalone)
	cat.CLIApps = append(cat.CLIApps, cli...)
	models.SortPackages(cat.DesktopApps)
	models.SortPackages(cat.CLIApps)

	stats := cat.Stats()
	logger.Info().
		Int("desktop", stats.DesktopApps).
		Int("cli", stats.CLIApps).
		Int("flatpak", stats.Flatpaks).
		Int("snap", stats.Snaps).
		Dur("elapsed", b.clock.Since(start)).
		Msg("catalog built")
	return cat, nil
}

// MergeStandalone appends the standalone entries none of whose desktop
// files is already attributed to a package in desktop.
func MergeStandalone(desktop, standalone []models.CategorizedPackage) []models.CategorizedPackage {
	claimed := make(map[string]struct{})
	for i := range desktop {
		for _, p := range desktop[i].DesktopFiles {
			claimed[p] = struct{}{}
		}
	}

	merged := desktop
	for i := range standalone {
		taken := false
		for _, p := range standalone[i].DesktopFiles {
			if _, ok := claimed[p]; ok {
				taken = true
				break
			}
		}
		if taken {
			continue
		}
		for _, p := range standalone[i].DesktopFiles {
			claimed[p] = struct{}{}
		}
		merged = append(merged, standalone[i])
	}
	return merged
}
