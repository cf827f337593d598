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

package helpers

import (
	"slices"
	"testing"

	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertValidCatalog checks the structural guarantees every catalog must
// hold, whatever the scanned host looked like:
//   - no desktop file belongs to two desktop applications
//   - desktop applications have files and command line ones have none
//   - all four lists are already in their canonical sort order
func AssertValidCatalog(t *testing.T, cat *models.Catalog) {
	t.Helper()

	require.NotNil(t, cat, "catalog should not be nil")

	owners := make(map[string]string)
	for i := range cat.DesktopApps {
		p := &cat.DesktopApps[i]
		assert.True(t, p.HasDesktopEntry, "%s is in the desktop bucket without a desktop entry", p.Package.Name)
		assert.NotEmpty(t, p.DesktopFiles, "%s is in the desktop bucket without desktop files", p.Package.Name)
		for _, path := range p.DesktopFiles {
			if owner, ok := owners[path]; ok {
				assert.Failf(t, "desktop file claimed twice", "%s: %s and %s", path, owner, p.Package.Name)
			}
			owners[path] = p.Package.Name
		}
	}
	for i := range cat.CLIApps {
		p := &cat.CLIApps[i]
		assert.False(t, p.HasDesktopEntry, "%s is in the CLI bucket with a desktop entry", p.Package.Name)
		assert.Empty(t, p.DesktopFiles, "%s is in the CLI bucket with desktop files", p.Package.Name)
	}

	desktop := slices.Clone(cat.DesktopApps)
	models.SortPackages(desktop)
	assert.Equal(t, desktop, cat.DesktopApps, "desktop applications are not sorted")
	cli := slices.Clone(cat.CLIApps)
	models.SortPackages(cli)
	assert.Equal(t, cli, cat.CLIApps, "command line applications are not sorted")
	flatpaks := slices.Clone(cat.Flatpaks)
	models.SortFlatpaks(flatpaks)
	assert.Equal(t, flatpaks, cat.Flatpaks, "flatpaks are not sorted")
	snaps := slices.Clone(cat.Snaps)
	models.SortSnaps(snaps)
	assert.Equal(t, snaps, cat.Snaps, "snaps are not sorted")
}
