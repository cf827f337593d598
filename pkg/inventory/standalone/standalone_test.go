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

package standalone

import (
	"context"
	"testing"

	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/appvault/appvault-core/pkg/testing/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sysApps  = "/usr/share/applications"
	userApps = "/home/user/.local/share/applications"
)

func TestFind(t *testing.T) {
	t.Parallel()

	fs := helpers.NewMemoryFS()
	require.NoError(t, fs.CreateDirectoryStructure(map[string]any{
		sysApps: map[string]any{
			"code.desktop":     helpers.DesktopEntry{Name: "Visual Studio Code", Exec: "code %F", Icon: "vscode"}.Render(),
			"nameless.desktop": "[Desktop Entry]\nExec=nameless\n",
			"README":           "not a launcher",
			"nested.desktop":   map[string]any{},
		},
		userApps: map[string]any{
			"btop.desktop": helpers.DesktopEntry{Name: "btop++", Exec: "btop", Terminal: "true"}.Render(),
		},
	}))
	finder := NewFinder(fs.Fs, []string{sysApps, "/does/not/exist", userApps})

	found := finder.Find(context.Background())

	require.Len(t, found, 3)
	code := found[0]
	assert.Equal(t, models.PackageRecord{Name: "Visual Studio Code", Section: models.SectionStandalone}, code.Package)
	assert.True(t, code.HasDesktopEntry)
	assert.Equal(t, []string{sysApps + "/code.desktop"}, code.DesktopFiles)
	assert.Equal(t, "code", code.Exec)
	assert.Equal(t, "vscode", code.Icon)
	require.NotNil(t, code.Terminal)
	assert.False(t, *code.Terminal)

	nameless := found[1]
	assert.Equal(t, "nameless", nameless.Package.Name)
	assert.Empty(t, nameless.DisplayName)

	btop := found[2]
	assert.Equal(t, "btop++", btop.Package.Name)
	require.NotNil(t, btop.Terminal)
	assert.True(t, *btop.Terminal)
}

func TestFind_DeduplicatesAcrossDirectories(t *testing.T) {
	t.Parallel()

	fs := helpers.NewMemoryFS()
	require.NoError(t, fs.WriteDesktopEntry(sysApps+"/gimp.desktop", helpers.DesktopEntry{Name: "GIMP"}))
	finder := NewFinder(fs.Fs, []string{sysApps, sysApps + "/", "/usr/share/../share/applications"})

	found := finder.Find(context.Background())

	require.Len(t, found, 1)
	assert.Equal(t, "GIMP", found[0].Package.Name)
}

func TestFind_CanceledContext(t *testing.T) {
	t.Parallel()

	fs := helpers.NewMemoryFS()
	require.NoError(t, fs.WriteDesktopEntry(sysApps+"/gimp.desktop", helpers.DesktopEntry{Name: "GIMP"}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	found := NewFinder(fs.Fs, []string{sysApps}).Find(ctx)

	assert.Empty(t, found)
}
