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

package flatpak

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/appvault/appvault-core/pkg/testing/helpers"
	"github.com/appvault/appvault-core/pkg/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	userExports   = "/home/user/.local/share/flatpak/exports/share/applications"
	systemExports = "/var/lib/flatpak/exports/share/applications"
	sysApps       = "/usr/share/applications"
)

var listArgs = []string{"list", "--app", "--columns=application,origin"}

func testDirs() []string {
	return []string{userExports, systemExports, sysApps}
}

func TestParseList(t *testing.T) {
	t.Parallel()

	apps := ParseList("org.gimp.GIMP\tflathub\n\n  \ncom.example.Tool\n")

	assert.Equal(t, []models.FlatpakApp{
		{AppID: "org.gimp.GIMP", Origin: "flathub"},
		{AppID: "com.example.Tool", Origin: "unknown"},
	}, apps)
}

func TestListApps(t *testing.T) {
	t.Parallel()

	fs := helpers.NewMemoryFS()
	require.NoError(t, fs.WriteDesktopEntry(systemExports+"/org.gimp.GIMP.desktop",
		helpers.DesktopEntry{Name: "GNU Image Manipulation Program", Icon: "org.gimp.GIMP"}))
	require.NoError(t, fs.WriteDesktopEntry(sysApps+"/org.gimp.GIMP.desktop",
		helpers.DesktopEntry{Name: "GIMP (system copy)"}))
	require.NoError(t, fs.WriteDesktopEntry(userExports+"/com.spotify.Client.desktop",
		helpers.DesktopEntry{Name: "Spotify"}))

	cmd := &mocks.MockCommandExecutor{}
	cmd.On("Output", mock.Anything, "flatpak", listArgs).
		Return([]byte("org.gimp.GIMP\tflathub\ncom.spotify.Client\tflathub\nzz.example.NoLauncher\n"), nil)
	src := NewSource(cmd, fs.Fs, Options{ExportDirs: testDirs()})

	apps := src.ListApps(context.Background())

	require.Len(t, apps, 3)
	assert.Equal(t, models.FlatpakApp{
		AppID:       "org.gimp.GIMP",
		Origin:      "flathub",
		Name:        "GNU Image Manipulation Program",
		DesktopFile: systemExports + "/org.gimp.GIMP.desktop",
		Icon:        "org.gimp.GIMP",
	}, apps[0])
	assert.Equal(t, "Spotify", apps[1].Name)
	assert.Equal(t, userExports+"/com.spotify.Client.desktop", apps[1].DesktopFile)
	assert.Equal(t, "zz.example.NoLauncher", apps[2].DisplayName())
	assert.Empty(t, apps[2].DesktopFile)
	assert.Equal(t, "unknown", apps[2].Origin)
	cmd.AssertExpectations(t)
}

func TestListApps_SortsByDisplayNameCaseInsensitive(t *testing.T) {
	t.Parallel()

	fs := helpers.NewMemoryFS()
	require.NoError(t, fs.WriteDesktopEntry(sysApps+"/b.desktop", helpers.DesktopEntry{Name: "beta"}))
	require.NoError(t, fs.WriteDesktopEntry(sysApps+"/a.desktop", helpers.DesktopEntry{Name: "Zulu"}))

	cmd := &mocks.MockCommandExecutor{}
	cmd.On("Output", mock.Anything, "flatpak", listArgs).
		Return([]byte("a flathub\nb flathub\nAlpha flathub\n"), nil)

	apps := NewSource(cmd, fs.Fs, Options{ExportDirs: testDirs()}).ListApps(context.Background())

	names := make([]string, 0, len(apps))
	for i := range apps {
		names = append(names, apps[i].DisplayName())
	}
	assert.Equal(t, []string{"Alpha", "beta", "Zulu"}, names)
}

func TestListApps_FailureIsEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		name string
	}{
		{name: "missing_tool", err: &exec.Error{Name: "flatpak", Err: exec.ErrNotFound}},
		{name: "non_zero_exit", err: &exec.ExitError{Stderr: []byte("error: no remotes")}},
		{name: "timeout", err: context.DeadlineExceeded},
		{name: "other", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := helpers.FailingCommandExecutor(tt.err)
			src := NewSource(cmd, helpers.NewMemoryFS().Fs, Options{ExportDirs: testDirs()})

			apps := src.ListApps(context.Background())

			assert.NotNil(t, apps)
			assert.Empty(t, apps)
		})
	}
}

func TestListErrorWrapsOptionalSource(t *testing.T) {
	t.Parallel()

	cmd := helpers.FailingCommandExecutor(&exec.ExitError{Stderr: []byte("  no remotes \n")})
	src := NewSource(cmd, helpers.NewMemoryFS().Fs, Options{})

	_, err := src.list(context.Background())

	require.ErrorIs(t, err, models.ErrOptionalSourceUnavailable)
	var srcErr *models.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, SourceName, srcErr.Source)
	assert.Equal(t, "no remotes", srcErr.Stderr)
	assert.NotErrorIs(t, err, models.ErrToolNotInstalled)
}

func TestListErrorMarksMissingTool(t *testing.T) {
	t.Parallel()

	cmd := helpers.FailingCommandExecutor(&exec.Error{Name: "flatpak", Err: exec.ErrNotFound})
	src := NewSource(cmd, helpers.NewMemoryFS().Fs, Options{})

	_, err := src.list(context.Background())

	require.ErrorIs(t, err, models.ErrOptionalSourceUnavailable)
	require.ErrorIs(t, err, models.ErrToolNotInstalled)
	require.ErrorIs(t, err, exec.ErrNotFound)
}

func TestNewSource_Defaults(t *testing.T) {
	t.Parallel()

	src := NewSource(nil, nil, Options{})

	assert.Equal(t, DefaultExportDirs(), src.dirs)
	assert.Equal(t, DefaultQueryTimeout, src.timeout)
}
