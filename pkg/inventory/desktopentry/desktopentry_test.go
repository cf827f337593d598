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

package desktopentry

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const firefoxEntry = `[Desktop Entry]
# launcher for the browser
Version=1.0
Name=Firefox Web Browser
Name[de]=Firefox-Webbrowser
Exec=firefox %u --new-window
Icon=firefox
Terminal=false
Type=Application

[Desktop Action new-private-window]
Name=New Private Window
Exec=firefox --private-window %u
`

func writeEntry(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestRead(t *testing.T) {
	t.Parallel()

	t.Run("reads_recognized_keys", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		writeEntry(t, fs, "/usr/share/applications/firefox.desktop", firefoxEntry)

		entry, ok := Read(fs, "/usr/share/applications/firefox.desktop")

		require.True(t, ok)
		assert.Equal(t, "Firefox Web Browser", entry.Name)
		assert.Equal(t, "firefox", entry.Icon)
		assert.Equal(t, "firefox --new-window", entry.Exec)
		require.NotNil(t, entry.Terminal)
		assert.False(t, entry.IsTerminal())
	})

	t.Run("missing_file_yields_empty_entry", func(t *testing.T) {
		t.Parallel()

		entry, ok := Read(afero.NewMemMapFs(), "/nope.desktop")

		assert.False(t, ok)
		assert.Equal(t, Entry{}, entry)
	})

	t.Run("repeated_reads_are_identical", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		writeEntry(t, fs, "/a.desktop", firefoxEntry)

		first, ok1 := Read(fs, "/a.desktop")
		second, ok2 := Read(fs, "/a.desktop")

		assert.True(t, ok1)
		assert.True(t, ok2)
		assert.Equal(t, first, second)
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		terminal *bool
		name     string
		content  string
		wantName string
		wantIcon string
		wantExec string
	}{
		{
			name:     "first_name_wins",
			content:  "[Desktop Entry]\nName=First\nName=Second\n",
			wantName: "First",
		},
		{
			name:     "empty_value_does_not_claim_key",
			content:  "[Desktop Entry]\nIcon=\nIcon=later\n",
			wantIcon: "later",
		},
		{
			name:     "keys_are_case_insensitive",
			content:  "[Desktop Entry]\nNAME=Loud\nicon=quiet\nTERMINAL=TRUE\n",
			wantName: "Loud",
			wantIcon: "quiet",
			terminal: boolPtr(true),
		},
		{
			name:     "comments_and_blank_lines_skipped",
			content:  "# Name=Commented\n\n[Desktop Entry]\n   \nName=Real\n",
			wantName: "Real",
		},
		{
			name:     "garbage_lines_ignored",
			content:  "this is not a key\n[Desktop Entry]\nName=Still Works\n",
			wantName: "Still Works",
		},
		{
			name:     "localized_keys_do_not_shadow_name",
			content:  "[Desktop Entry]\nName[fr]=Navigateur\nName=Browser\n",
			wantName: "Browser",
		},
		{
			name:     "exec_value_may_contain_equals",
			content:  "[Desktop Entry]\nExec=env GDK_BACKEND=x11 app %F\n",
			wantExec: "env GDK_BACKEND=x11 app",
		},
		{
			name:     "invalid_terminal_value_ignored",
			content:  "[Desktop Entry]\nTerminal=maybe\nTerminal=true\n",
			terminal: boolPtr(true),
		},
		{
			name:     "invalid_utf8_dropped",
			content:  "[Desktop Entry]\nName=Caf\xff\xfe\xc3\xa9\n",
			wantName: "Café",
		},
		{
			name:     "leading_backtick_kept_verbatim",
			content:  "[Desktop Entry]\nName=`Foo` Bar\n",
			wantName: "`Foo` Bar",
		},
		{
			name:     "triple_quote_kept_verbatim",
			content:  "[Desktop Entry]\nName=\"\"\"Quoted\"\"\" App\n",
			wantName: `"""Quoted""" App`,
		},
		{
			name:     "unbalanced_backtick_in_other_key",
			content:  "[Desktop Entry]\nComment=`oops\nName=Real\nExec=run\nIcon=x\n",
			wantName: "Real",
			wantIcon: "x",
			wantExec: "run",
		},
		{
			name:    "empty_file",
			content: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entry, err := Parse([]byte(tt.content))

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, entry.Name)
			assert.Equal(t, tt.wantIcon, entry.Icon)
			assert.Equal(t, tt.wantExec, entry.Exec)
			assert.Equal(t, tt.terminal, entry.Terminal)
		})
	}
}

func TestStripFieldCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "firefox %u --new-window", want: "firefox --new-window"},
		{input: "gimp-2.10 %U", want: "gimp-2.10"},
		{input: "  code   --unity-launch %F  ", want: "code --unity-launch"},
		{input: "app %f %F %u %U %d %D %n %N %i %c %k %v %m", want: "app"},
		{input: "printf 100%", want: "printf 100%"},
		{input: "prog --opt=%%u %u", want: "prog --opt=%u"},
		{input: "date +%%H:%%M", want: "date +%H:%M"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StripFieldCodes(tt.input))
		})
	}
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDesktopFile("vlc.desktop"))
	assert.False(t, IsDesktopFile("vlc.desktop.bak"))
	assert.Equal(t, "org.gnome.Maps", Stem("/usr/share/applications/org.gnome.Maps.desktop"))

	dirs := SystemDirs()
	require.Len(t, dirs, 3)
	assert.Equal(t, "/usr/share/applications", dirs[0])
	assert.Equal(t, filepath.Join(xdg.DataHome, "applications"), dirs[2])
}

func boolPtr(b bool) *bool {
	return &b
}
