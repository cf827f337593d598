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

package fixtures

// Common command output and launcher fixtures describing one small host:
// a browser and a terminal tool from dpkg, a library that the blacklist
// removes, a vendor launcher no package owns, one Flatpak and one snap.

const (
	// SystemApps is the launcher directory the fixtures populate.
	SystemApps = "/usr/share/applications"

	// DpkgQueryOutput is "dpkg-query -W" output for the fixture host.
	DpkgQueryOutput = "firefox-esr web\nhtop utils\ncurl web\nlibgtk-3-0 libs\n"

	// FlatpakListOutput is "flatpak list --app --columns=application,origin" output.
	FlatpakListOutput = "org.gimp.GIMP\tflathub\n"

	// SnapListOutput is "snap list" output.
	SnapListOutput = "Name     Version    Rev   Publisher   Notes\n" +
		"hello    2.10       38    canonical✓  -\n"
)

// DpkgOwnership maps each package to its "dpkg -L" output.
var DpkgOwnership = map[string]string{
	"firefox-esr": "/usr/lib/firefox-esr/firefox-esr\n" + SystemApps + "/firefox-esr.desktop\n",
	"htop":        "/usr/bin/htop\n/usr/share/man/man1/htop.1.gz\n",
	"curl":        "/usr/bin/curl\n",
}

// LauncherFiles are the desktop files on the fixture host, keyed by path.
var LauncherFiles = map[string]string{
	SystemApps + "/firefox-esr.desktop": "[Desktop Entry]\nName=Firefox ESR\n" +
		"Exec=/usr/lib/firefox-esr/firefox-esr %u\nIcon=firefox-esr\nTerminal=false\n",
	SystemApps + "/htop.desktop": "[Desktop Entry]\nName=Htop\nExec=htop\nTerminal=true\n",
	SystemApps + "/vendor-tool.desktop": "[Desktop Entry]\nName=Vendor Tool\n" +
		"Exec=\"/opt/Vendor Tool/run\" --gui\n",
}
