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

package models

import (
	"fmt"

	"github.com/mattn/go-shellwords"
)

// Kind tags which record an Entry carries.
type Kind string

const (
	KindPackage Kind = "package"
	KindFlatpak Kind = "flatpak"
	KindSnap    Kind = "snap"
)

// ParseKind accepts the names used on the command line.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPackage, "pkg", "deb":
		return KindPackage, nil
	case KindFlatpak:
		return KindFlatpak, nil
	case KindSnap:
		return KindSnap, nil
	default:
		return "", fmt.Errorf("unknown entry kind: %q", s)
	}
}

// Entry is one catalog item of any kind. Exactly one of the record
// pointers is set, matching Kind.
type Entry struct {
	Package *CategorizedPackage
	Flatpak *FlatpakApp
	Snap    *SnapApp
	Kind    Kind
}

func PackageEntry(p *CategorizedPackage) Entry {
	return Entry{Kind: KindPackage, Package: p}
}

func FlatpakEntry(f *FlatpakApp) Entry {
	return Entry{Kind: KindFlatpak, Flatpak: f}
}

func SnapEntry(s *SnapApp) Entry {
	return Entry{Kind: KindSnap, Snap: s}
}

// ID is the identifier the entry's own tooling knows it by.
func (e Entry) ID() string {
	switch e.Kind {
	case KindPackage:
		return e.Package.Package.Name
	case KindFlatpak:
		return e.Flatpak.AppID
	case KindSnap:
		return e.Snap.Name
	}
	return ""
}

// DisplayName is the name entries are sorted and searched by.
func (e Entry) DisplayName() string {
	switch e.Kind {
	case KindPackage:
		return e.Package.Package.Name
	case KindFlatpak:
		return e.Flatpak.DisplayName()
	case KindSnap:
		return e.Snap.Name
	}
	return ""
}

// Label is the caption shown next to the entry in lists.
func (e Entry) Label() string {
	switch e.Kind {
	case KindPackage:
		return e.Package.Label()
	case KindFlatpak:
		return e.Flatpak.Label()
	case KindSnap:
		return e.Snap.Label()
	}
	return ""
}

// Icon is the icon name or path from the entry's desktop file, if any.
func (e Entry) Icon() string {
	switch e.Kind {
	case KindPackage:
		return e.Package.Icon
	case KindFlatpak:
		return e.Flatpak.Icon
	case KindSnap:
		return e.Snap.Icon
	}
	return ""
}

// LaunchCommand resolves the argv that starts the entry. Packages use the
// desktop Exec line with shell word splitting, falling back to sh -c when
// the line does not split cleanly.
func (e Entry) LaunchCommand() ([]string, error) {
	switch e.Kind {
	case KindPackage:
		if e.Package.Exec == "" {
			return nil, fmt.Errorf("%w: %s has no launcher", ErrUnsupportedAction, e.ID())
		}
		args, err := shellwords.Parse(e.Package.Exec)
		if err != nil || len(args) == 0 {
			return []string{"sh", "-c", e.Package.Exec}, nil
		}
		return args, nil
	case KindFlatpak:
		return []string{"flatpak", "run", e.Flatpak.AppID}, nil
	case KindSnap:
		return []string{"snap", "run", e.Snap.Name}, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrUnsupportedAction, e.Kind)
}

// UninstallCommand resolves the argv that removes the entry from the system.
// Standalone launchers belong to no package and cannot be removed.
func (e Entry) UninstallCommand() ([]string, error) {
	switch e.Kind {
	case KindPackage:
		if e.Package.Package.Standalone() {
			return nil, fmt.Errorf("%w: %s is not managed by a package", ErrUnsupportedAction, e.ID())
		}
		return []string{"pkexec", "apt-get", "autoremove", "--purge", "-y", e.Package.Package.Name}, nil
	case KindFlatpak:
		return []string{"flatpak", "uninstall", "--delete-data", "-y", e.Flatpak.AppID}, nil
	case KindSnap:
		return []string{"pkexec", "snap", "remove", "--purge", e.Snap.Name}, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrUnsupportedAction, e.Kind)
}
