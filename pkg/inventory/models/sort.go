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
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

type keyed[T any] struct {
	item T
	key  string
}

// sortFolded orders items by the Unicode case-folded name, breaking ties
// with tie so the result never depends on the input order.
func sortFolded[T any](items []T, name func(*T) string, tie func(a, b *T) int) {
	caser := cases.Fold()
	ks := make([]keyed[T], len(items))
	for i := range items {
		ks[i] = keyed[T]{item: items[i], key: caser.String(name(&items[i]))}
	}
	slices.SortStableFunc(ks, func(a, b keyed[T]) int {
		if c := strings.Compare(a.key, b.key); c != 0 {
			return c
		}
		return tie(&a.item, &b.item)
	})
	for i := range ks {
		items[i] = ks[i].item
	}
}

// FoldName returns the case-insensitive comparison key for a display name.
func FoldName(s string) string {
	return cases.Fold().String(s)
}

func firstPath(c *CategorizedPackage) string {
	if len(c.DesktopFiles) == 0 {
		return ""
	}
	return c.DesktopFiles[0]
}

// SortPackages sorts by case-insensitive package name.
func SortPackages(pkgs []CategorizedPackage) {
	sortFolded(pkgs,
		func(c *CategorizedPackage) string { return c.Package.Name },
		func(a, b *CategorizedPackage) int {
			if c := strings.Compare(a.Package.Name, b.Package.Name); c != 0 {
				return c
			}
			if c := strings.Compare(a.Package.Section, b.Package.Section); c != 0 {
				return c
			}
			return strings.Compare(firstPath(a), firstPath(b))
		})
}

// SortFlatpaks sorts by case-insensitive display name, falling back to the app ID.
func SortFlatpaks(apps []FlatpakApp) {
	sortFolded(apps,
		func(f *FlatpakApp) string { return f.DisplayName() },
		func(a, b *FlatpakApp) int {
			if c := strings.Compare(a.DisplayName(), b.DisplayName()); c != 0 {
				return c
			}
			return strings.Compare(a.AppID, b.AppID)
		})
}

// SortSnaps sorts by case-insensitive snap name.
func SortSnaps(apps []SnapApp) {
	sortFolded(apps,
		func(s *SnapApp) string { return s.Name },
		func(a, b *SnapApp) int {
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return strings.Compare(a.Revision, b.Revision)
		})
}

// SortEntries orders mixed entries by display name, then kind, then ID.
func SortEntries(entries []Entry) {
	sortFolded(entries,
		func(e *Entry) string { return e.DisplayName() },
		func(a, b *Entry) int {
			if c := strings.Compare(a.DisplayName(), b.DisplayName()); c != 0 {
				return c
			}
			if c := strings.Compare(string(a.Kind), string(b.Kind)); c != 0 {
				return c
			}
			return strings.Compare(a.ID(), b.ID())
		})
}
