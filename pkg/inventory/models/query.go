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
	"cmp"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
)

// DefaultMinSimilarity is the Jaro-Winkler score a suggestion must reach.
const DefaultMinSimilarity = 0.75

// Entries returns every item of the catalog as an Entry, ordered by
// display name. The entries point into the catalog.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, 0, len(c.DesktopApps)+len(c.CLIApps)+len(c.Flatpaks)+len(c.Snaps))
	for i := range c.DesktopApps {
		entries = append(entries, PackageEntry(&c.DesktopApps[i]))
	}
	for i := range c.CLIApps {
		entries = append(entries, PackageEntry(&c.CLIApps[i]))
	}
	for i := range c.Flatpaks {
		entries = append(entries, FlatpakEntry(&c.Flatpaks[i]))
	}
	for i := range c.Snaps {
		entries = append(entries, SnapEntry(&c.Snaps[i]))
	}
	SortEntries(entries)
	return entries
}

// Search returns the entries whose display name contains query, ignoring
// case. An empty query matches everything.
func (c *Catalog) Search(query string) []Entry {
	entries := c.Entries()
	q := FoldName(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	return slices.DeleteFunc(entries, func(e Entry) bool {
		return !strings.Contains(FoldName(e.DisplayName()), q)
	})
}

// Suggest returns up to limit entries whose display name is close to
// query, best match first. It is meant for "did you mean" hints when
// Search finds nothing. A limit of zero or less means no limit.
func (c *Catalog) Suggest(query string, limit int) []Entry {
	q := FoldName(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	type scored struct {
		entry Entry
		score float32
	}
	var matches []scored
	for _, e := range c.Entries() {
		score := edlib.JaroWinklerSimilarity(q, FoldName(e.DisplayName()))
		if score >= DefaultMinSimilarity {
			matches = append(matches, scored{entry: e, score: score})
		}
	}
	// Stable: equal scores keep display name order.
	slices.SortStableFunc(matches, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	result := make([]Entry, len(matches))
	for i, m := range matches {
		result[i] = m.entry
	}
	return result
}

// Lookup finds the entry of the given kind by the ID its tooling uses.
func (c *Catalog) Lookup(kind Kind, id string) (Entry, bool) {
	for _, e := range c.Entries() {
		if e.Kind == kind && e.ID() == id {
			return e, true
		}
	}
	return Entry{}, false
}
