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
	"strings"
	"testing"

	"pgregory.net/rapid"
)

var segmentPool = []string{
	"libs", "LIBS", "Libs", "doc", "python", "net", "web", "utils",
	"universe", "contrib", "non-free", "libsx", "xlibs", "docs", "",
}

// sectionGen generates slash-delimited sections from realistic segments.
func sectionGen() *rapid.Generator[[]string] {
	return rapid.SliceOfN(rapid.SampledFrom(segmentPool), 1, 4)
}

// TestPropertyBlacklistSegmentMatch verifies a section is excluded iff one
// of its segments case-insensitively equals a blacklist term.
func TestPropertyBlacklistSegmentMatch(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		segments := sectionGen().Draw(t, "segments")
		blacklist := rapid.SliceOfNDistinct(
			rapid.SampledFrom([]string{"libs", "doc", "python", "kernel"}), 0, 4, rapid.ID[string],
		).Draw(t, "blacklist")
		section := strings.Join(segments, "/")

		want := false
		if section != "" {
			for _, seg := range segments {
				for _, term := range blacklist {
					if strings.EqualFold(seg, term) {
						want = true
					}
				}
			}
		}

		if got := IsBlacklisted(section, blacklist); got != want {
			t.Fatalf("IsBlacklisted(%q, %v) = %v, want %v", section, blacklist, got, want)
		}
	})
}

// TestPropertyFilterKeepsOrderAndSubset verifies filtering only removes
// records and never reorders the survivors.
func TestPropertyFilterKeepsOrderAndSubset(t *testing.T) {
	t.Parallel()
	src := NewSource(nil, nil, Options{DesktopDirs: []string{}})
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(t, "n")
		var lines []string
		for i := range n {
			section := strings.Join(sectionGen().Draw(t, "section"), "/")
			lines = append(lines, "pkg"+strings.Repeat("x", i)+" "+section)
		}
		records := ParsePackageList(strings.Join(lines, "\n"))

		filtered := src.FilterApplications(records)

		j := 0
		for _, r := range records {
			if j < len(filtered) && filtered[j] == r {
				j++
			}
		}
		if j != len(filtered) {
			t.Fatalf("filtered records are not an ordered subset")
		}
	})
}
