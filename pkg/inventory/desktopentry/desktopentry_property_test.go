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
	"strings"
	"testing"
	"unicode"

	"pgregory.net/rapid"
)

var fieldCodes = []string{"%f", "%F", "%u", "%U", "%d", "%D", "%n", "%N", "%i", "%c", "%k", "%v", "%m"}

// wordGen generates command words that contain no percent signs.
func wordGen() *rapid.Generator[string] {
	chars := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_./=:")
	return rapid.StringOfN(rapid.SampledFrom(chars), 1, 12, -1)
}

// TestPropertyStripFieldCodesRemovesPlaceholders verifies interleaved field
// codes vanish and only the plain words remain, single-spaced.
func TestPropertyStripFieldCodesRemovesPlaceholders(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(wordGen(), 1, 8).Draw(t, "words")
		var parts []string
		for _, w := range words {
			parts = append(parts, w)
			if rapid.Bool().Draw(t, "code") {
				parts = append(parts, rapid.SampledFrom(fieldCodes).Draw(t, "fieldCode"))
			}
		}
		sep := rapid.SampledFrom([]string{" ", "  ", "\t", " \t "}).Draw(t, "sep")

		got := StripFieldCodes(strings.Join(parts, sep))

		want := strings.Join(words, " ")
		if got != want {
			t.Fatalf("StripFieldCodes = %q, want %q", got, want)
		}
	})
}

// TestPropertyStripFieldCodesWhitespace verifies the output never has
// leading, trailing or repeated whitespace.
func TestPropertyStripFieldCodesWhitespace(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")

		got := StripFieldCodes(input)

		if got != strings.TrimSpace(got) {
			t.Fatalf("untrimmed output %q", got)
		}
		prevSpace := false
		for _, r := range got {
			isSpace := unicode.IsSpace(r)
			if isSpace && (prevSpace || r != ' ') {
				t.Fatalf("unnormalized whitespace in %q", got)
			}
			prevSpace = isSpace
		}
	})
}

// TestPropertyParseFirstNameWins verifies the first Name line always wins.
func TestPropertyParseFirstNameWins(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfN(wordGen(), 1, 5).Draw(t, "names")
		var b strings.Builder
		b.WriteString("[Desktop Entry]\n")
		for _, n := range names {
			b.WriteString("Name=" + n + "\n")
		}

		entry, err := Parse([]byte(b.String()))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if entry.Name != names[0] {
			t.Fatalf("Name = %q, want %q", entry.Name, names[0])
		}
	})
}
