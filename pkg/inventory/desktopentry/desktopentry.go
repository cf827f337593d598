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

// Package desktopentry reads freedesktop.org launcher files.
//
// Parsing is best effort: unreadable files and unknown lines never fail a
// scan, they only leave fields empty. For every recognized key the first
// non-empty occurrence in the file wins, across all groups.
package desktopentry

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// Suffix is the file extension of desktop entries.
const Suffix = ".desktop"

var fieldCodeRe = regexp.MustCompile(`%[fFuUdDnNickvm%]`)

// valueGuard is prepended to every value before it reaches the ini reader,
// which would otherwise treat values opening with a backtick or triple
// quote as quoted strings.
const valueGuard = "\x00"

var loadOptions = ini.LoadOptions{
	AllowShadows:            true,
	InsensitiveKeys:         true,
	SkipUnrecognizableLines: true,
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
	KeyValueDelimiters:      "=",
}

// Entry is the subset of a desktop entry the inventory uses.
type Entry struct {
	Terminal *bool
	Name     string
	Icon     string
	Exec     string
}

// IsTerminal reports whether the entry declares Terminal=true.
func (e Entry) IsTerminal() bool {
	return e.Terminal != nil && *e.Terminal
}

// SystemDirs returns the well-known launcher directories: system-wide,
// local-system and per-user, in that order.
func SystemDirs() []string {
	return []string{
		"/usr/share/applications",
		"/usr/local/share/applications",
		filepath.Join(xdg.DataHome, "applications"),
	}
}

// IsDesktopFile reports whether name has the desktop entry suffix.
func IsDesktopFile(name string) bool {
	return strings.HasSuffix(name, Suffix)
}

// Stem returns the file name without directory and suffix.
func Stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Suffix)
}

// Read parses the desktop entry at path. ok is false when the file could
// not be read or parsed; the returned Entry is then empty.
func Read(fs afero.Fs, path string) (Entry, bool) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("unreadable desktop entry")
		return Entry{}, false
	}
	entry, err := Parse(data)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("malformed desktop entry")
		return Entry{}, false
	}
	return entry, true
}

// Parse decodes desktop entry content. Invalid UTF-8 is dropped.
func Parse(data []byte) (Entry, error) {
	clean := strings.ToValidUTF8(string(data), "")
	f, err := ini.LoadSources(loadOptions, []byte(guardValues(clean)))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", models.ErrEnrichmentFailed, err)
	}

	var entry Entry
	for _, sec := range f.Sections() {
		for _, key := range sec.Keys() {
			for _, value := range key.ValueWithShadows() {
				value = strings.TrimPrefix(value, valueGuard)
				entry.apply(key.Name(), strings.TrimSpace(value))
			}
		}
	}
	return entry, nil
}

// guardValues marks the start of the value on every Key=Value line so the
// rest of the line is taken verbatim.
func guardValues(content string) string {
	var b strings.Builder
	b.Grow(len(content))
	for line := range strings.Lines(content) {
		trimmed := strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") ||
			strings.HasPrefix(trimmed, "[") {
			b.WriteString(line)
			continue
		}
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(valueGuard)
		b.WriteString(value)
	}
	return b.String()
}

func (e *Entry) apply(key, value string) {
	if value == "" {
		return
	}
	switch key {
	case "name":
		if e.Name == "" {
			e.Name = value
		}
	case "icon":
		if e.Icon == "" {
			e.Icon = value
		}
	case "exec":
		if e.Exec == "" {
			e.Exec = StripFieldCodes(value)
		}
	case "terminal":
		if e.Terminal != nil {
			return
		}
		switch strings.ToLower(value) {
		case "true":
			v := true
			e.Terminal = &v
		case "false":
			v := false
			e.Terminal = &v
		}
	}
}

// StripFieldCodes removes %-placeholders from an Exec value and collapses
// whitespace so the result can be used as a launch command. The escape %%
// becomes a literal percent sign.
func StripFieldCodes(exec string) string {
	stripped := fieldCodeRe.ReplaceAllStringFunc(exec, func(code string) string {
		if code == "%%" {
			return "%"
		}
		return ""
	})
	return strings.Join(strings.Fields(stripped), " ")
}
