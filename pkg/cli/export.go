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

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Row is the flat form of an Entry used by the list exporters.
type Row struct {
	Kind        string `json:"kind" yaml:"kind" csv:"kind"`
	ID          string `json:"id" yaml:"id" csv:"id"`
	Name        string `json:"name" yaml:"name" csv:"name"`
	Label       string `json:"label" yaml:"label" csv:"label"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty" csv:"icon"`
	DesktopFile string `json:"desktopFile,omitempty" yaml:"desktopFile,omitempty" csv:"desktop_file"`
	Launch      string `json:"launch,omitempty" yaml:"launch,omitempty" csv:"launch"`
	Uninstall   string `json:"uninstall,omitempty" yaml:"uninstall,omitempty" csv:"uninstall"`
}

// NewRow flattens e. Commands the entry does not support are left empty.
func NewRow(e models.Entry) Row {
	row := Row{
		Kind:  string(e.Kind),
		ID:    e.ID(),
		Name:  e.DisplayName(),
		Label: e.Label(),
		Icon:  e.Icon(),
	}
	switch e.Kind {
	case models.KindPackage:
		if len(e.Package.DesktopFiles) > 0 {
			row.DesktopFile = e.Package.DesktopFiles[0]
		}
	case models.KindFlatpak:
		row.DesktopFile = e.Flatpak.DesktopFile
	case models.KindSnap:
		row.DesktopFile = e.Snap.DesktopFile
	}
	if argv, err := e.LaunchCommand(); err == nil {
		row.Launch = strings.Join(argv, " ")
	}
	if argv, err := e.UninstallCommand(); err == nil {
		row.Uninstall = strings.Join(argv, " ")
	}
	return row
}

func validFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML, FormatCSV:
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// ExportCatalog writes the whole catalog. JSON and YAML keep the bucket
// structure; text and CSV list one entry per line.
func ExportCatalog(w io.Writer, format string, cat *models.Catalog) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, cat)
	case FormatYAML:
		return writeYAML(w, cat)
	case FormatCSV:
		return ExportEntries(w, format, cat.Entries())
	case FormatText:
		return writeCatalogText(w, cat)
	default:
		return validFormat(format)
	}
}

// ExportEntries writes a list of entries, e.g. search results.
func ExportEntries(w io.Writer, format string, entries []models.Entry) error {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = NewRow(e)
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatYAML:
		return writeYAML(w, rows)
	case FormatCSV:
		if err := gocsv.Marshal(rows, w); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
		return nil
	case FormatText:
		for i := range rows {
			if _, err := fmt.Fprintf(w, "%-8s %s\n", rows[i].Kind, rows[i].Label); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	default:
		return validFormat(format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	return nil
}

func writeCatalogText(w io.Writer, cat *models.Catalog) error {
	var b strings.Builder
	section := func(title string, n int) {
		fmt.Fprintf(&b, "%s (%d)\n", title, n)
	}

	section("Desktop applications", len(cat.DesktopApps))
	for i := range cat.DesktopApps {
		p := &cat.DesktopApps[i]
		line := "  " + p.Label()
		if p.Terminal != nil && *p.Terminal {
			line += " (terminal)"
		}
		b.WriteString(line + "\n")
	}
	section("Command line applications", len(cat.CLIApps))
	for i := range cat.CLIApps {
		b.WriteString("  " + cat.CLIApps[i].Label() + "\n")
	}
	section("Flatpak applications", len(cat.Flatpaks))
	for i := range cat.Flatpaks {
		b.WriteString("  " + cat.Flatpaks[i].Label() + "\n")
	}
	section("Snap packages", len(cat.Snaps))
	for i := range cat.Snaps {
		b.WriteString("  " + cat.Snaps[i].Label() + "\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
