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
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/appvault/appvault-core/pkg/config"
	"github.com/appvault/appvault-core/pkg/helpers"
	"github.com/appvault/appvault-core/pkg/helpers/command"
	"github.com/appvault/appvault-core/pkg/inventory/catalog"
	"github.com/appvault/appvault-core/pkg/inventory/dpkg"
	"github.com/appvault/appvault-core/pkg/inventory/flatpak"
	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/appvault/appvault-core/pkg/inventory/snap"
	"github.com/appvault/appvault-core/pkg/inventory/standalone"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

type Flags struct {
	Version   *bool
	Debug     *bool
	Yes       *bool
	Format    *string
	Search    *string
	Suggest   *string
	Launch    *string
	Uninstall *string
}

// SetupFlags defines all CLI flags on the default flag set.
func SetupFlags() *Flags {
	return &Flags{
		Version: flag.Bool(
			"version",
			false,
			"print version and exit",
		),
		Debug: flag.Bool(
			"debug",
			false,
			"enable debug logging on stderr",
		),
		Yes: flag.Bool(
			"yes",
			false,
			"do not ask for confirmation before uninstalling",
		),
		Format: flag.String(
			"format",
			FormatText,
			"output format: text, json, yaml or csv",
		),
		Search: flag.String(
			"search",
			"",
			"list entries whose name contains the value",
		),
		Suggest: flag.String(
			"suggest",
			"",
			"list entries with a name similar to the value",
		),
		Launch: flag.String(
			"launch",
			"",
			"launch an entry given as kind:id, e.g. flatpak:org.gimp.GIMP",
		),
		Uninstall: flag.String(
			"uninstall",
			"",
			"uninstall an entry given as kind:id, e.g. package:vlc",
		),
	}
}

// Pre runs flag parsing and actions any immediate flags that don't
// require environment setup. Add any custom flags before running this.
func (f *Flags) Pre() {
	flag.Parse()

	if *f.Version {
		_, _ = fmt.Printf("AppVault v%s\n", config.AppVersion)
		os.Exit(0)
	}
}

// Options converts the parsed flags for Run.
func (f *Flags) Options() Options {
	return Options{
		Format:    *f.Format,
		Search:    *f.Search,
		Suggest:   *f.Suggest,
		Launch:    *f.Launch,
		Uninstall: *f.Uninstall,
		Yes:       *f.Yes,
	}
}

// Setup initializes the user config and logging. Returns a user config object.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	defaultConfig config.Values,
	writers []io.Writer,
) *config.Instance {
	// Ensure directories exist before logging initialization
	err := helpers.EnsureDirectories(helpers.ConfigDir(), helpers.LogDir())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error creating directories: %v\n", err)
		os.Exit(1)
	}

	err = helpers.InitLogging(helpers.LogDir(), writers)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(helpers.ConfigDir(), defaultConfig)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return cfg
}

// NewBuilder wires every package source from the user config.
func NewBuilder(cfg *config.Instance, exec command.Executor, fs afero.Fs) *catalog.Builder {
	timeout := cfg.ScanQueryTimeout()
	dirs := cfg.ScanDesktopDirs()

	src := catalog.Sources{
		System: dpkg.NewSource(exec, fs, dpkg.Options{
			Blacklist:    cfg.ScanBlacklist(),
			DesktopDirs:  dirs,
			Workers:      cfg.ScanWorkers(),
			QueryTimeout: timeout,
		}),
		Standalone: standalone.NewFinder(fs, dirs),
	}
	if cfg.FlatpakEnabled() {
		src.Flatpak = flatpak.NewSource(exec, fs, flatpak.Options{QueryTimeout: timeout})
	}
	if cfg.SnapEnabled() {
		src.Snap = snap.NewSource(exec, fs, snap.Options{QueryTimeout: timeout})
	}
	return catalog.NewBuilder(src)
}

// ParseTarget splits a "kind:id" flag value.
func ParseTarget(s string) (models.Kind, string, error) {
	kind, id, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(id) == "" {
		return "", "", fmt.Errorf("invalid target %q, expected kind:id", s)
	}
	k, err := models.ParseKind(kind)
	if err != nil {
		return "", "", err
	}
	return k, strings.TrimSpace(id), nil
}
