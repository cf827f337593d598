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

package config

import (
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

type Scanner struct {
	Flatpak      *bool    `toml:"flatpak,omitempty"`
	Snap         *bool    `toml:"snap,omitempty"`
	QueryTimeout string   `toml:"query_timeout,omitempty" validate:"omitempty,duration"`
	Blacklist    []string `toml:"blacklist,omitempty,multiline" validate:"dive,required"`
	DesktopDirs  []string `toml:"desktop_dirs,omitempty,multiline" validate:"dive,required,startswith=/"`
	Workers      int      `toml:"workers,omitempty" validate:"gte=0,lte=256"`
}

// ScanBlacklist returns the configured section blacklist, or nil to use
// the built-in one.
func (c *Instance) ScanBlacklist() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Scanner.Blacklist)
}

// ScanDesktopDirs returns the configured launcher directories, or nil to
// use the standard locations.
func (c *Instance) ScanDesktopDirs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Scanner.DesktopDirs)
}

// ScanWorkers returns the ownership query pool size. Zero selects the
// default.
func (c *Instance) ScanWorkers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Scanner.Workers
}

func (c *Instance) SetScanWorkers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Scanner.Workers = n
}

// ScanQueryTimeout returns the per-query timeout. Zero selects the
// default.
func (c *Instance) ScanQueryTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Scanner.QueryTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.vals.Scanner.QueryTimeout)
	if err != nil {
		log.Warn().Msgf("invalid query timeout: %s", c.vals.Scanner.QueryTimeout)
		return 0
	}
	return d
}

// FlatpakEnabled defaults to true.
func (c *Instance) FlatpakEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Scanner.Flatpak == nil {
		return true
	}
	return *c.vals.Scanner.Flatpak
}

// SnapEnabled defaults to true.
func (c *Instance) SnapEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Scanner.Snap == nil {
		return true
	}
	return *c.vals.Scanner.Snap
}
