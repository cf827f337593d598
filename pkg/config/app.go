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

var AppVersion = "DEVELOPMENT"

const (
	AppName = "appvault"
	LogFile = "appvault.log"
	CfgFile = "config.toml"
)
