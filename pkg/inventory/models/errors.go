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
	"errors"
	"fmt"

	"github.com/appvault/appvault-core/pkg/helpers/command"
)

var (
	// ErrQuerySourceUnavailable means the system package database could not
	// be queried. It is the only scan-level error.
	ErrQuerySourceUnavailable = errors.New("package query source unavailable")

	// ErrOptionalSourceUnavailable means Flatpak or Snap tooling is missing
	// or broken. Sources degrade to an empty result on it.
	ErrOptionalSourceUnavailable = errors.New("optional package source unavailable")

	// ErrToolNotInstalled narrows ErrOptionalSourceUnavailable to a
	// missing flatpak or snap executable.
	ErrToolNotInstalled = errors.New("package tool not installed")

	// ErrEnrichmentFailed marks a single item whose ownership query or
	// desktop entry could not be read.
	ErrEnrichmentFailed = errors.New("item enrichment failed")

	// ErrActionExecutionFailure is wrapped by every ActionError.
	ErrActionExecutionFailure = errors.New("action execution failed")

	// ErrUnsupportedAction is returned when an entry has no command for
	// the requested action, e.g. uninstalling a standalone launcher.
	ErrUnsupportedAction = errors.New("action not supported for entry")
)

// SourceError describes a failed query against a package source.
type SourceError struct {
	Err    error
	Source string
	Stderr string
}

func (e *SourceError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Source, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ActionError reports a launch or uninstall that could not be started or
// exited non-zero. Result holds the captured process output verbatim.
type ActionError struct {
	Err    error
	Action string
	Target string
	Result command.Result
}

func (e *ActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Action, e.Target, e.Err)
	}
	return fmt.Sprintf("%s %s: exit code %d", e.Action, e.Target, e.Result.ExitCode)
}

func (e *ActionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrActionExecutionFailure}
	}
	return []error{ErrActionExecutionFailure, e.Err}
}

// Output returns stderr, falling back to stdout, for display.
func (e *ActionError) Output() string {
	if e.Result.Stderr != "" {
		return e.Result.Stderr
	}
	return e.Result.Stdout
}
