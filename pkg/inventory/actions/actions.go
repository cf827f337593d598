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

// Package actions launches and uninstalls catalog entries.
package actions

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/appvault/appvault-core/pkg/helpers/command"
	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/rs/zerolog/log"
)

// Action names used in ActionError.
const (
	ActionLaunch    = "launch"
	ActionUninstall = "uninstall"
)

// Runner executes entry commands. Nothing is retried.
type Runner struct {
	exec command.Executor
}

// NewRunner returns a Runner that starts processes through exec.
func NewRunner(exec command.Executor) *Runner {
	return &Runner{exec: exec}
}

// Launch starts the entry detached from the caller and returns as soon as
// the process is running. Output is not captured.
func (r *Runner) Launch(ctx context.Context, e models.Entry) error {
	argv, err := e.LaunchCommand()
	if err != nil {
		return err
	}

	log.Info().Str("kind", string(e.Kind)).Str("id", e.ID()).Strs("argv", argv).Msg("launching")
	err = r.exec.StartWithOptions(ctx, command.StartOptions{Detach: true}, argv[0], argv[1:]...)
	if err != nil {
		return &models.ActionError{
			Action: ActionLaunch,
			Target: e.ID(),
			Result: command.Result{ExitCode: -1},
			Err:    err,
		}
	}
	return nil
}

// Uninstall runs the entry's removal command to completion and returns
// its result verbatim. A non-zero exit is reported as an ActionError
// carrying the same result.
func (r *Runner) Uninstall(ctx context.Context, e models.Entry) (command.Result, error) {
	argv, err := e.UninstallCommand()
	if err != nil {
		return command.Result{}, err
	}

	log.Info().Str("kind", string(e.Kind)).Str("id", e.ID()).Strs("argv", argv).Msg("uninstalling")
	res, err := r.exec.Exec(ctx, argv[0], argv[1:]...)
	if err == nil && res.ExitCode == 0 {
		return res, nil
	}

	actionErr := &models.ActionError{
		Action: ActionUninstall,
		Target: e.ID(),
		Result: res,
	}
	// A plain non-zero exit is described by the exit code alone.
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		actionErr.Err = err
	}
	log.Warn().
		Err(actionErr).
		Int("exitCode", res.ExitCode).
		Str("stderr", strings.TrimSpace(res.Stderr)).
		Msg("uninstall failed")
	return res, actionErr
}
