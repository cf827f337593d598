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

package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missingCommand = "nonexistent_command_that_should_not_exist_12345"

func TestRealExecutor_Run(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("executes_successful_command", func(t *testing.T) {
		t.Parallel()

		err := executor.Run(context.Background(), "true")

		assert.NoError(t, err)
	})

	t.Run("returns_error_for_failed_command", func(t *testing.T) {
		t.Parallel()

		err := executor.Run(context.Background(), "false")

		assert.Error(t, err)
	})

	t.Run("returns_error_for_nonexistent_command", func(t *testing.T) {
		t.Parallel()

		err := executor.Run(context.Background(), missingCommand)

		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}

func TestRealExecutor_Output(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("returns_stdout", func(t *testing.T) {
		t.Parallel()

		out, err := executor.Output(context.Background(), "echo", "hello")

		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(out))
	})

	t.Run("captures_stderr_on_failure", func(t *testing.T) {
		t.Parallel()

		_, err := executor.Output(context.Background(), "sh", "-c", "echo broken >&2; exit 3")

		require.Error(t, err)
		assert.Equal(t, "broken", StderrOf(err))
	})
}

func TestRealExecutor_Exec(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("reports_exit_code_and_streams", func(t *testing.T) {
		t.Parallel()

		res, err := executor.Exec(context.Background(), "sh", "-c", "echo out; echo err >&2; exit 4")

		require.Error(t, err)
		assert.Equal(t, 4, res.ExitCode)
		assert.Equal(t, "out\n", res.Stdout)
		assert.Equal(t, "err\n", res.Stderr)
	})

	t.Run("zero_exit_code_on_success", func(t *testing.T) {
		t.Parallel()

		res, err := executor.Exec(context.Background(), "true")

		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
	})

	t.Run("negative_exit_code_when_not_started", func(t *testing.T) {
		t.Parallel()

		res, err := executor.Exec(context.Background(), missingCommand)

		require.Error(t, err)
		assert.Equal(t, -1, res.ExitCode)
	})
}

func TestRealExecutor_Start(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("starts_command_without_waiting", func(t *testing.T) {
		t.Parallel()

		err := executor.Start(context.Background(), "true")

		assert.NoError(t, err)
	})

	t.Run("returns_error_for_nonexistent_command", func(t *testing.T) {
		t.Parallel()

		err := executor.Start(context.Background(), missingCommand)

		require.Error(t, err)
	})
}

func TestRealExecutor_StartWithOptions(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("starts_detached_command", func(t *testing.T) {
		t.Parallel()

		err := executor.StartWithOptions(context.Background(), StartOptions{Detach: true}, "true")

		assert.NoError(t, err)
	})

	t.Run("starts_attached_command", func(t *testing.T) {
		t.Parallel()

		err := executor.StartWithOptions(context.Background(), StartOptions{}, "true")

		assert.NoError(t, err)
	})

	t.Run("returns_error_for_nonexistent_command", func(t *testing.T) {
		t.Parallel()

		err := executor.StartWithOptions(context.Background(), StartOptions{Detach: true}, missingCommand)

		require.Error(t, err)
	})
}

func TestExecutor_Interface(t *testing.T) {
	t.Parallel()

	var _ Executor = (*RealExecutor)(nil)
}
