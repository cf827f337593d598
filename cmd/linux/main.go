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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/appvault/appvault-core/pkg/cli"
	"github.com/appvault/appvault-core/pkg/config"
	"github.com/appvault/appvault-core/pkg/helpers/command"
	"github.com/appvault/appvault-core/pkg/inventory/actions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrAborted) {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags()
	flags.Pre()

	var logWriters []io.Writer
	if *flags.Debug {
		logWriters = []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}
	}

	cfg := cli.Setup(
		config.BaseDefaults,
		logWriters,
	)
	if *flags.Debug {
		cfg.SetDebugLogging(true)
	}

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exec := &command.RealExecutor{}
	app := &cli.App{
		Builder: cli.NewBuilder(cfg, exec, afero.NewOsFs()),
		Runner:  actions.NewRunner(exec),
		Out:     os.Stdout,
		ErrOut:  os.Stderr,
		In:      os.Stdin,
	}
	return app.Run(ctx, flags.Options())
}
