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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/appvault/appvault-core/pkg/inventory/actions"
	"github.com/appvault/appvault-core/pkg/inventory/catalog"
	"github.com/appvault/appvault-core/pkg/inventory/models"
	"github.com/rs/zerolog/log"
)

const suggestLimit = 5

// ErrAborted is returned when the user declines a confirmation prompt.
var ErrAborted = errors.New("aborted by user")

// Options select what Run does after the scan. At most one of Search,
// Suggest, Launch and Uninstall is expected; the first set one wins.
type Options struct {
	Format    string
	Search    string
	Suggest   string
	Launch    string
	Uninstall string
	Yes       bool
}

// App is the command line front end over a catalog builder.
type App struct {
	Builder *catalog.Builder
	Runner  *actions.Runner
	Out     io.Writer
	ErrOut  io.Writer
	In      io.Reader
}

// Run scans the system and then prints, searches, launches or uninstalls.
// A failed system package query is reported but the remaining sources
// are still printed; the error is returned afterwards. An interrupted scan
// prints nothing.
func (a *App) Run(ctx context.Context, opts Options) error {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if err := validFormat(opts.Format); err != nil {
		return err
	}

	cat, scanErr := a.Builder.Build(ctx)
	if scanErr != nil {
		if cat == nil || ctx.Err() != nil {
			return fmt.Errorf("scan failed: %w", scanErr)
		}
		_, _ = fmt.Fprintf(a.ErrOut, "Warning: system packages unavailable: %v\n", scanErr)
	}

	var err error
	switch {
	case opts.Launch != "":
		err = a.launch(ctx, cat, opts.Launch)
	case opts.Uninstall != "":
		err = a.uninstall(ctx, cat, opts.Uninstall, opts.Yes)
	case opts.Search != "":
		err = a.search(cat, opts.Format, opts.Search)
	case opts.Suggest != "":
		err = ExportEntries(a.Out, opts.Format, cat.Suggest(opts.Suggest, suggestLimit))
	default:
		err = ExportCatalog(a.Out, opts.Format, cat)
	}
	if err != nil {
		return err
	}
	return scanErr
}

func (a *App) search(cat *models.Catalog, format, query string) error {
	found := cat.Search(query)
	if len(found) > 0 || format != FormatText {
		return ExportEntries(a.Out, format, found)
	}

	_, _ = fmt.Fprintf(a.Out, "No entries match %q.\n", query)
	if hints := cat.Suggest(query, suggestLimit); len(hints) > 0 {
		_, _ = fmt.Fprintln(a.Out, "Did you mean:")
		return ExportEntries(a.Out, format, hints)
	}
	return nil
}

func (*App) lookup(cat *models.Catalog, target string) (models.Entry, error) {
	kind, id, err := ParseTarget(target)
	if err != nil {
		return models.Entry{}, err
	}
	e, ok := cat.Lookup(kind, id)
	if !ok {
		return models.Entry{}, fmt.Errorf("no %s named %q is installed", kind, id)
	}
	return e, nil
}

func (a *App) launch(ctx context.Context, cat *models.Catalog, target string) error {
	e, err := a.lookup(cat, target)
	if err != nil {
		return err
	}
	if err := a.Runner.Launch(ctx, e); err != nil {
		return fmt.Errorf("failed to launch %s: %w", e.DisplayName(), err)
	}
	_, _ = fmt.Fprintf(a.Out, "Launched %s\n", e.DisplayName())
	return nil
}

func (a *App) uninstall(ctx context.Context, cat *models.Catalog, target string, yes bool) error {
	e, err := a.lookup(cat, target)
	if err != nil {
		return err
	}
	argv, err := e.UninstallCommand()
	if err != nil {
		return err
	}

	if !yes {
		_, _ = fmt.Fprintf(a.Out, "Uninstall %s?\n  %s\n[y/N] ", e.Label(), strings.Join(argv, " "))
		answer, _ := bufio.NewReader(a.In).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			log.Info().Str("id", e.ID()).Msg("uninstall declined")
			return ErrAborted
		}
	}

	res, err := a.Runner.Uninstall(ctx, e)
	if res.Stdout != "" {
		_, _ = io.WriteString(a.Out, res.Stdout)
	}
	if res.Stderr != "" {
		_, _ = io.WriteString(a.ErrOut, res.Stderr)
	}
	if err != nil {
		return fmt.Errorf("failed to uninstall %s: %w", e.DisplayName(), err)
	}
	_, _ = fmt.Fprintf(a.Out, "Uninstalled %s\n", e.DisplayName())
	return nil
}
