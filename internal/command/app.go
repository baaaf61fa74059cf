// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/config"
	"github.com/staranto/cartctl/internal/meta"
	"github.com/staranto/cartctl/internal/version"
)

func InitApp(_ context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the cartctl
	// subcommand and also the namespace key used when retrieving config
	// values. arg[1] could be -h/--help, so ignore it if it appears to be a
	// flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing config file is normal; flags then fall back to env and
	// defaults.
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config: %v", err)
	}
	cfg.Namespace = ns
	config.Config.Namespace = ns

	meta := meta.Meta{Config: cfg}

	app := &cli.Command{
		Name:    "cartctl",
		Usage:   "Shopping cart control",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "cartctl version info",
				HideDefault: true,
			},
		},
		HideVersion: true,
	}

	app.Commands = append(app.Commands,
		AddCommandBuilder(meta),
		IncCommandBuilder(meta),
		DecCommandBuilder(meta),
		LsCommandBuilder(meta),
		ClearCommandBuilder(meta),
		CompletionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
