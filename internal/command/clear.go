// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/meta"
)

// ClearCommandAction empties the cart. With --all it wipes every key the
// storage backend owns instead, without reading the slot first, which is the
// way out of a malformed slot.
func ClearCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("all") {
		store, err := OpenStorage(ctx, cmd)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		if err := store.Clear(ctx); err != nil {
			return err
		}
		if !cmd.Bool("quiet") {
			fmt.Fprintf(writer(cmd), "cleared %s storage\n", cmd.String("backend"))
		}
		return nil
	}

	return WithCart(func(ctx context.Context, cmd *cli.Command) error {
		items, err := cart.MustFromContext(ctx).Clear(ctx)
		if err != nil {
			return err
		}
		return emitUnlessQuiet(cmd, items)
	})(ctx, cmd)
}

// ClearCommandBuilder constructs the cli.Command for "clear".
func ClearCommandBuilder(meta meta.Meta) *cli.Command {
	b := CartCommandBuilder{
		Name:      "clear",
		Usage:     "empty the cart",
		UsageText: "cartctl clear [--all] [options]",
		Meta:      meta,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "remove everything in the storage backend, not just the cart",
			},
			newQuietFlag(),
		},
		Action: ClearCommandAction,
	}
	return b.Build()
}
