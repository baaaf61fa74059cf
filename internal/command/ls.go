// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/meta"
)

// LsCommandAction prints the products in the cart.
func LsCommandAction(ctx context.Context, cmd *cli.Command) error {
	c, err := cart.FromContext(ctx)
	if err != nil {
		return err
	}
	return Emit(cmd, c.Products())
}

// LsCommandBuilder constructs the cli.Command for "ls".
func LsCommandBuilder(meta meta.Meta) *cli.Command {
	b := CartCommandBuilder{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "list the products in the cart",
		UsageText: "cartctl ls [options]",
		Meta:      meta,
		Action:    WithCart(LsCommandAction),
	}
	return b.Build()
}
