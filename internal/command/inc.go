// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/meta"
)

// stepFunc is the shape shared by Store.Increment and Store.Decrement.
type stepFunc func(*cart.Store) func(context.Context, string) ([]cart.LineItem, error)

// stepAction applies step to each id argument in order and prints the cart
// that results from the last one. An id not in the cart is not an error.
func stepAction(step stepFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		ids := cmd.Args().Slice()
		if len(ids) == 0 {
			return errors.New("at least one product id is required")
		}

		c, err := cart.FromContext(ctx)
		if err != nil {
			return err
		}

		var items []cart.LineItem
		for _, id := range ids {
			if _, found := cart.Find(c.Products(), id); !found {
				log.Warnf("%s is not in the cart", id)
			}
			if items, err = step(c)(ctx, id); err != nil {
				return err
			}
		}

		return emitUnlessQuiet(cmd, items)
	}
}

// IncCommandBuilder constructs the cli.Command for "inc".
func IncCommandBuilder(meta meta.Meta) *cli.Command {
	b := CartCommandBuilder{
		Name:      "inc",
		Usage:     "increase the quantity of products in the cart",
		UsageText: "cartctl inc ID [ID...] [options]",
		Meta:      meta,
		Flags:     []cli.Flag{newQuietFlag()},
		Action: WithCart(stepAction(func(s *cart.Store) func(context.Context, string) ([]cart.LineItem, error) {
			return s.Increment
		})),
	}
	return b.Build()
}

// DecCommandBuilder constructs the cli.Command for "dec". A product whose
// quantity reaches zero leaves the cart.
func DecCommandBuilder(meta meta.Meta) *cli.Command {
	b := CartCommandBuilder{
		Name:      "dec",
		Usage:     "decrease the quantity of products, removing them at zero",
		UsageText: "cartctl dec ID [ID...] [options]",
		Meta:      meta,
		Flags:     []cli.Flag{newQuietFlag()},
		Action: WithCart(stepAction(func(s *cart.Store) func(context.Context, string) ([]cart.LineItem, error) {
			return s.Decrement
		})),
	}
	return b.Build()
}
