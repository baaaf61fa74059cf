// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/meta"
)

// AddCommandAction adds the product described by the flags, or bumps its
// quantity when the id is already in the cart.
func AddCommandAction(ctx context.Context, cmd *cli.Command) error {
	c, err := cart.FromContext(ctx)
	if err != nil {
		return err
	}

	items, err := c.AddToCart(ctx, cart.Product{
		ID:       cmd.String("id"),
		Title:    cmd.String("title"),
		ImageURL: cmd.String("image"),
		Price:    cmd.Float("price"),
	})
	if err != nil {
		return err
	}

	return emitUnlessQuiet(cmd, items)
}

// AddCommandBuilder constructs the cli.Command for "add".
func AddCommandBuilder(meta meta.Meta) *cli.Command {
	b := CartCommandBuilder{
		Name:      "add",
		Usage:     "add a product to the cart",
		UsageText: "cartctl add --id ID --title TITLE [--image URL] --price PRICE [options]",
		Meta:      meta,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "product id",
				Required: true,
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "product title",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.StringFlag{
				Name:  "image",
				Usage: "product image URL",
			},
			&cli.FloatFlag{
				Name:  "price",
				Usage: "unit price",
				Validator: func(value float64) error {
					return FlagValidators(value, NonNegativeValidator)
				},
			},
			newQuietFlag(),
		},
		Action: WithCart(AddCommandAction),
	}
	return b.Build()
}
