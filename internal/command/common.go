// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/attrs"
	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/config"
	"github.com/staranto/cartctl/internal/kv"
	"github.com/staranto/cartctl/internal/meta"
	"github.com/staranto/cartctl/internal/output"
)

// DefaultAttrs are the columns shown when --attrs does not say otherwise.
var DefaultAttrs = []string{"id", "title", "price", "quantity"}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr cartctl-<subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "cartctl-"+subcmd)
			c.Stdout = writer(cmd)
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// StorageConfig maps the storage flags onto a kv.Config.
func StorageConfig(cmd *cli.Command) kv.Config {
	return kv.Config{
		Type:     cmd.String("backend"),
		Dir:      cmd.String("dir"),
		DBPath:   cmd.String("db"),
		Bucket:   cmd.String("bucket"),
		Prefix:   cmd.String("prefix"),
		Region:   cmd.String("region"),
		Profile:  cmd.String("profile"),
		Endpoint: cmd.String("endpoint"),
		Addr:     cmd.String("addr"),
		Password: cmd.String("password"),
		DB:       cmd.Int("redis-db"),
	}
}

// OpenStorage opens the backend selected by the storage flags.
func OpenStorage(ctx context.Context, cmd *cli.Command) (kv.Store, error) {
	store, err := kv.Open(ctx, StorageConfig(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cmd.String("backend"), err)
	}
	return store, nil
}

// WithCart wraps action so it runs with the cart loaded and reachable through
// cart.FromContext. Storage and cart are closed when action returns.
func WithCart(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		store, err := OpenStorage(ctx, cmd)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		c, err := cart.Open(ctx, store,
			cart.WithSlot(cmd.String("slot")),
			cart.WithRetry(uint(cmd.Int("retries")), 50*time.Millisecond), //nolint:gosec,mnd
		)
		if err != nil {
			if errors.Is(err, cart.ErrMalformedSlot) {
				return fmt.Errorf("%w (run 'cartctl clear --all' to reset storage)", err)
			}
			return err
		}
		defer c.Close() //nolint:errcheck

		log.Debugf("cart open on %s slot %s", cmd.String("backend"), c.Slot())
		return action(cart.WithStore(ctx, c), cmd)
	}
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList, err error) {
	for _, d := range defaults {
		if err = al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err = al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	err = al.SetGlobalTransformSpec()
	return al, err
}

// OutputOptions maps the output flags onto output.Options.
func OutputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format: cmd.String("output"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color"),
	}
}

// Emit renders items per the output flags.
func Emit(cmd *cli.Command, items []cart.LineItem) error {
	al, err := BuildAttrs(cmd, DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	raw, err := cart.Encode(items)
	if err != nil {
		return err
	}

	return output.SliceDiceSpit([]byte(raw), al, OutputOptions(cmd), writer(cmd))
}

// emitUnlessQuiet is Emit for mutating commands, which honor --quiet.
func emitUnlessQuiet(cmd *cli.Command, items []cart.LineItem) error {
	if cmd.Bool("quiet") {
		return nil
	}
	return Emit(cmd, items)
}

func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// CartCommandBuilder constructs a cli.Command for a cart subcommand using a
// consistent pattern: metadata, command flags, storage and output flags, and
// the global validator.
type CartCommandBuilder struct {
	Name      string
	Aliases   []string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    cli.ActionFunc
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (b *CartCommandBuilder) Build() *cli.Command {
	src := b.Meta.Config.Source

	flags := append([]cli.Flag{}, b.Flags...)
	flags = append(flags, newTldrFlag())
	flags = append(flags, NewStorageFlags(src)...)
	flags = append(flags, NewGlobalFlags(b.Name, src)...)

	return &cli.Command{
		Name:      b.Name,
		Aliases:   b.Aliases,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			config.Config.Namespace = b.Name
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log.Debugf("executing %s %v", b.Name, c.Args().Slice())
			if ShortCircuitTLDR(ctx, c, b.Name) {
				return nil
			}
			return b.Action(ctx, c)
		},
	}
}
