// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/kv"
)

// Flags keep parse state, so each command gets its own instances.

func newTldrFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

func newQuietFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "do not print the cart after the change",
	}
}

// NewGlobalFlags returns the output flags shared by every cart command. ns is
// the command name, used as the config namespace, and src is the config file.
func NewGlobalFlags(ns, src string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
			Sources: configChain(ns, "attrs", src, false),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: configChain(ns, "color", src, true),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
			Sources: configChain(ns, "filter", src, false),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw)",
			Sources: configChain(ns, "output", src, true),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: configChain(ns, "sort", src, false),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: configChain(ns, "titles", src, true),
			Value:   false,
		},
	}

	return
}

// NewStorageFlags returns the flags that select and configure the storage
// backend the cart persists to.
func NewStorageFlags(src string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "backend",
			Aliases: []string{"b"},
			Usage:   "storage backend (file, memory, sqlite, s3, redis)",
			Sources: storageChain("backend", src, "CARTCTL_BACKEND"),
			Value:   kv.TypeFile,
			Validator: func(value string) error {
				return FlagValidators(value, BackendValidator)
			},
		},
		&cli.StringFlag{
			Name:    "dir",
			Usage:   "directory for the file backend",
			Sources: storageChain("dir", src, "CARTCTL_STORE_DIR"),
		},
		&cli.StringFlag{
			Name:    "db",
			Usage:   "database file for the sqlite backend",
			Sources: storageChain("db", src, "CARTCTL_DB"),
		},
		&cli.StringFlag{
			Name:    "bucket",
			Usage:   "bucket for the s3 backend",
			Sources: storageChain("bucket", src, "CARTCTL_BUCKET"),
		},
		&cli.StringFlag{
			Name:    "prefix",
			Usage:   "object key prefix for the s3 backend",
			Sources: storageChain("prefix", src, "CARTCTL_PREFIX"),
			Value:   "cartctl/",
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region for the s3 backend",
			Sources: storageChain("region", src, "AWS_REGION"),
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS shared config profile for the s3 backend",
			Sources: storageChain("profile", src, "AWS_PROFILE"),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "S3-compatible endpoint URL",
			Sources: storageChain("endpoint", src, "CARTCTL_S3_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:    "addr",
			Usage:   "host:port for the redis backend",
			Sources: storageChain("addr", src, "CARTCTL_REDIS_ADDR"),
			Value:   "localhost:6379",
		},
		&cli.StringFlag{
			Name:    "password",
			Usage:   "password for the redis backend",
			Sources: storageChain("password", src, "CARTCTL_REDIS_PASSWORD"),
		},
		&cli.IntFlag{
			Name:    "redis-db",
			Usage:   "database number for the redis backend",
			Sources: storageChain("redis-db", src, "CARTCTL_REDIS_DB"),
			Value:   0,
		},
		&cli.StringFlag{
			Name:    "slot",
			Usage:   "storage key the cart is kept under",
			Sources: storageChain("slot", src, "CARTCTL_SLOT"),
			Value:   cart.DefaultSlot,
		},
		&cli.IntFlag{
			Name:    "retries",
			Usage:   "attempts made to persist each change",
			Sources: storageChain("retries", src, "CARTCTL_RETRIES"),
			Value:   4, //nolint:mnd
			Validator: func(value int) error {
				return FlagValidators(value, PositiveValidator)
			},
		},
	}
}

// configChain sources a flag from the namespaced config key and, when global
// is set, from the bare key as well.
func configChain(ns, name, src string, global bool) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain(
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(src)),
	)
	if global {
		chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(src)))
	}
	return chain
}

// storageChain sources a storage flag from env first, then storage.<name> in
// the config file.
func storageChain(name, src, env string) cli.ValueSourceChain {
	return cli.NewValueSourceChain(
		cli.EnvVar(env),
		yaml.YAML("storage."+name, altsrc.StringSourcer(src)),
	)
}

// pathHas reports whether target is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
