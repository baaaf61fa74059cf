// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package kv

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"

	"github.com/staranto/cartctl/internal/aws"
)

var (
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrMissingSetting = errors.New("missing storage setting")
)

// Store is an asynchronous string key-value store. Get reports found=false,
// with a nil error, for a key that was never set.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key this store owns.
	Clear(ctx context.Context) error
	Close() error
}

const (
	TypeFile   = "file"
	TypeMemory = "memory"
	TypeSQLite = "sqlite"
	TypeS3     = "s3"
	TypeRedis  = "redis"
)

// Backends lists the accepted values of Config.Type.
var Backends = []string{TypeFile, TypeMemory, TypeSQLite, TypeS3, TypeRedis}

// Config selects and configures a backend. Only the fields of the chosen
// Type are consulted.
type Config struct {
	Type string

	// file, sqlite
	Dir    string
	DBPath string

	// s3
	Bucket   string
	Prefix   string
	Region   string
	Profile  string
	Endpoint string

	// redis
	Addr     string
	Password string
	DB       int
}

// Open constructs the Store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	log.Debugf("kv.Open: %+v", redacted(cfg))

	switch cfg.Type {
	case "", TypeFile:
		dir := cfg.Dir
		if dir == "" {
			d, ok := DefaultDir()
			if !ok {
				return nil, fmt.Errorf("%w: --dir", ErrMissingSetting)
			}
			dir = d
		}
		return NewFile(dir)

	case TypeMemory:
		return NewMemory(), nil

	case TypeSQLite:
		path := cfg.DBPath
		if path == "" {
			dir := cfg.Dir
			if dir == "" {
				d, ok := DefaultDir()
				if !ok {
					return nil, fmt.Errorf("%w: --db", ErrMissingSetting)
				}
				dir = d
			}
			path = filepath.Join(dir, "cart.db")
		}
		return NewSQLite(ctx, path)

	case TypeS3:
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("%w: --bucket", ErrMissingSetting)
		}
		client, err := aws.NewS3(ctx,
			aws.WithProfile(cfg.Profile),
			aws.WithRegion(cfg.Region),
			aws.WithEndpoint(cfg.Endpoint),
		)
		if err != nil {
			return nil, err
		}
		return NewS3(client, cfg.Bucket, cfg.Prefix), nil

	case TypeRedis:
		if cfg.Addr == "" {
			return nil, fmt.Errorf("%w: --addr", ErrMissingSetting)
		}
		return NewRedis(ctx, cfg.Addr, cfg.Password, cfg.DB)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Type)
	}
}

// DefaultDir resolves the base storage directory.
// Precedence:
//  1. CARTCTL_STORE_DIR, if set and non-empty
//  2. os.UserConfigDir()/cartctl/storage
//
// Returns ("", false) if a base cannot be resolved.
func DefaultDir() (string, bool) {
	if d, ok := os.LookupEnv("CARTCTL_STORE_DIR"); ok && d != "" {
		return d, true
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "cartctl", "storage"), true
	}
	return "", false
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}

func redacted(cfg Config) Config {
	if cfg.Password != "" {
		cfg.Password = "********"
	}
	return cfg
}
