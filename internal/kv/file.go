// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package kv

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
)

const tmpPrefix = ".tmp-"

// File stores each key in its own file beneath Dir. File names are the MD5 of
// the clear-text key so any key is a safe file name.
type File struct {
	Dir string
}

// NewFile creates dir if needed and returns a File store rooted there.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &File{Dir: dir}, nil
}

// Path returns where key is stored.
func (f *File) Path(key string) string {
	return filepath.Join(f.Dir, encodeKey(key))
}

func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(f.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(bytes.TrimSpace(b)), true, nil
}

// Set writes value through a temp file and rename so a reader never sees a
// partial value.
func (f *File) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.Dir, tmpPrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Chmod(os.FileMode(0o600)); err != nil { //nolint:mnd
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.Path(key)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	if err := os.Remove(f.Path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Clear removes the key files in Dir, along with temp files left by an
// interrupted Set. Anything else in Dir, such as a sqlite database, is kept.
func (f *File) Clear(context.Context) error {
	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !ownsFile(e.Name()) {
			continue
		}
		p := filepath.Join(f.Dir, e.Name())
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("failed to clear storage: %w", err)
		}
		log.Debugf("removed storage file %s", p)
	}
	return nil
}

func (f *File) Close() error { return nil }

// ownsFile reports whether name is one File writes: an MD5 key name or a
// temp file from Set.
func ownsFile(name string) bool {
	if strings.HasPrefix(name, tmpPrefix) {
		return true
	}
	if len(name) != hex.EncodedLen(md5.Size) {
		return false
	}
	_, err := hex.DecodeString(name)
	return err == nil && strings.ToLower(name) == name
}
