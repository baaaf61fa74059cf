// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/kv"
	"github.com/staranto/cartctl/internal/output"
)

// GlobalFlagsValidator checks flag combinations that single-flag validators
// cannot see.
func GlobalFlagsValidator(_ context.Context, c *cli.Command) error {
	switch c.String("backend") {
	case kv.TypeS3:
		if c.String("bucket") == "" {
			return fmt.Errorf("--bucket is required with --backend %s", kv.TypeS3)
		}
	case kv.TypeRedis:
		if c.String("addr") == "" {
			return fmt.Errorf("--addr is required with --backend %s", kv.TypeRedis)
		}
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'. urfave/cli allows this and there is no switch to turn it off.
func JammedFlagValidator(value any) error {
	if s, ok := value.(string); ok && strings.HasPrefix(s, "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	if s, ok := value.(string); !ok || !slices.Contains(output.Formats, s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func BackendValidator(value any) error {
	if s, ok := value.(string); !ok || !slices.Contains(kv.Backends, s) {
		return fmt.Errorf("must be one of %v", kv.Backends)
	}
	return nil
}

func PositiveValidator(value any) error {
	if n, ok := value.(int); !ok || n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

// NonNegativeValidator accepts a float that is zero or greater.
func NonNegativeValidator(value any) error {
	if f, ok := value.(float64); !ok || f < 0 {
		return errors.New("must not be negative")
	}
	return nil
}
