// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cart_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/kv"
)

func TestRoundTripThroughBackends(t *testing.T) {
	ctx := context.Background()

	backends := []struct {
		name string
		open func(t *testing.T) kv.Store
	}{
		{"memory", func(*testing.T) kv.Store { return kv.NewMemory() }},
		{"file", func(t *testing.T) kv.Store {
			s, err := kv.NewFile(t.TempDir())
			require.NoError(t, err)
			return s
		}},
		{"sqlite", func(t *testing.T) kv.Store {
			s, err := kv.NewSQLite(ctx, filepath.Join(t.TempDir(), "cart.db"))
			require.NoError(t, err)
			return s
		}},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			storage := b.open(t)
			defer storage.Close() //nolint:errcheck

			first, err := cart.Open(ctx, storage, cart.WithRetry(2, time.Millisecond))
			require.NoError(t, err)

			_, err = first.AddToCart(ctx, cart.Product{ID: "1", Title: "Shoe", Price: 10})
			require.NoError(t, err)
			_, err = first.AddToCart(ctx, cart.Product{ID: "2", Title: "Watch", ImageURL: "http://img/2.png", Price: 99.5})
			require.NoError(t, err)
			_, err = first.Increment(ctx, "2")
			require.NoError(t, err)
			want := first.Products()
			require.NoError(t, first.Close())

			second, err := cart.Open(ctx, storage, cart.WithRetry(2, time.Millisecond))
			require.NoError(t, err)
			defer second.Close() //nolint:errcheck

			assert.Equal(t, want, second.Products())
			assert.Equal(t, 2, second.Products()[1].Quantity)
		})
	}
}
