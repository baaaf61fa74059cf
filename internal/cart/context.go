// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cart

import "context"

type storeKey struct{}

// WithStore returns a copy of ctx carrying s. Everything running under the
// returned context can reach the cart through FromContext.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the Store attached by WithStore, or ErrNoStore.
func FromContext(ctx context.Context) (*Store, error) {
	if s, ok := ctx.Value(storeKey{}).(*Store); ok && s != nil {
		return s, nil
	}
	return nil, ErrNoStore
}

// MustFromContext is FromContext for callers that treat a missing store as a
// wiring bug.
func MustFromContext(ctx context.Context) *Store {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
