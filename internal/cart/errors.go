// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cart

import "errors"

var (
	// ErrNoStore is returned by FromContext when no Store was attached with
	// WithStore.
	ErrNoStore = errors.New("cart: no store in context; wrap the context with cart.WithStore")

	// ErrPersist wraps the last storage error once retries are exhausted. The
	// in-memory cart is left as it was before the failed mutation.
	ErrPersist = errors.New("cart: failed to persist cart")

	// ErrMalformedSlot is returned by Open when the stored value is not a JSON
	// array of line items.
	ErrMalformedSlot = errors.New("cart: malformed cart slot")

	ErrInvalidProduct = errors.New("cart: invalid product")

	ErrClosed = errors.New("cart: store is closed")
)
