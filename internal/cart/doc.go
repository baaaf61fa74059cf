// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cart holds the shopping cart state: an ordered list of line items
// mirrored to a single key-value persistence slot. All mutations go through
// one goroutine so each operation sees the result of the previous one.
package cart
