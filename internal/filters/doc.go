// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package filters implements --filter: simple key/operator/target predicates
// evaluated against the JSON rows of a cart listing.
package filters
