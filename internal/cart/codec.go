// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Encode serializes items into the slot format: a JSON array of line items.
// An empty cart encodes as "[]", never "null".
func Encode(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode cart: %w", err)
	}
	return string(b), nil
}

// Decode parses a slot value. A blank value or JSON null is an empty cart.
func Decode(raw string) ([]LineItem, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []LineItem{}, nil
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSlot, err)
	}
	if items == nil {
		items = []LineItem{}
	}
	return items, nil
}

// normalize repairs a decoded list so it honors the cart invariants. Items
// sharing an id are merged in first-seen order with their quantities summed,
// then items whose quantity is below 1 are dropped. The second return value
// reports whether anything changed.
func normalize(items []LineItem) ([]LineItem, bool) {
	repaired := false

	merged := make([]LineItem, 0, len(items))
	for _, it := range items {
		if i := indexOf(merged, it.ID); i >= 0 {
			merged[i].Quantity += it.Quantity
			repaired = true
			continue
		}
		merged = append(merged, it)
	}

	kept := merged[:0]
	for _, it := range merged {
		if it.Quantity < 1 {
			repaired = true
			continue
		}
		kept = append(kept, it)
	}

	return kept, repaired
}
