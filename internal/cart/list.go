// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cart

// The list functions never modify their input. Each returns a fresh slice so a
// published snapshot stays valid while the next mutation is computed.

// Add returns items with p added. An existing item with the same id has its
// quantity bumped by one; otherwise p is appended with quantity 1.
func Add(items []LineItem, p Product) []LineItem {
	next := clone(items)
	if i := indexOf(next, p.ID); i >= 0 {
		next[i].Quantity++
		return next
	}
	return append(next, p.lineItem())
}

// Increment returns items with the quantity of id bumped by one. An unknown id
// leaves the list unchanged.
func Increment(items []LineItem, id string) []LineItem {
	next := clone(items)
	if i := indexOf(next, id); i >= 0 {
		next[i].Quantity++
	}
	return next
}

// Decrement returns items with the quantity of id lowered by one. An item at
// quantity 1 is removed. An unknown id leaves the list unchanged.
func Decrement(items []LineItem, id string) []LineItem {
	next := clone(items)
	i := indexOf(next, id)
	if i < 0 {
		return next
	}
	if next[i].Quantity > 1 {
		next[i].Quantity--
		return next
	}
	return append(next[:i], next[i+1:]...)
}

// Find returns the item with the given id.
func Find(items []LineItem, id string) (LineItem, bool) {
	if i := indexOf(items, id); i >= 0 {
		return items[i], true
	}
	return LineItem{}, false
}

func indexOf(items []LineItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(items []LineItem) []LineItem {
	next := make([]LineItem, len(items))
	copy(next, items)
	return next
}
