// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cart

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	shoe  = Product{ID: "1", Title: "Shoe", ImageURL: "http://img/1.png", Price: 10}
	watch = Product{ID: "2", Title: "Watch", ImageURL: "http://img/2.png", Price: 99.5}
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		p     Product
		want  []LineItem
	}{
		{
			name:  "empty cart appends with quantity 1",
			items: nil,
			p:     shoe,
			want:  []LineItem{{ID: "1", Title: "Shoe", ImageURL: "http://img/1.png", Price: 10, Quantity: 1}},
		},
		{
			name:  "existing id bumps quantity",
			items: []LineItem{{ID: "1", Title: "Shoe", Price: 10, Quantity: 2}},
			p:     shoe,
			want:  []LineItem{{ID: "1", Title: "Shoe", Price: 10, Quantity: 3}},
		},
		{
			name:  "existing id keeps stored fields",
			items: []LineItem{{ID: "1", Title: "Old", Price: 1, Quantity: 1}},
			p:     shoe,
			want:  []LineItem{{ID: "1", Title: "Old", Price: 1, Quantity: 2}},
		},
		{
			name:  "new id appends at end",
			items: []LineItem{{ID: "1", Quantity: 1}},
			p:     watch,
			want: []LineItem{
				{ID: "1", Quantity: 1},
				{ID: "2", Title: "Watch", ImageURL: "http://img/2.png", Price: 99.5, Quantity: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Add(tt.items, tt.p))
		})
	}
}

func TestIncrementDecrement(t *testing.T) {
	items := []LineItem{{ID: "1", Quantity: 1}, {ID: "2", Quantity: 3}}

	assert.Equal(t, []LineItem{{ID: "1", Quantity: 2}, {ID: "2", Quantity: 3}}, Increment(items, "1"))
	assert.Equal(t, items, Increment(items, "nope"))

	assert.Equal(t, []LineItem{{ID: "2", Quantity: 3}}, Decrement(items, "1"))
	assert.Equal(t, []LineItem{{ID: "1", Quantity: 1}, {ID: "2", Quantity: 2}}, Decrement(items, "2"))
	assert.Equal(t, items, Decrement(items, "nope"))
	assert.Empty(t, Decrement([]LineItem{{ID: "1", Quantity: 1}}, "1"))
}

func TestListFuncsDoNotMutateInput(t *testing.T) {
	items := []LineItem{{ID: "1", Quantity: 1}, {ID: "2", Quantity: 2}}
	before := clone(items)

	_ = Add(items, shoe)
	_ = Increment(items, "2")
	_ = Decrement(items, "1")
	_ = Decrement(items, "2")

	assert.Equal(t, before, items)
}

func TestScenario(t *testing.T) {
	var items []LineItem

	items = Add(items, shoe)
	items = Add(items, shoe)
	items = Add(items, watch)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)

	items = Decrement(items, "1")
	items = Decrement(items, "1")
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)

	items = Increment(items, "2")
	got, ok := Find(items, "2")
	assert.True(t, ok)
	assert.Equal(t, 2, got.Quantity)

	_, ok = Find(items, "1")
	assert.False(t, ok)
}

// Random operation sequences must keep ids unique and quantities positive.
func TestInvariantsUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ids := []string{"a", "b", "c", "d"}
	var items []LineItem

	for range 2000 {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(3) {
		case 0:
			items = Add(items, Product{ID: id, Price: 1})
		case 1:
			items = Increment(items, id)
		case 2:
			items = Decrement(items, id)
		}

		seen := map[string]bool{}
		for _, it := range items {
			require.False(t, seen[it.ID], "duplicate id %s", it.ID)
			require.GreaterOrEqual(t, it.Quantity, 1)
			seen[it.ID] = true
		}
	}
}
