// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/cartctl/internal/attrs"
)

const cartJSON = `[
	{"id":"1","title":"Running Shoe","image_url":"http://img/1.png","price":129.9,"quantity":2},
	{"id":"2","title":"Smart Watch","image_url":"http://img/2.png","price":19.5,"quantity":1},
	{"id":"3","title":"Socks","image_url":"http://img/3.png","price":5,"quantity":6}
]`

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		delimiter string
		want      []Filter
	}{
		{name: "empty spec", spec: ""},
		{
			name: "exact match",
			spec: "id=1",
			want: []Filter{{Key: "id", Operand: "=", Target: "1"}},
		},
		{
			name: "prefix",
			spec: "title^Run",
			want: []Filter{{Key: "title", Operand: "^", Target: "Run"}},
		},
		{
			name: "negated exact",
			spec: "id!=1",
			want: []Filter{{Key: "id", Operand: "=", Target: "1", Negate: true}},
		},
		{
			name: "greater or equal",
			spec: "quantity>=2",
			want: []Filter{{Key: "quantity", Operand: ">=", Target: "2"}},
		},
		{
			name: "negated less or equal",
			spec: "price!<=20",
			want: []Filter{{Key: "price", Operand: "<=", Target: "20", Negate: true}},
		},
		{
			name: "regex",
			spec: "title/^S.*h$",
			want: []Filter{{Key: "title", Operand: "/", Target: "^S.*h$"}},
		},
		{
			name: "multiple filters",
			spec: "price<20,title@o",
			want: []Filter{
				{Key: "price", Operand: "<", Target: "20"},
				{Key: "title", Operand: "@", Target: "o"},
			},
		},
		{
			name: "invalid entries skipped",
			spec: "id=1,nonsense,=2",
			want: []Filter{{Key: "id", Operand: "=", Target: "1"}},
		},
		{
			name:      "custom delimiter",
			spec:      "title@a,b|id=1",
			delimiter: "|",
			want: []Filter{
				{Key: "title", Operand: "@", Target: "a,b"},
				{Key: "id", Operand: "=", Target: "1"},
			},
		},
		{
			name: "empty target",
			spec: "title=",
			want: []Filter{{Key: "title", Operand: "=", Target: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.delimiter != "" {
				t.Setenv("CARTCTL_FILTER_DELIM", tt.delimiter)
			}

			got := BuildFilters(tt.spec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		filter Filter
		want   bool
	}{
		{"string equal", "Socks", Filter{Operand: "=", Target: "Socks"}, true},
		{"string not equal", "Socks", Filter{Operand: "=", Target: "Socks", Negate: true}, false},
		{"fold", "SOCKS", Filter{Operand: "~", Target: "socks"}, true},
		{"prefix", "Smart Watch", Filter{Operand: "^", Target: "Smart"}, true},
		{"contains", "Smart Watch", Filter{Operand: "@", Target: "Wat"}, true},
		{"negated contains", "Smart Watch", Filter{Operand: "@", Target: "Shoe", Negate: true}, true},
		{"regex", "Running Shoe", Filter{Operand: "/", Target: `^Run\w+ S`}, true},
		{"bad regex", "Running Shoe", Filter{Operand: "/", Target: "[oops"}, false},
		{"string less", "a", Filter{Operand: "<", Target: "b"}, true},
		{"string greater or equal", "b", Filter{Operand: ">=", Target: "b"}, true},
		{"number equal", 5.0, Filter{Operand: "=", Target: "5"}, true},
		{"number greater", 19.5, Filter{Operand: ">", Target: "20"}, false},
		{"number less", 19.5, Filter{Operand: "<", Target: " 20 "}, true},
		{"number greater or equal", 2.0, Filter{Operand: ">=", Target: "2"}, true},
		{"number less or equal", 2.5, Filter{Operand: "<=", Target: "2"}, false},
		{"negated number", 2.0, Filter{Operand: ">", Target: "1", Negate: true}, false},
		{"number contains as text", 129.9, Filter{Operand: "@", Target: "29"}, true},
		{"number with text target", 5.0, Filter{Operand: "=", Target: "five"}, false},
		{"bool", true, Filter{Operand: "=", Target: "true"}, true},
		{"list contains", []interface{}{"a", "b"}, Filter{Operand: "@", Target: "b"}, true},
		{"list negated contains", []interface{}{"a", "b"}, Filter{Operand: "@", Target: "b", Negate: true}, false},
		{"map has key", map[string]interface{}{"k": 1.0}, Filter{Operand: "@", Target: "k"}, true},
		{"list with other operand", []interface{}{"a"}, Filter{Operand: "=", Target: "a"}, false},
		{"unsupported operand", "x", Filter{Operand: "?", Target: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.value))
		})
	}
}

func TestFilterDataset(t *testing.T) {
	var al attrs.AttrList
	require.NoError(t, al.Set("id,title:Name,price,!quantity"))

	tests := []struct {
		name    string
		spec    string
		wantIDs []string
	}{
		{name: "no filter", spec: "", wantIDs: []string{"1", "2", "3"}},
		{name: "numeric", spec: "price<20", wantIDs: []string{"2", "3"}},
		{name: "hidden attr still filters", spec: "quantity>=2", wantIDs: []string{"1", "3"}},
		{name: "output key", spec: "Name^S", wantIDs: []string{"2", "3"}},
		{name: "json key", spec: "title^S", wantIDs: []string{"2", "3"}},
		{name: "all must pass", spec: "price<20,quantity>1", wantIDs: []string{"3"}},
		{name: "key outside attrs", spec: "image_url@2.png", wantIDs: []string{"2"}},
		{name: "negated key outside attrs", spec: "image_url!@2.png", wantIDs: []string{"1", "3"}},
		{name: "unknown field matches nothing", spec: "color=red,id=2"},
		{name: "nothing matches", spec: "price>1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := FilterDataset(gjson.Parse(cartJSON), al, tt.spec)

			var ids []string
			for _, r := range rows {
				ids = append(ids, r["id"].(string))
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterDatasetRowShape(t *testing.T) {
	var al attrs.AttrList
	require.NoError(t, al.Set("id,title:Name,*::U"))

	rows := FilterDataset(gjson.Parse(cartJSON), al, "id=1")
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]interface{}{"id": "1", "Name": "Running Shoe"}, rows[0])
}

func TestGjsonPath(t *testing.T) {
	assert.Equal(t, "image_url", gjsonPath("image_url"))
	assert.Equal(t, `a\.b`, gjsonPath("a.b"))

	v := gjson.Get(`{"a.b":1}`, gjsonPath("a.b"))
	assert.Equal(t, int64(1), v.Int())
}
