// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/staranto/cartctl/internal/attrs"
)

const cartJSON = `[{"id":"1","title":"Running Shoe","image_url":"http://img/1.png","price":129.9,"quantity":2},` +
	`{"id":"2","title":"smart watch","image_url":"","price":1999,"quantity":1},` +
	`{"id":"3","title":"Socks","image_url":"http://img/3.png","price":5,"quantity":6}]`

func defaultAttrs(t *testing.T, extra string) attrs.AttrList {
	t.Helper()
	var al attrs.AttrList
	require.NoError(t, al.Set("id,title,price,quantity"))
	require.NoError(t, al.Set(extra))
	require.NoError(t, al.SetGlobalTransformSpec())
	return al
}

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"title": "zebra", "price": 3.0},
		{"title": "Alpha", "price": 1.0},
		{"title": "beta", "price": 2.0},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{name: "ascending by title", spec: "title", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "descending by title", spec: "-title", wantOrder: []string{"zebra", "beta", "Alpha"}},
		{name: "ascending by price", spec: "price", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "descending by price", spec: "-price", wantOrder: []string{"zebra", "beta", "Alpha"}},
		{name: "case sensitive", spec: "!title", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "case sensitive descending", spec: "-!title", wantOrder: []string{"zebra", "beta", "Alpha"}},
		{name: "multiple fields", spec: "missing,price", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "empty spec keeps order", spec: "", wantOrder: []string{"zebra", "Alpha", "beta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, want := range tt.wantOrder {
				assert.Equal(t, want, data[i]["title"], "at index %d", i)
			}
		})
	}
}

func TestSortDataset_CaseSensitiveDiffers(t *testing.T) {
	data := []map[string]interface{}{{"title": "b"}, {"title": "C"}}

	SortDataset(data, "title")
	assert.Equal(t, "b", data[0]["title"])

	SortDataset(data, "!title")
	assert.Equal(t, "C", data[0]["title"])
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal []string
		want     string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "nil with empty value", value: nil, emptyVal: []string{"-"}, want: "-"},
		{name: "empty string", value: "", emptyVal: []string{"-"}, want: "-"},
		{name: "string", value: "Shoe", want: "Shoe"},
		{name: "int", value: 3, want: "3"},
		{name: "zero int is not empty", value: 0, emptyVal: []string{"-"}, want: "0"},
		{name: "whole float", value: 1999.0, want: "1,999"},
		{name: "fractional float", value: 129.9, want: "129.9"},
		{name: "rounded float", value: 1234.567, want: "1,234.57"},
		{name: "rounds half up", value: 2.675001, want: "2.68"},
		{name: "rounds down", value: 10.994, want: "10.99"},
		{name: "rounds to whole", value: 4.999, want: "5"},
		{name: "bool", value: false, want: "false"},
		{name: "list", value: []interface{}{"a", "b"}, want: `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.emptyVal...))
		})
	}
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	var buf bytes.Buffer
	al := defaultAttrs(t, "")

	err := SliceDiceSpit([]byte(cartJSON), al, Options{Format: "json", Filter: "price<1000", Sort: "-price"}, &buf)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0]["id"])
	assert.Equal(t, "3", got[1]["id"])
	assert.NotContains(t, got[0], "image_url")
}

func TestSliceDiceSpit_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := SliceDiceSpit([]byte(`[]`), defaultAttrs(t, ""), Options{Format: "json"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", buf.String())
}

func TestSliceDiceSpit_YAMLHidesExcluded(t *testing.T) {
	var buf bytes.Buffer
	al := defaultAttrs(t, "!quantity,title:name:U")

	err := SliceDiceSpit([]byte(cartJSON), al, Options{Format: "yaml", Sort: "quantity"}, &buf)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "SMART WATCH", got[0]["name"])
	assert.NotContains(t, got[0], "quantity")
}

func TestSliceDiceSpit_Raw(t *testing.T) {
	var buf bytes.Buffer
	err := SliceDiceSpit([]byte(cartJSON), nil, Options{Format: "raw", Filter: "id=1"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, cartJSON+"\n", buf.String())
}

func TestSliceDiceSpit_Text(t *testing.T) {
	var buf bytes.Buffer
	al := defaultAttrs(t, "image_url")

	err := SliceDiceSpit([]byte(cartJSON), al, Options{Format: "text", Titles: true, Color: true}, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "title")
	assert.Contains(t, out, "Running Shoe")
	assert.Contains(t, out, "1,999")
	assert.Contains(t, out, "http://img/3.png")
	assert.NotContains(t, out, "\x1b[", "no color when not writing to a terminal")

	assert.Less(t, strings.Index(out, "Running Shoe"), strings.Index(out, "Socks"))
}

func TestSliceDiceSpit_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := SliceDiceSpit([]byte(`[]`), defaultAttrs(t, ""), Options{Titles: true}, &buf)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestGetColors(t *testing.T) {
	t.Setenv("CARTCTL_CFG", "/nonexistent/cartctl.yaml")

	header, even, odd := getColors("colors")
	assert.NotEmpty(t, header)
	assert.NotEmpty(t, even)
	assert.NotEmpty(t, odd)
}

func BenchmarkSortDataset(b *testing.B) {
	rows := make([]map[string]interface{}, 100)
	for i := range rows {
		rows[i] = map[string]interface{}{"title": strings.Repeat("x", i%7), "price": float64(100 - i)}
	}
	for b.Loop() {
		SortDataset(rows, "title,-price")
	}
}
