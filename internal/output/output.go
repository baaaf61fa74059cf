// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/staranto/cartctl/internal/attrs"
	"github.com/staranto/cartctl/internal/config"
	"github.com/staranto/cartctl/internal/filters"
)

// Formats lists the accepted values of Options.Format.
var Formats = []string{"text", "json", "yaml", "raw"}

// Options are the rendering choices normally taken from the output flags.
type Options struct {
	Format string
	Filter string
	Sort   string
	Titles bool
	Color  bool
}

// SliceDiceSpit filters, transforms, sorts and renders raw, a JSON array of
// line items, to w.
func SliceDiceSpit(raw []byte, al attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Format == "raw" {
		_, err := fmt.Fprintln(w, string(raw))
		return err
	}

	rows := filters.FilterDataset(gjson.ParseBytes(raw), al, opts.Filter)

	for _, row := range rows {
		for _, attr := range al {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(rows, opts.Sort)

	// Hidden attrs were only needed for filtering and sorting.
	for _, row := range rows {
		for _, attr := range al {
			if !attr.Include {
				delete(row, attr.OutputKey)
			}
		}
	}

	switch opts.Format {
	case "json":
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		b, err := json.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to render json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		b, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to render yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		return TableWriter(rows, al, opts, w)
	}
}

// TableWriter renders rows as a borderless table honoring titles and color.
// Color is dropped when w is not a terminal.
func TableWriter(rows []map[string]interface{}, al attrs.AttrList, opts Options, w io.Writer) error {
	if len(rows) == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color && isTerminal(w) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	included := al.Included()

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cell := make([]string, 0, len(included))
		for _, attr := range included {
			cell = append(cell, InterfaceToString(row[attr.OutputKey], "-"))
		}
		cells = append(cells, cell)
	}

	pad, _ := config.GetInt("padding", 1)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(pad)
			}
			return style
		}).
		Rows(cells...)

	if opts.Titles {
		headers := make([]string, 0, len(included))
		for _, attr := range included {
			headers = append(headers, attr.OutputKey)
		}
		t = t.Headers(headers...).BorderHeader(false)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// SortDataset sorts rows in place by a comma-separated list of keys. A key
// prefixed with - sorts descending; one prefixed with ! compares strings
// case-sensitively. The sort is stable, so an empty spec keeps cart order.
func SortDataset(rows []map[string]interface{}, spec string) {
	type sortKey struct {
		name          string
		descending    bool
		caseSensitive bool
	}

	var keys []sortKey
	for _, s := range strings.Split(spec, ",") {
		s = strings.TrimSpace(s)
		var k sortKey
		for len(s) > 0 && (s[0] == '-' || s[0] == '!') {
			if s[0] == '-' {
				k.descending = true
			} else {
				k.caseSensitive = true
			}
			s = s[1:]
		}
		if s == "" {
			continue
		}
		k.name = s
		keys = append(keys, k)
	}

	if len(keys) == 0 {
		return
	}
	log.Debugf("sort keys: %+v", keys)

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compare(rows[i][k.name], rows[j][k.name], k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compare orders numbers numerically and everything else by its string form.
// Missing values sort first.
func compare(a, b interface{}, caseSensitive bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}

	sa, sb := InterfaceToString(a), InterfaceToString(b)
	if !caseSensitive {
		sa, sb = strings.ToLower(sa), strings.ToLower(sb)
	}
	return strings.Compare(sa, sb)
}

// InterfaceToString converts a decoded JSON value to display text. A custom
// empty value may be provided and is used for nil and "".
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch value := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		if value == float64(int64(value)) {
			return humanize.Comma(int64(value))
		}
		return humanize.CommafWithDigits(math.Round(value*100)/100, 2) //nolint:mnd
	case bool:
		return strconv.FormatBool(value)
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(b)
	}
}
