// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/cartctl/internal/attrs"
)

// filterRegex splits a filter expression into key, operator and target. The
// operator is one of = ^ ~ < > <= >= @ or /, optionally prefixed with '!'.
var filterRegex = regexp.MustCompile(`^(.*?)(!?(?:<=|>=|[=^~<>@/]))(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses a filter spec such as "price<20,title@shoe". Entries
// without a supported operand are logged and skipped. The entry delimiter
// defaults to "," and can be changed with CARTCTL_FILTER_DELIM.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv("CARTCTL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, entry := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(entry)
		if parts == nil || strings.TrimSpace(parts[1]) == "" {
			log.Error("invalid filter: " + entry)
			continue
		}

		op, negate := strings.CutPrefix(parts[2], "!")
		filters = append(filters, Filter{
			Key:     strings.TrimSpace(parts[1]),
			Negate:  negate,
			Operand: op,
			Target:  parts[3],
		})
	}

	return filters
}

// FilterDataset returns the rows of candidates, a JSON array of objects, that
// pass every filter in spec. Each row holds only the attrs, keyed by their
// OutputKey. Transforms are left to the output phase.
func FilterDataset(candidates gjson.Result, al attrs.AttrList, spec string) []map[string]interface{} {
	//nolint:prealloc
	var rows []map[string]interface{}

	filters := BuildFilters(spec)

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, al, filters) {
			continue
		}

		row := make(map[string]interface{}, len(al))
		for _, attr := range al {
			if attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = candidate.Get(gjsonPath(attr.Key)).Value()
		}
		rows = append(rows, row)
	}

	return rows
}

// applyFilters reports whether candidate passes all filters. A key that names
// no attr is looked up on the line item itself, and a line item without that
// field does not pass.
func applyFilters(candidate gjson.Result, al attrs.AttrList, filters []Filter) bool {
	for _, f := range filters {
		key := resolveKey(al, f.Key)
		if key == "" {
			key = f.Key
		}

		value := candidate.Get(gjsonPath(key)).Value()
		if value == nil {
			return false
		}
		if !f.Match(value) {
			return false
		}
	}
	return true
}

// resolveKey maps a filter key to the JSON key of the matching attr. Both the
// output key and the JSON key are accepted.
func resolveKey(al attrs.AttrList, key string) string {
	for _, attr := range al {
		if attr.OutputKey == key || attr.Key == key {
			return attr.Key
		}
	}
	return ""
}

// Match applies f to a single decoded JSON value.
func (f Filter) Match(value interface{}) bool {
	switch v := value.(type) {
	case string:
		return f.matchString(v)
	case bool:
		return f.matchString(strconv.FormatBool(v))
	case float64:
		return f.matchNumber(v)
	case []interface{}, map[string]interface{}:
		return f.matchContains(v)
	default:
		log.Errorf("unsupported type for filtering: %T", value)
		return false
	}
}

func (f Filter) matchContains(value interface{}) bool {
	if f.Operand != "@" {
		log.Error("only @ can filter lists and objects, not " + f.Operand)
		return false
	}

	found := false
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			if fmt.Sprint(item) == f.Target {
				found = true
				break
			}
		}
	case map[string]interface{}:
		_, found = v[f.Target]
	}
	return found != f.Negate
}

func (f Filter) matchNumber(value float64) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(f.Target), 64)
	if err != nil {
		// Not a number, so compare as text. "price@9" still works.
		return f.matchString(strconv.FormatFloat(value, 'f', -1, 64))
	}

	var result bool
	switch f.Operand {
	case "=":
		result = value == tgt
	case ">":
		result = value > tgt
	case "<":
		result = value < tgt
	case ">=":
		result = value >= tgt
	case "<=":
		result = value <= tgt
	default:
		return f.matchString(strconv.FormatFloat(value, 'f', -1, 64))
	}
	return result != f.Negate
}

func (f Filter) matchString(value string) bool {
	var result bool
	switch f.Operand {
	case "=":
		result = value == f.Target
	case "~":
		result = strings.EqualFold(value, f.Target)
	case "^":
		result = strings.HasPrefix(value, f.Target)
	case ">":
		result = value > f.Target
	case "<":
		result = value < f.Target
	case ">=":
		result = value >= f.Target
	case "<=":
		result = value <= f.Target
	case "@":
		result = strings.Contains(value, f.Target)
	case "/":
		re, err := regexp.Compile(f.Target)
		if err != nil {
			log.Error("invalid regex: " + f.Target)
			return false
		}
		result = re.MatchString(value)
	default:
		log.Error("unsupported filtering operand: " + f.Operand)
		return false
	}
	return result != f.Negate
}

// gjsonPath escapes characters gjson treats as path syntax so a flat key is
// looked up literally.
func gjsonPath(key string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)
	return r.Replace(key)
}
