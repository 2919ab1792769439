package query

import (
	"net/url"
	"sort"
	"strings"
)

// Build encodes params into a "?"-prefixed query string.
// Keys with empty values are omitted entirely, keys are emitted in sorted
// order for determinism, and an effectively empty map yields "".
func Build(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Set(k, params[k])
	}
	return "?" + values.Encode()
}

// StringSlice parses a single comma-separated string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
