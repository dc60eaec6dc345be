package content

import (
	"sort"
	"strings"

	"limban-server-go/internal/domain/image"
)

// ExtractSourceURLs walks arbitrarily nested decoded JSON and collects every
// string that references the CMS asset host. URLs are deduplicated keeping
// first-seen order so pipeline runs are deterministic.
func ExtractSourceURLs(v any, assetHost string) []string {
	seen := make(map[string]struct{})
	urls := make([]string, 0)
	walkStrings(v, func(s string) {
		if !strings.Contains(s, assetHost) {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		urls = append(urls, s)
	})
	return urls
}

// walkStrings visits every string in a decoded JSON value. Map keys are
// walked in sorted order so extraction is deterministic across runs.
func walkStrings(v any, visit func(string)) {
	switch val := v.(type) {
	case string:
		visit(val)
	case []any:
		for _, item := range val {
			walkStrings(item, visit)
		}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walkStrings(val[k], visit)
		}
	}
}

// SubstituteMapped swaps every asset URL leaf that has a processed rendition
// of the given variant; everything else, including asset URLs that were never
// processed, stays as-is.
func SubstituteMapped(node any, m image.Mapping, variant, assetHost string) any {
	return Substitute(node, func(s string) (string, bool) {
		if !strings.Contains(s, assetHost) {
			return "", false
		}
		variants, ok := m[s]
		if !ok {
			return "", false
		}
		path, ok := variants[variant]
		return path, ok
	})
}

// Substitute returns a deep copy of decoded JSON with every string for which
// replace reports a match swapped out. Structure, keys and non-matching
// values are preserved exactly; lookups are whole-string, never substring.
func Substitute(v any, replace func(url string) (string, bool)) any {
	switch val := v.(type) {
	case string:
		if next, ok := replace(val); ok {
			return next
		}
		return val
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Substitute(item, replace)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Substitute(item, replace)
		}
		return out
	default:
		return val
	}
}
